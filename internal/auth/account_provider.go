package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// AccountProvider adapts the Accounts store to the IdentityProvider
// interface the authenticator consumes.
type AccountProvider struct {
	store  Accounts
	hasher PasswordAuthenticator
	logger Logger
}

var _ IdentityProvider = (*AccountProvider)(nil)

// NewAccountProvider will create a new AccountProvider.
func NewAccountProvider(store Accounts, hasher PasswordAuthenticator) *AccountProvider {
	return &AccountProvider{
		store:  store,
		hasher: hasher,
		logger: defLogger{},
	}
}

func (p *AccountProvider) WithLogger(l Logger) *AccountProvider {
	if l != nil {
		p.logger = l
	}
	return p
}

// VerifyIdentity will find the account, compare the password, and return the
// identity. A missing account and a mismatched password are indistinguishable
// from the caller's side.
func (p *AccountProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	account, err := p.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve account during verification")
	}

	if err := p.hasher.ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return account.Identity(), nil
}

// FindIdentityByIdentifier resolves an email to an identity without any
// password check.
func (p *AccountProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	account, err := p.store.GetByEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return account.Identity(), nil
}
