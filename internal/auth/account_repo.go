package auth

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Accounts is the credential store. Lookups that match no row return
// ErrAccountNotFound; callers decide whether that is a failure.
type Accounts interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	Create(ctx context.Context, account *Account) (*Account, error)
	GetOrCreate(ctx context.Context, account *Account) (*Account, error)
}

type accounts struct {
	db *bun.DB
}

var _ Accounts = (*accounts)(nil)

// NewAccountsRepository creates a bun-backed Accounts store.
func NewAccountsRepository(db *bun.DB) Accounts {
	return &accounts{db: db}
}

func (a *accounts) GetByEmail(ctx context.Context, email string) (*Account, error) {
	record := new(Account)
	err := a.db.NewSelect().
		Model(record).
		Where("acc.email = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query account by email")
	}
	return record, nil
}

func (a *accounts) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	record := new(Account)
	err := a.db.NewSelect().
		Model(record).
		Where("acc.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query account by id")
	}
	return record, nil
}

func (a *accounts) List(ctx context.Context) ([]*Account, error) {
	var records []*Account
	err := a.db.NewSelect().
		Model(&records).
		Order("acc.created_at ASC").
		Order("acc.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list accounts")
	}
	return records, nil
}

func (a *accounts) Create(ctx context.Context, account *Account) (*Account, error) {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))

	if !IsValidRole(account.Role) {
		return nil, errors.New("invalid account role", errors.CategoryValidation).
			WithTextCode("INVALID_ROLE")
	}

	now := time.Now()
	account.CreatedAt = &now
	account.UpdatedAt = &now

	if _, err := a.db.NewInsert().Model(account).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create account")
	}
	return account, nil
}

// GetOrCreate returns the existing account for the email or creates the
// given one. Used by seeding so reruns stay idempotent.
func (a *accounts) GetOrCreate(ctx context.Context, account *Account) (*Account, error) {
	existing, err := a.GetByEmail(ctx, account.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}
	return a.Create(ctx, account)
}
