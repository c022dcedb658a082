package auth

import (
	"context"
	"reflect"

	"github.com/goliatone/go-errors"
)

// Auther composes the credential store, password hasher, and token service
// into the login flow.
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Auther.
func NewAuthenticator(provider IdentityProvider, tokenService TokenService) *Auther {
	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// TokenService returns the TokenService instance used by this Auther.
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and mints a token carrying the account's
// id, email, and role. Every verification failure surfaces as
// ErrInvalidCredentials so responses cannot be used to enumerate accounts.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			s.logger.Debug("Login rejected credentials", "identifier", identifier)
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login failed to mint token", "error", err)
		return "", err
	}

	return token, nil
}

// SessionFromToken validates a raw token and returns the decoded claims.
func (s *Auther) SessionFromToken(raw string) (AuthClaims, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Debug("SessionFromToken validation failed", "error", err)
		return nil, err
	}
	return claims, nil
}
