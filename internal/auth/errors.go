package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrInvalidCredentials is returned on login failure. Unknown email and wrong
// password collapse into this same error so callers cannot enumerate accounts.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS")

// ErrUnauthorized is returned when an operation requires a verified identity
// and none was presented.
var ErrUnauthorized = goerrors.New("authentication required", goerrors.CategoryAuth).
	WithTextCode("UNAUTHENTICATED")

// ErrForbidden is returned when a verified identity lacks the role an
// operation requires.
var ErrForbidden = goerrors.New("insufficient role", goerrors.CategoryAuthz).
	WithTextCode("FORBIDDEN")

// ErrTokenExpired is returned by Validate for structurally valid but expired tokens.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed covers bad signatures and undecodable token structures.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED")

// ErrMismatchedHashAndPassword is the normal outcome for a password that does
// not verify against a stored digest, malformed digests included.
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH")

// ErrNoEmptyString rejects empty plaintext passwords before hashing.
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryBadInput).
	WithTextCode("EMPTY_VALUE")

// ErrAccountNotFound is returned by account lookups that match no row.
var ErrAccountNotFound = goerrors.New("account not found", goerrors.CategoryNotFound).
	WithTextCode("ACCOUNT_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)
