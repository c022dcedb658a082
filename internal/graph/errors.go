package graph

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Extension codes follow the Apollo convention so generic clients can key
// off response.errors[].extensions.code.
const (
	codeUnauthenticated    = "UNAUTHENTICATED"
	codeForbidden          = "FORBIDDEN"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeNotFound           = "NOT_FOUND"
	codeBadUserInput       = "BAD_USER_INPUT"
	codeInternal           = "INTERNAL_SERVER_ERROR"
)

// toGQLError maps a typed domain failure onto a GraphQL error. Internal
// faults are masked; caller errors surface with their message and code.
func toGQLError(err error, path string) *gqlerror.Error {
	code := codeInternal
	message := "internal server error"

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		switch rich.Category {
		case goerrors.CategoryAuth:
			message = rich.Message
			if rich.TextCode == "INVALID_CREDENTIALS" {
				code = codeInvalidCredentials
			} else {
				code = codeUnauthenticated
			}
		case goerrors.CategoryAuthz:
			message = rich.Message
			code = codeForbidden
		case goerrors.CategoryNotFound:
			message = rich.Message
			code = codeNotFound
		case goerrors.CategoryValidation, goerrors.CategoryBadInput:
			message = rich.Message
			code = codeBadUserInput
		}
	}

	return &gqlerror.Error{
		Message:    message,
		Path:       ast.Path{ast.PathName(path)},
		Extensions: map[string]any{"code": code},
	}
}
