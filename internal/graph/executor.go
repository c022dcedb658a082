package graph

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"staffdir/internal/auth"
)

// Request is the standard GraphQL HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Response is the standard GraphQL response envelope.
type Response struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors gqlerror.List  `json:"errors,omitempty"`
}

// Executor validates incoming requests against the schema and dispatches
// each top-level field through the resolver's operation table.
type Executor struct {
	schema     *ast.Schema
	operations map[string]Operation
	logger     auth.Logger
}

// NewExecutor creates an executor bound to the resolver's operations.
func NewExecutor(resolver *Resolver, logger auth.Logger) *Executor {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &Executor{
		schema:     Schema,
		operations: resolver.Operations(),
		logger:     logger,
	}
}

// Execute runs one GraphQL request. Each incoming request is independent;
// the only state shared between concurrent calls is the read-only schema and
// operation table.
func (e *Executor) Execute(ctx context.Context, req Request) Response {
	if req.Query == "" {
		return Response{Errors: gqlerror.List{{
			Message:    "query is required",
			Extensions: map[string]any{"code": codeBadUserInput},
		}}}
	}

	doc, listErr := gqlparser.LoadQuery(e.schema, req.Query)
	if len(listErr) > 0 {
		return Response{Errors: listErr}
	}

	op, err := e.selectOperation(doc, req.OperationName)
	if err != nil {
		return Response{Errors: gqlerror.List{err}}
	}

	data := make(map[string]any, len(op.SelectionSet))
	var errs gqlerror.List

	for _, sel := range op.SelectionSet {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}

		if field.Name == "__typename" {
			if op.Operation == ast.Mutation {
				data[field.Alias] = "Mutation"
			} else {
				data[field.Alias] = "Query"
			}
			continue
		}

		result, err := e.executeField(ctx, field, req.Variables)
		if err != nil {
			e.logResolutionFailure(field.Name, err)
			data[field.Alias] = nil
			errs = append(errs, toGQLError(err, field.Alias))
			continue
		}
		data[field.Alias] = projectValue(result, field.SelectionSet)
	}

	return Response{Data: data, Errors: errs}
}

func (e *Executor) selectOperation(doc *ast.QueryDocument, name string) (*ast.OperationDefinition, *gqlerror.Error) {
	if name != "" {
		if op := doc.Operations.ForName(name); op != nil {
			return op, nil
		}
		return nil, &gqlerror.Error{
			Message:    "unknown operation: " + name,
			Extensions: map[string]any{"code": codeBadUserInput},
		}
	}

	if len(doc.Operations) != 1 {
		return nil, &gqlerror.Error{
			Message:    "operationName is required when the document defines multiple operations",
			Extensions: map[string]any{"code": codeBadUserInput},
		}
	}
	return doc.Operations[0], nil
}

// executeField gates and runs a single top-level field.
func (e *Executor) executeField(ctx context.Context, field *ast.Field, vars map[string]any) (any, error) {
	op, ok := e.operations[field.Name]
	if !ok {
		// Validation guarantees schema fields; reaching this means the table
		// and the schema drifted apart.
		return nil, errors.New("unresolvable field: "+field.Name, errors.CategoryInternal)
	}

	claims, _ := auth.GetClaims(ctx)
	if err := auth.Authorize(claims, op.Requirement); err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			// surface why a presented token did not produce an identity
			if tokenErr, ok := auth.GetTokenError(ctx); ok {
				return nil, tokenErr
			}
		}
		return nil, err
	}

	args, err := decodeArguments(field.Arguments, vars)
	if err != nil {
		return nil, err
	}

	return op.Resolve(ctx, args)
}

func decodeArguments(list ast.ArgumentList, vars map[string]any) (map[string]any, error) {
	args := make(map[string]any, len(list))
	for _, arg := range list {
		value, err := arg.Value.Value(vars)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "invalid value for argument "+arg.Name).
				WithTextCode("INVALID_ARGUMENT")
		}
		args[arg.Name] = value
	}
	return args, nil
}

func (e *Executor) logResolutionFailure(field string, err error) {
	var rich *errors.Error
	if errors.As(err, &rich) && rich.Category != errors.CategoryInternal {
		e.logger.Debug("operation rejected", "field", field, "error", err)
		return
	}
	e.logger.Error("operation failed", "field", field, "error", err)
}
