package graph

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"staffdir/internal/auth"
	"staffdir/internal/employee"
)

// Resolver holds the collaborators the operations dispatch into. Everything
// is injected at construction; the resolver carries no mutable state.
type Resolver struct {
	auther    *auth.Auther
	accounts  auth.Accounts
	hasher    auth.PasswordAuthenticator
	employees employee.Repository
}

// NewResolver creates a resolver from its dependencies.
func NewResolver(auther *auth.Auther, accounts auth.Accounts, hasher auth.PasswordAuthenticator, employees employee.Repository) *Resolver {
	return &Resolver{
		auther:    auther,
		accounts:  accounts,
		hasher:    hasher,
		employees: employees,
	}
}

// Operation pairs a handler with the minimum credential it requires. The
// executor consults the requirement before invoking the handler.
type Operation struct {
	Requirement auth.Requirement
	Resolve     func(ctx context.Context, args map[string]any) (any, error)
}

// Operations is the explicit dispatch table keyed by top-level field name.
func (r *Resolver) Operations() map[string]Operation {
	return map[string]Operation{
		"employees":      {auth.RequirementAuthenticated, r.resolveEmployees},
		"employee":       {auth.RequirementNone, r.resolveEmployee},
		"me":             {auth.RequirementNone, r.resolveMe},
		"users":          {auth.RequirementAdmin, r.resolveUsers},
		"user":           {auth.RequirementAdmin, r.resolveUser},
		"addEmployee":    {auth.RequirementAdmin, r.resolveAddEmployee},
		"updateEmployee": {auth.RequirementAdmin, r.resolveUpdateEmployee},
		"createUser":     {auth.RequirementAdmin, r.resolveCreateUser},
		"login":          {auth.RequirementNone, r.resolveLogin},
	}
}

func (r *Resolver) resolveEmployees(ctx context.Context, args map[string]any) (any, error) {
	filter, err := decodeFilter(args["filter"])
	if err != nil {
		return nil, err
	}

	opts := employee.DefaultListOptions()
	if page, err := optionalIntArg(args, "page"); err != nil {
		return nil, err
	} else if page != nil {
		opts.Page = *page
	}
	if pageSize, err := optionalIntArg(args, "pageSize"); err != nil {
		return nil, err
	} else if pageSize != nil {
		opts.PageSize = *pageSize
	}
	if sortBy, err := optionalStringArg(args, "sortBy"); err != nil {
		return nil, err
	} else if sortBy != nil {
		opts.SortBy = *sortBy
	}

	return r.employees.List(ctx, filter, opts)
}

func (r *Resolver) resolveEmployee(ctx context.Context, args map[string]any) (any, error) {
	id, err := uuidArg(args, "id")
	if err != nil {
		return nil, err
	}

	record, err := r.employees.Get(ctx, id)
	if errors.IsNotFound(err) {
		// point lookup: absent is a null result, not an error
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Resolver) resolveMe(ctx context.Context, _ map[string]any) (any, error) {
	claims, ok := auth.GetClaims(ctx)
	if !ok {
		return nil, nil
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, nil
	}

	account, err := r.accounts.GetByID(ctx, id)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *Resolver) resolveUsers(ctx context.Context, _ map[string]any) (any, error) {
	return r.accounts.List(ctx)
}

func (r *Resolver) resolveUser(ctx context.Context, args map[string]any) (any, error) {
	id, err := uuidArg(args, "id")
	if err != nil {
		return nil, err
	}

	account, err := r.accounts.GetByID(ctx, id)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *Resolver) resolveAddEmployee(ctx context.Context, args map[string]any) (any, error) {
	input, err := decodeEmployeeInput(args["input"])
	if err != nil {
		return nil, err
	}
	return r.employees.Create(ctx, input)
}

func (r *Resolver) resolveUpdateEmployee(ctx context.Context, args map[string]any) (any, error) {
	id, err := uuidArg(args, "id")
	if err != nil {
		return nil, err
	}
	input, err := decodeEmployeeInput(args["input"])
	if err != nil {
		return nil, err
	}
	return r.employees.Update(ctx, id, input)
}

func (r *Resolver) resolveCreateUser(ctx context.Context, args map[string]any) (any, error) {
	email, err := stringArg(args, "email")
	if err != nil {
		return nil, err
	}
	password, err := stringArg(args, "password")
	if err != nil {
		return nil, err
	}
	roleStr, err := stringArg(args, "role")
	if err != nil {
		return nil, err
	}

	role, ok := auth.ParseRole(roleStr)
	if !ok {
		return nil, errors.New("invalid role", errors.CategoryValidation).
			WithTextCode("INVALID_ROLE")
	}

	hash, err := r.hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return r.accounts.Create(ctx, &auth.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
}

func (r *Resolver) resolveLogin(ctx context.Context, args map[string]any) (any, error) {
	email, err := stringArg(args, "email")
	if err != nil {
		return nil, err
	}
	password, err := stringArg(args, "password")
	if err != nil {
		return nil, err
	}

	token, err := r.auther.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return token, nil
}
