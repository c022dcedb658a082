// Package store wires the bun ORM to the sqlite datastore and owns schema
// bootstrap for the two record types.
package store

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"staffdir/internal/auth"
	"staffdir/internal/employee"
)

// Open connects to the sqlite database behind the given DSN and returns the
// pooled bun handle shared by every request.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to open database")
	}

	// sqlite serializes writers; a single connection avoids table locks on
	// the in-memory DSNs used in development and tests.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to ping database")
	}

	return db, nil
}

// EnsureSchema creates the accounts and employees tables when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*auth.Account)(nil),
		(*employee.Employee)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create table")
		}
	}
	return nil
}
