package employee

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned by point lookups and updates that match no record.
var ErrNotFound = errors.New("employee not found", errors.CategoryNotFound).
	WithTextCode("EMPLOYEE_NOT_FOUND").
	WithCode(errors.CodeNotFound)

// Repository is the record query layer over the employees table.
type Repository interface {
	List(ctx context.Context, filter Filter, opts ListOptions) ([]*Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*Employee, error)
	Create(ctx context.Context, input Input) (*Employee, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*Employee, error)
}

type repository struct {
	db *bun.DB
}

var _ Repository = (*repository)(nil)

// NewRepository creates a bun-backed employee repository.
func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

// List translates the filter and pagination request into a bounded query.
// A page past the end of the result set returns an empty slice, not an error.
func (r *repository) List(ctx context.Context, filter Filter, opts ListOptions) ([]*Employee, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	records := make([]*Employee, 0)
	q := r.db.NewSelect().Model(&records)

	if filter.Class != nil {
		q = q.Where("emp.class = ?", *filter.Class)
	}
	if filter.MinAge != nil {
		q = q.Where("emp.age >= ?", *filter.MinAge)
	}
	if filter.MaxAge != nil {
		q = q.Where("emp.age <= ?", *filter.MaxAge)
	}

	if opts.SortBy != "" {
		q = q.Order(sortColumns[opts.SortBy] + " ASC").Order("id ASC")
	}

	q = q.Limit(opts.PageSize).Offset(opts.offset())

	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list employees")
	}
	return records, nil
}

// Get is a point lookup; a missing record is a normal outcome.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Employee, error) {
	record := new(Employee)
	err := r.db.NewSelect().
		Model(record).
		Where("emp.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query employee")
	}
	return record, nil
}

func (r *repository) Create(ctx context.Context, input Input) (*Employee, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	record := &Employee{
		ID:        uuid.New(),
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	input.apply(record)

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create employee")
	}
	return record, nil
}

// Update replaces the writable attributes of an existing record. Updating a
// missing id fails with ErrNotFound regardless of who asks.
func (r *repository) Update(ctx context.Context, id uuid.UUID, input Input) (*Employee, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	record, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(record)
	now := time.Now()
	record.UpdatedAt = &now

	res, err := r.db.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update employee")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrNotFound
	}
	return record, nil
}
