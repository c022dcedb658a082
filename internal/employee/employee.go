// Package employee implements the record query layer: bounded, filterable,
// paginated access to employee records.
package employee

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Employee is a directory record. The id is immutable and unique; subjects
// preserve insertion order.
type Employee struct {
	bun.BaseModel `bun:"table:employees,alias:emp"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Age           int        `bun:"age,notnull" json:"age,omitempty"`
	Class         *string    `bun:"class" json:"class,omitempty"`
	Subjects      []string   `bun:"subjects,type:jsonb" json:"subjects,omitempty"`
	Attendance    *float64   `bun:"attendance" json:"attendance,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Input carries the writable attributes for create and update.
type Input struct {
	Name       string
	Age        int
	Class      *string
	Subjects   []string
	Attendance *float64
}

// Validate rejects malformed input. Attendance is a ratio and must sit in
// [0, 1].
func (i Input) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&i.Attendance, validation.Min(0.0), validation.Max(1.0)),
	)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid employee input").
			WithTextCode("INVALID_EMPLOYEE_INPUT")
	}
	return nil
}

func (i Input) apply(e *Employee) {
	e.Name = i.Name
	e.Age = i.Age
	e.Class = i.Class
	e.Subjects = append([]string(nil), i.Subjects...)
	e.Attendance = i.Attendance
}
