package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account is a login-capable entity. The email is unique across all
// accounts; the role is always one of the predefined values.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          UserRole   `bun:"role,notnull" json:"role,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Identity returns the account's identity view, the shape tokens are minted
// from.
func (a *Account) Identity() Identity {
	return accountIdentity{
		id:    a.ID.String(),
		email: a.Email,
		role:  a.Role,
	}
}

type accountIdentity struct {
	id    string
	email string
	role  UserRole
}

func (i accountIdentity) ID() string    { return i.id }
func (i accountIdentity) Email() string { return i.email }
func (i accountIdentity) Role() string  { return i.role }

// NewIdentity builds an Identity from raw attributes. Used by seeding and
// tests; runtime identities come from Account.Identity.
func NewIdentity(id, email string, role UserRole) Identity {
	return accountIdentity{id: id, email: email, role: role}
}
