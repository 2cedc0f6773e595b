package identity

import (
	"context"
	"strings"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// User is a staff member belonging to a company. The administrative
// login itself lives in the external identity subsystem; this row is
// the relational projection other aggregates reference.
type User struct {
	shared.TenantAggregateRoot
	FullName string `gorm:"type:varchar(200);not null"`
	Username string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(200);not null"`
	Phone    string `gorm:"type:varchar(50)"`
	IsAdmin  bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user under the given company
func NewUser(companyID uuid.UUID, fullName, username, email string) (*User, error) {
	fullName = strings.TrimSpace(fullName)
	username = strings.TrimSpace(strings.ToLower(username))
	email = strings.TrimSpace(strings.ToLower(email))

	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_FULL_NAME", "Full name is required")
	}
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		FullName:            fullName,
		Username:            username,
		Email:               email,
	}, nil
}

// UserByUsername matches a user by username (stored lowercase)
func UserByUsername(username string) shared.Specification {
	return shared.Where("username", strings.TrimSpace(strings.ToLower(username)))
}

// UserByEmail matches a user by email (stored lowercase)
func UserByEmail(email string) shared.Specification {
	return shared.Where("email", strings.TrimSpace(strings.ToLower(email)))
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	Exists(ctx context.Context, spec shared.Specification) (bool, error)
	FindOne(ctx context.Context, spec shared.Specification) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
