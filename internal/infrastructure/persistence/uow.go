package persistence

import (
	"context"
	"fmt"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUnitOfWork implements identity.UnitOfWork on top of a GORM connection.
// Repositories returned while a transaction is active are bound to that
// transaction; outside of one they read through the base connection. A unit
// of work instance is not safe for concurrent use.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB

	companies identity.CompanyRepository
	users     identity.UserRepository
}

// NewGormUnitOfWork creates a unit of work bound to the given connection
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Begin opens a new transaction. At most one transaction may be active per
// unit of work instance.
func (u *GormUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return shared.NewDomainError("TRANSACTION_ACTIVE", "a transaction is already in progress")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	u.tx = tx
	u.invalidateRepositories()
	return nil
}

// Commit commits the active transaction
func (u *GormUnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return shared.NewDomainError("NO_TRANSACTION", "no transaction in progress")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	u.invalidateRepositories()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the active transaction
func (u *GormUnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return shared.NewDomainError("NO_TRANSACTION", "no transaction in progress")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	u.invalidateRepositories()
	if err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// HasActiveTransaction reports whether a transaction is currently open
func (u *GormUnitOfWork) HasActiveTransaction() bool {
	return u.tx != nil
}

// Companies returns the company repository bound to the current scope
func (u *GormUnitOfWork) Companies() identity.CompanyRepository {
	if u.companies == nil {
		u.companies = NewGormCompanyRepository(u.conn())
	}
	return u.companies
}

// Users returns the user repository bound to the current scope
func (u *GormUnitOfWork) Users() identity.UserRepository {
	if u.users == nil {
		u.users = NewGormUserRepository(u.conn())
	}
	return u.users
}

func (u *GormUnitOfWork) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// invalidateRepositories drops cached repositories so the next accessor call
// rebinds them to the current scope
func (u *GormUnitOfWork) invalidateRepositories() {
	u.companies = nil
	u.users = nil
}

// GormUnitOfWorkFactory creates unit of work instances sharing one connection
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a new unit of work factory
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// New creates a fresh unit of work with no active transaction
func (f *GormUnitOfWorkFactory) New() identity.UnitOfWork {
	return NewGormUnitOfWork(f.db)
}
