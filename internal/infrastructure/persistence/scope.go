package persistence

import (
	"fmt"

	"github.com/bizgrid/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applySpecification translates a domain specification into GORM where clauses.
// Conditions are combined with AND in the order they were declared.
func applySpecification(db *gorm.DB, spec shared.Specification) *gorm.DB {
	for _, c := range spec.Conditions() {
		db = db.Where(fmt.Sprintf("%s = ?", c.Field), c.Value)
	}
	return db
}
