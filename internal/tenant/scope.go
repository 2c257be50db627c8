// Package tenant keeps company scoping in one place: every multi-tenant
// query filters through Scope so rows never leak across companies.
package tenant

import "gorm.io/gorm"

func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
