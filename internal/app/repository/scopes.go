package repository

import "gorm.io/gorm"

// active is the shared soft-delete predicate. Every read path that should
// hide archived records goes through this scope so the endpoints cannot
// drift apart on the archived filter.
func active(tx *gorm.DB) *gorm.DB {
	return tx.Where("archived = ?", false)
}
