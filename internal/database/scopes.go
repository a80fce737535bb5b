package database

import (
	"gorm.io/gorm"
)

// Paginate applies offset pagination to a GORM query
func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * limit
		return db.Offset(offset).Limit(limit)
	}
}
