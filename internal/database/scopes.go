package database

import (
	"gorm.io/gorm"

	"github.com/tasktrack/tasktrack-api/internal/query"
)

// Paginate applies a query window to a GORM query. A zero limit means no limit.
func Paginate(w query.Window) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if w.Skip > 0 {
			db = db.Offset(int(w.Skip))
		}
		if w.Limit > 0 {
			db = db.Limit(int(w.Limit))
		}
		return db
	}
}
