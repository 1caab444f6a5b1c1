// Package pagination provides bounded limit/offset parameters for list
// endpoints. Limits are capped at 100; the default varies per entity.
package pagination

import "gorm.io/gorm"

// Query holds limit/offset parameters parsed from query strings.
type Query struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Defaults fills in the given default limit when none was provided.
func (q *Query) Defaults(defaultLimit int) {
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
}

// Scope returns a GORM scope that applies OFFSET and LIMIT for the query.
func Scope(q Query) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(q.Offset).Limit(q.Limit)
	}
}
