// Package store implements the persistence collaborators of the core on top
// of gorm, plus the redis-backed refresh-token session store.
package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// omitAssociations keeps writes from upserting preloaded relations.
func omitAssociations(db *gorm.DB) *gorm.DB {
	return db.Omit(clause.Associations)
}
