// Package repositories holds all query and mutation logic over the relational
// store. Controllers never touch gorm directly: each aggregate gets a
// repository returning plain model structs with relations eagerly loaded.
package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/flashfrancais/backend/apperrors"
)

// normalizeIDs de-duplicates an id list and drops zero values, preserving
// first-seen order.
func normalizeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// requireAll verifies that every id resolves to a row of the given model.
// On any miss it returns ErrNotFound naming the entity and all missing ids.
func requireAll(db *gorm.DB, model interface{}, entity string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var found []uint
	if err := db.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	present := make(map[uint]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, fmt.Sprint(id))
		}
	}
	return apperrors.NotFoundf("%s(s) not found: %s", entity, strings.Join(missing, ", "))
}

// isDuplicateKey reports whether err is a uniqueness violation, for both the
// Postgres and SQLite drivers.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
