// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Item model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an item is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-items-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateItem inserts a new Item row with the given name. The store assigns
// the id; GORM stamps CreatedAt and UpdatedAt.
//
// On success, it returns the persisted Item. On failure, it returns a DB error.
func CreateItem(ctx context.Context, db *gorm.DB, name string) (*domain.Item, error) {
	it := &domain.Item{Name: name}
	if err := db.WithContext(ctx).Create(it).Error; err != nil {
		return nil, err
	}
	return it, nil
}

// ListItems returns every item ordered by id ascending. The ordering is
// enforced by the query and is stable under concurrent inserts, since new
// ids are always larger. It returns an empty slice when the table is empty.
func ListItems(ctx context.Context, db *gorm.DB) ([]domain.Item, error) {
	out := []domain.Item{}
	err := db.WithContext(ctx).
		Order("id asc").
		Find(&out).Error
	return out, err
}

// GetItem fetches a single item by id. If the record does not exist, it
// returns ErrNotFound. On other DB errors, the raw error is returned.
func GetItem(ctx context.Context, db *gorm.DB, id int64) (*domain.Item, error) {
	var it domain.Item
	if err := db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// UpdateItemName sets a new name on the item identified by id and refreshes
// UpdatedAt, then returns the updated row. If no rows are affected (item
// missing), it returns ErrNotFound. On DB error, the raw error is returned.
func UpdateItemName(ctx context.Context, db *gorm.DB, id int64, name string) (*domain.Item, error) {
	res := db.WithContext(ctx).
		Model(&domain.Item{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return GetItem(ctx, db, id)
}

// DeleteItem removes the item identified by id and returns the deleted row.
// The delete is hard: the row is gone, no tombstone remains. If the item
// does not exist, it returns ErrNotFound.
func DeleteItem(ctx context.Context, db *gorm.DB, id int64) (*domain.Item, error) {
	it, err := GetItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	res := db.WithContext(ctx).Delete(&domain.Item{}, id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}
