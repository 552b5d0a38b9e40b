// Package services – ItemService
//
// This file implements the ItemService, which owns the lifecycle of items.
// It validates and normalizes names and coordinates repository operations
// for creating, listing, fetching, renaming, and deleting items.
//
// Service-level errors (e.g., ErrItemNotFound, ErrEmptyName) are returned
// for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-items-backend/internal/domain"
)

// ItemRepo defines the repository contract required by ItemService.
// Implementations are responsible for persistence of item rows.
type ItemRepo interface {
	// CreateItem inserts a new item row with the given name.
	CreateItem(ctx context.Context, db *gorm.DB, name string) (*domain.Item, error)

	// ListItems returns all items ordered by id ascending.
	ListItems(ctx context.Context, db *gorm.DB) ([]domain.Item, error)

	// GetItem fetches an item by id.
	GetItem(ctx context.Context, db *gorm.DB, id int64) (*domain.Item, error)

	// UpdateItemName renames an item and refreshes its updated_at stamp.
	UpdateItemName(ctx context.Context, db *gorm.DB, id int64, name string) (*domain.Item, error)

	// DeleteItem hard-deletes an item and returns the removed row.
	DeleteItem(ctx context.Context, db *gorm.DB, id int64) (*domain.Item, error)
}

// ItemService provides item-level operations. It enforces name rules and
// translates repository errors into stable service errors.
type ItemService struct {
	// DB is the GORM handle used for persistence. It is injected once at
	// startup; a nil handle surfaces ErrNotReady instead of a nil-pointer
	// panic deep in the repo layer.
	DB *gorm.DB
	// Repo is the item repository used by this service.
	Repo ItemRepo
}

// NewItemService constructs an ItemService bound to the given handle and
// repository.
func NewItemService(db *gorm.DB, r ItemRepo) *ItemService {
	return &ItemService{DB: db, Repo: r}
}

// Create validates and trims the name, then inserts a new item.
// Empty or whitespace-only names never reach the store.
func (s *ItemService) Create(ctx context.Context, name string) (*domain.Item, error) {
	if s.DB == nil {
		return nil, ErrNotReady
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.Repo.CreateItem(ctx, s.DB, name)
}

// List returns all items ordered by ascending id; an empty slice when
// there are none.
func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	if s.DB == nil {
		return nil, ErrNotReady
	}
	return s.Repo.ListItems(ctx, s.DB)
}

// Get fetches one item by id, mapping a missing row to ErrItemNotFound.
func (s *ItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	if s.DB == nil {
		return nil, ErrNotReady
	}
	it, err := s.Repo.GetItem(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return it, nil
}

// UpdateName validates the new name, renames the item, and returns the
// updated row. A missing row maps to ErrItemNotFound; invalid names never
// reach the store.
func (s *ItemService) UpdateName(ctx context.Context, id int64, name string) (*domain.Item, error) {
	if s.DB == nil {
		return nil, ErrNotReady
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	it, err := s.Repo.UpdateItemName(ctx, s.DB, id, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return it, nil
}

// Delete removes the item and returns the deleted row. A missing row maps
// to ErrItemNotFound.
func (s *ItemService) Delete(ctx context.Context, id int64) (*domain.Item, error) {
	if s.DB == nil {
		return nil, ErrNotReady
	}
	it, err := s.Repo.DeleteItem(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return it, nil
}
