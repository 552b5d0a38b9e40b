// Item HTTP handlers.
//
// This file exposes REST endpoints for the item resource:
//   - POST   /api/items      (create)
//   - GET    /api/items      (list, ascending id)
//   - GET    /api/items/:id  (fetch)
//   - PUT    /api/items/:id  (rename)
//   - DELETE /api/items/:id  (hard delete, returns the removed row)
//
// Handlers are transport-thin: they validate input, call the item service,
// and translate success into HTTP responses. Every failure path constructs
// (or receives) an error and hands it to the pipeline's terminal
// translator — handlers never write error bodies directly.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-items-backend/internal/apierr"
	"github.com/tbourn/go-items-backend/internal/domain"
	"github.com/tbourn/go-items-backend/internal/services"
)

// ItemService defines item lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation.
type ItemService interface {
	// Create inserts a new item with the given (untrimmed) name.
	Create(ctx context.Context, name string) (*domain.Item, error)
	// List returns all items ordered by ascending id.
	List(ctx context.Context) ([]domain.Item, error)
	// Get fetches one item by id.
	Get(ctx context.Context, id int64) (*domain.Item, error)
	// UpdateName renames an item and returns the updated row.
	UpdateName(ctx context.Context, id int64, name string) (*domain.Item, error)
	// Delete removes an item and returns the deleted row.
	Delete(ctx context.Context, id int64) (*domain.Item, error)
}

// Handlers groups the HTTP endpoints for the item resource. It depends on
// an abstract service interface to keep transport concerns separate from
// business logic.
type Handlers struct {
	svc ItemService
}

// New constructs a Handlers instance bound to the given service.
func New(svc ItemService) *Handlers {
	return &Handlers{svc: svc}
}

//
// DTOs
//

// ItemRequest is the JSON payload for creating or renaming an item.
type ItemRequest struct {
	// Name is the item name; must be non-empty after trimming.
	Name string `json:"name" example:"Widget"`
}

//
// Helpers
//

// parseID parses a path id as a base-10 integer. Anything else is a client
// error, answered before the store is ever reached.
func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// mapServiceErr translates stable service errors into API errors; anything
// unrecognized passes through untouched so the terminal translator
// classifies it as an internal failure.
func mapServiceErr(err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyName):
		return apierr.BadRequest("Item name is required")
	case errors.Is(err, services.ErrItemNotFound):
		return apierr.NotFound("Item not found")
	default:
		return err
	}
}

//
// Handlers
//

// CreateItem godoc
// @ID          createItem
// @Summary     Create a new item
// @Description Creates an item and returns the stored row with its generated id.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ItemRequest  true  "Create item payload"
// @Success     201  {object}  domain.Item
// @Failure     400  "Name missing or blank, or malformed JSON"
// @Failure     500  "Internal error"
// @Router      /api/items [post]
func (h *Handlers) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apierr.BadRequest("Invalid JSON body"))
		return
	}

	it, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		abortWithError(c, mapServiceErr(err))
		return
	}
	ok(c, http.StatusCreated, it)
}

// ListItems godoc
// @ID          listItems
// @Summary     List all items
// @Description Returns every item ordered by ascending id; an empty array when none exist.
// @Tags        Items
// @Produce     json
// @Success     200  {array}  domain.Item
// @Failure     500  "Internal error"
// @Router      /api/items [get]
func (h *Handlers) ListItems(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, mapServiceErr(err))
		return
	}
	ok(c, http.StatusOK, items)
}

// GetItemByID godoc
// @ID          getItemByID
// @Summary     Fetch one item
// @Tags        Items
// @Produce     json
// @Param       id  path  int  true  "Item ID"
// @Success     200  {object}  domain.Item
// @Failure     400  "Non-integer id"
// @Failure     404  "No such item"
// @Router      /api/items/{id} [get]
func (h *Handlers) GetItemByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abortWithError(c, apierr.BadRequest("Invalid item ID"))
		return
	}

	it, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, mapServiceErr(err))
		return
	}
	ok(c, http.StatusOK, it)
}

// UpdateItem godoc
// @ID          updateItem
// @Summary     Rename an item
// @Description Updates the item name and refreshes updated_at; returns the updated row.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       id    path  int                   true  "Item ID"
// @Param       body  body  handlers.ItemRequest  true  "New name"
// @Success     200  {object}  domain.Item
// @Failure     400  "Non-integer id, blank name, or malformed JSON"
// @Failure     404  "No such item"
// @Router      /api/items/{id} [put]
func (h *Handlers) UpdateItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abortWithError(c, apierr.BadRequest("Invalid item ID"))
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apierr.BadRequest("Invalid JSON body"))
		return
	}

	it, err := h.svc.UpdateName(c.Request.Context(), id, req.Name)
	if err != nil {
		abortWithError(c, mapServiceErr(err))
		return
	}
	ok(c, http.StatusOK, it)
}

// DeleteItem godoc
// @ID          deleteItem
// @Summary     Delete an item
// @Description Hard-deletes the item and returns the removed row.
// @Tags        Items
// @Produce     json
// @Param       id  path  int  true  "Item ID"
// @Success     200  {object}  domain.Item
// @Failure     400  "Non-integer id"
// @Failure     404  "No such item"
// @Router      /api/items/{id} [delete]
func (h *Handlers) DeleteItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abortWithError(c, apierr.BadRequest("Invalid item ID"))
		return
	}

	it, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, mapServiceErr(err))
		return
	}
	ok(c, http.StatusOK, it)
}
