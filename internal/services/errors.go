// Package services defines the business logic for the item resource.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages and HTTP status codes is performed at the
// handler/middleware layer.
package services

import "errors"

var (
	// ErrItemNotFound indicates that the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrEmptyName is returned when a create or update request carries a
	// name that is empty or whitespace-only.
	ErrEmptyName = errors.New("item name is required")

	// ErrNotReady is returned when the service is used before a database
	// handle has been injected. It signals a wiring bug, not a client error.
	ErrNotReady = errors.New("database not initialized")
)
