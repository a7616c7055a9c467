// Package mosaic holds the core abstractions of the persistence layer:
// path resolvers, store interfaces, the orchestration service, and the
// shared error taxonomy. Callers match errors with errors.Is.
package mosaic

import "errors"

var (
	// Filesystem errors.
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIO               = errors.New("i/o error")

	// Data errors.
	ErrInvalidJSON     = errors.New("invalid json")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrMigrationFailed = errors.New("migration failed")

	// Vault errors.
	ErrVaultNotFound = errors.New("vault not found")
	ErrInvalidVault  = errors.New("invalid vault")

	// Canvas errors.
	ErrCanvasNotFound = errors.New("canvas not found")
	ErrInvalidCanvas  = errors.New("invalid canvas")

	// State errors.
	ErrStateNotFound   = errors.New("state not found")
	ErrStateSaveFailed = errors.New("state save failed")

	ErrUnknown = errors.New("unknown error")
)
