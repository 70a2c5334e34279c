package types

import (
	"errors"
	"fmt"
)

// Store operation errors.
var (
	ErrNotFound            = errors.New("entity not found")
	ErrInvalidID           = errors.New("invalid entity ID")
	ErrInvalidData         = errors.New("invalid entity data")
	ErrInvalidField        = errors.New("unknown or non-indexed field")
	ErrConstraintViolation = errors.New("unique constraint violation")
	ErrTransactionFailed   = errors.New("transaction failed")
)

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Schema errors. Both are fatal and reported through SchemaOpenError.
var (
	ErrSchemaTooNew       = errors.New("database schema is newer than this program supports")
	ErrSchemaIncompatible = errors.New("database schema is incompatible")
)

// Query errors.
var (
	ErrInvalidSortKey = errors.New("invalid sort key")
	ErrInvalidFilter  = errors.New("invalid filter value")
)

// Reference data refresh errors. These are never fatal.
var (
	ErrFetchFailed = errors.New("reference data fetch failed")
	ErrParseFailed = errors.New("reference data parse failed")
	ErrNoValidRows = errors.New("reference data has no valid rows")
)

// Backup errors.
var (
	ErrInvalidBackup = errors.New("invalid backup document")
)

// Entity validation errors.
var (
	ErrInvalidName        = errors.New("name must not be empty")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTrapState   = errors.New("close_date must be set if and only if the trap is closed")
	ErrInvalidGender      = errors.New("invalid gender")
	ErrInvalidAge         = errors.New("invalid age")
	ErrInvalidPurpose     = errors.New("invalid gun log purpose")
	ErrInvalidImageType   = errors.New("invalid profile image type")
	ErrAmbiguousCatchLink = errors.New("catch record cannot reference both a trap and a gun log")
	ErrInvalidAmount      = errors.New("amount must not be negative")
)

// SchemaOpenError reports a database that cannot be opened by this program.
// The application must stop instead of attempting partial operation.
type SchemaOpenError struct {
	Path      string // database path, ":memory:" for in-memory databases
	OnDisk    int    // schema version read from the file
	Supported int    // highest schema version this program understands
	Err       error  // ErrSchemaTooNew, ErrSchemaIncompatible or an I/O error
}

func (e *SchemaOpenError) Error() string {
	return fmt.Sprintf("open schema %s (on disk v%d, supported v%d): %v", e.Path, e.OnDisk, e.Supported, e.Err)
}

func (e *SchemaOpenError) Unwrap() error { return e.Err }
