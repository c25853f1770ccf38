package main

import (
	"errors"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/storage"
)

// Exit codes
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (bad config file, invalid log level)
	ExitDataError    = 3 // Data error (malformed inventory file)
	ExitNotAvailable = 4 // No item with the requested title, or none left in stock
)

// exitCodeFor maps an operation error to the exit code reported for it.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, catalog.ErrNotAvailable), errors.Is(err, catalog.ErrOutOfStock):
		return ExitNotAvailable
	case errors.Is(err, storage.ErrMalformed):
		return ExitDataError
	default:
		return ExitError
	}
}
