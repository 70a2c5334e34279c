package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// exitError carries an explicit exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// systemError marks err as an environment failure (exit code 2).
func systemError(op string, err error) error {
	return &exitError{code: exitSysError, err: fmt.Errorf("%s: %w", op, err)}
}

// systemErrors are failures of the environment rather than the request.
var systemErrors = []error{
	types.ErrTransactionFailed,
	types.ErrBackendDetached,
	types.ErrSchemaTooNew,
	types.ErrSchemaIncompatible,
	types.ErrFetchFailed,
}

// ExitCode maps an error returned by a command to the process exit code.
// Anything not marked or known as a system failure is a user error, such as a bad
// argument or a missing record.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var schemaErr *types.SchemaOpenError
	if errors.As(err, &schemaErr) {
		return exitSysError
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return exitSysError
	}
	for _, target := range systemErrors {
		if errors.Is(err, target) {
			return exitSysError
		}
	}
	return exitUserError
}
