// internal/cli/errors.go
package cli

import (
	"fmt"

	"housing-workers/internal/common/errors"
)

// describe flattens a StandardError into a one-line message for the terminal.
func describe(err error) error {
	stdErr, ok := errors.AsStandardError(err)
	if !ok {
		return err
	}
	if stdErr.Details == "" {
		return fmt.Errorf("%s [%s]", stdErr.Message, stdErr.Code)
	}
	return fmt.Errorf("%s [%s]: %s", stdErr.Message, stdErr.Code, stdErr.Details)
}
