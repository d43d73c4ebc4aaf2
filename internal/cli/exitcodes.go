package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/diagview/internal/configloader"
	"github.com/yaklabco/diagview/pkg/diagnostic"
)

// Exit codes for diagview.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a failure with no more specific code.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates input that could not be decoded.
	ExitDataError = 65

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError
	var pathErr *fs.PathError

	switch {
	case errors.Is(err, ErrNoInput):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, diagnostic.ErrUnknownFormat):
		return ExitDataError
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}
