package launcher

import (
	"errors"
)

var (
	// Classification errors 🏷️
	ErrMissingValue = errors.New("❌ flag requires a value")

	// Discovery errors 🔍
	ErrHomeNotFound       = errors.New("❌ java home not found")
	ErrLibraryNotFound    = errors.New("❌ jvm library not found")
	ErrLibraryLoadFailed  = errors.New("❌ jvm library could not be loaded")
	ErrEntryPointNotFound = errors.New("❌ jvm creation entry point not found")

	// Configuration errors 🔧
	ErrClasspathBuildFailed = errors.New("❌ classpath could not be built")
	ErrInvalidManifest      = errors.New("❌ invalid launch manifest")

	// VM errors ☕
	ErrVMCreationFailed     = errors.New("❌ jvm creation failed")
	ErrAllocationFailed     = errors.New("❌ allocation failed")
	ErrMainClassNotFound    = errors.New("❌ main class not found")
	ErrMainMethodNotFound   = errors.New("❌ main method not found")
	ErrApplicationException = errors.New("❌ application threw an exception")
)

// Exit codes for different error types
const (
	ExitSuccess              = 0
	ExitApplicationException = 1

	ExitPanic          = 101
	ExitConfigError    = 102
	ExitExecutionError = 104
	ExitInvalidArgs    = 105
	ExitIOError        = 106

	ExitHomeNotFound    = 110
	ExitLibraryError    = 111
	ExitClasspathError  = 112
	ExitVMCreationError = 113
	ExitEntryPointError = 114
)

// ExitCodeFor maps an error returned by Launch to the process exit status.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrApplicationException):
		return ExitApplicationException
	case errors.Is(err, ErrMissingValue):
		return ExitInvalidArgs
	case errors.Is(err, ErrInvalidManifest):
		return ExitConfigError
	case errors.Is(err, ErrHomeNotFound):
		return ExitHomeNotFound
	case errors.Is(err, ErrLibraryNotFound),
		errors.Is(err, ErrLibraryLoadFailed),
		errors.Is(err, ErrEntryPointNotFound):
		return ExitLibraryError
	case errors.Is(err, ErrClasspathBuildFailed):
		return ExitClasspathError
	case errors.Is(err, ErrVMCreationFailed), errors.Is(err, ErrAllocationFailed):
		return ExitVMCreationError
	case errors.Is(err, ErrMainClassNotFound), errors.Is(err, ErrMainMethodNotFound):
		return ExitEntryPointError
	}
	return ExitExecutionError
}
