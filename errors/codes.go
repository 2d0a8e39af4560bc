package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Query errors
const (
	// ErrCodeInvalidCollection indicates the input is not a sequence of records.
	ErrCodeInvalidCollection ErrorCode = "INVALID_COLLECTION"
	// ErrCodeInvalidTransformation indicates a transformation that cannot be run.
	ErrCodeInvalidTransformation ErrorCode = "INVALID_TRANSFORMATION"
	// ErrCodeSerialization indicates a record value that cannot be deep-copied.
	ErrCodeSerialization ErrorCode = "SERIALIZATION_ERROR"
)

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidPlan indicates a plan document that cannot be built.
	ErrCodeInvalidPlan ErrorCode = "INVALID_PLAN"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Process exit codes used by the CLI.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitData     = 65
	ExitNoInput  = 66
)

var exitCodes = map[ErrorCode]int{
	ErrCodeInvalidCollection:     ExitData,
	ErrCodeInvalidTransformation: ExitUsage,
	ErrCodeSerialization:         ExitData,
	ErrCodeInvalidInput:          ExitUsage,
	ErrCodeInvalidPlan:           ExitUsage,
	ErrCodeNotFound:              ExitNoInput,
	ErrCodeInternal:              ExitInternal,
}

// ExitCodeFor returns the process exit code for an error code.
func ExitCodeFor(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return ExitInternal
}
