package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure written by the CLI for failed runs.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the code, the message and, when present, the details
// and the text of the underlying cause.
type ErrorBody struct {
	Code     ErrorCode      `json:"code"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
	Cause    string         `json:"cause,omitempty"`
	ExitCode int            `json:"exit_code"`
}

// ToResponse renders e for the --json-errors output of the CLI.
func (e *AppError) ToResponse() ErrorResponse {
	body := ErrorBody{
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		ExitCode: e.ExitCode(),
	}
	if e.Cause != nil {
		body.Cause = e.Cause.Error()
	}
	return ErrorResponse{Error: body}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// From returns err as an AppError, wrapping foreign errors as internal ones.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
