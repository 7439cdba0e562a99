package errors

import (
	stderrors "errors"
	"fmt"

	"edakit/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping an existing code
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeFor(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise derives one
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeFor(err)
}

// Predefined error codes
const (
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeEmptyColumn        = "EMPTY_COLUMN"
	CodeInsufficientSample = "INSUFFICIENT_SAMPLE"
	CodeNonFinite          = "NON_FINITE"
	CodeColumnNotFound     = "COLUMN_NOT_FOUND"
	CodeColumnType         = "COLUMN_TYPE"
	CodeNotBinary          = "NOT_BINARY"
	CodeTooFewGroups       = "TOO_FEW_GROUPS"
	CodeRenderError        = "RENDER_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// CodeFor maps domain sentinel errors onto stable codes
func CodeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, core.ErrEmptyColumn):
		return CodeEmptyColumn
	case stderrors.Is(err, core.ErrInsufficientSample), stderrors.Is(err, core.ErrInsufficientData):
		return CodeInsufficientSample
	case stderrors.Is(err, core.ErrNonFinite):
		return CodeNonFinite
	case stderrors.Is(err, core.ErrColumnNotFound):
		return CodeColumnNotFound
	case stderrors.Is(err, core.ErrColumnType):
		return CodeColumnType
	case stderrors.Is(err, core.ErrNotBinary):
		return CodeNotBinary
	case stderrors.Is(err, core.ErrTooFewGroups), stderrors.Is(err, core.ErrDegenerateTable):
		return CodeTooFewGroups
	case stderrors.Is(err, core.ErrLengthMismatch),
		stderrors.Is(err, core.ErrDuplicateColumn),
		stderrors.Is(err, core.ErrLabelsMismatched):
		return CodeInvalidInput
	default:
		return CodeInternalError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func RenderError(format string, cause error) *AppError {
	return &AppError{
		Code:    CodeRenderError,
		Message: fmt.Sprintf("%s render failed", format),
		Cause:   cause,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
