// Package errors carries the run's error taxonomy. Per-file failures
// (unreadable file, missing columns) are recorded and skipped by the
// combiner; configuration-shape failures (bad offsets, missing key columns)
// and run-level failures (no data, unwritable output) abort immediately.
package errors

import (
	"fmt"
	"strings"
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

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
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

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeFileRead          = "FILE_READ"
	CodeColumnNotFound    = "COLUMN_NOT_FOUND"
	CodeKeyColumnNotFound = "KEY_COLUMN_NOT_FOUND"
	CodeNoData            = "NO_DATA"
	CodeWriteFailed       = "WRITE_FAILED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// ColumnNotFoundDetail carries which requested columns a file is missing.
type ColumnNotFoundDetail struct {
	FileLabel string
	Missing   []string
}

func (e *ColumnNotFoundDetail) Error() string {
	return fmt.Sprintf("%s: missing columns: %s", e.FileLabel, strings.Join(e.Missing, ", "))
}

// KeyColumnNotFoundDetail identifies which side of the merge lacks a column.
type KeyColumnNotFoundDetail struct {
	Table  string // "combined" or "lookup"
	Column string
}

func (e *KeyColumnNotFoundDetail) Error() string {
	return fmt.Sprintf("key column %q not found in %s table", e.Column, e.Table)
}

// Common error constructors

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func FileRead(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeFileRead,
		Message: fmt.Sprintf("failed to read %s", path),
		Cause:   cause,
	}
}

func ColumnNotFound(fileLabel string, missing []string) *AppError {
	detail := &ColumnNotFoundDetail{FileLabel: fileLabel, Missing: missing}
	return &AppError{
		Code:    CodeColumnNotFound,
		Message: fmt.Sprintf("requested columns not found in %s", fileLabel),
		Cause:   detail,
	}
}

func KeyColumnNotFound(tableName, column string) *AppError {
	detail := &KeyColumnNotFoundDetail{Table: tableName, Column: column}
	return &AppError{
		Code:    CodeKeyColumnNotFound,
		Message: "merge key configuration is invalid",
		Cause:   detail,
	}
}

func NoData(message string) *AppError {
	return New(CodeNoData, message)
}

func WriteFailed(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeWriteFailed,
		Message: message,
		Cause:   cause,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
