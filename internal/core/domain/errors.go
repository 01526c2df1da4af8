// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies domain failures so transport layers can map them
// to statuses without string matching.
type ErrorCode string

const (
	CodeNotFound       ErrorCode = "not_found"
	CodeConflict       ErrorCode = "conflict"
	CodeInvalidOption  ErrorCode = "invalid_option"
	CodeInvalidAmount  ErrorCode = "invalid_amount"
	CodeInvalidReturn  ErrorCode = "invalid_return"
	CodeDuplicateValue ErrorCode = "duplicate_value"
)

// Error is the domain error type. Field and Value carry the offending
// input when the failure is about a specific attribute.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Value   string    `json:"value,omitempty"`
}

func (e *Error) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("%s: %s (%s=%q)", e.Code, e.Message, e.Field, e.Value)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is makes errors.Is work against bare code sentinels created with CodeError.
func (e *Error) Is(target error) bool {
	var de *Error
	if errors.As(target, &de) {
		return de.Code == e.Code
	}
	return false
}

// NotFoundf builds a CodeNotFound error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a CodeConflict error.
func Conflictf(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidOption reports an unknown or inactive categorical value.
func InvalidOption(field, value string) *Error {
	return &Error{
		Code:    CodeInvalidOption,
		Message: "value is not an active option",
		Field:   field,
		Value:   value,
	}
}

// InvalidAmount reports a domain validation failure on a numeric field.
func InvalidAmount(field, message string) *Error {
	return &Error{Code: CodeInvalidAmount, Message: message, Field: field}
}

// InvalidReturn reports a returned unit that does not belong to the
// referenced sale.
func InvalidReturn(value, message string) *Error {
	return &Error{Code: CodeInvalidReturn, Message: message, Field: "returned_unit_ids", Value: value}
}

// DuplicateValue reports a uniqueness violation in the option registry.
func DuplicateValue(fieldType, value string) *Error {
	return &Error{
		Code:    CodeDuplicateValue,
		Message: "an active option with this value already exists",
		Field:   fieldType,
		Value:   value,
	}
}

// CodeOf extracts the domain code from an error chain, or "" when the
// error is not a domain error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func IsNotFound(err error) bool       { return CodeOf(err) == CodeNotFound }
func IsConflict(err error) bool       { return CodeOf(err) == CodeConflict }
func IsInvalidOption(err error) bool  { return CodeOf(err) == CodeInvalidOption }
func IsInvalidAmount(err error) bool  { return CodeOf(err) == CodeInvalidAmount }
func IsInvalidReturn(err error) bool  { return CodeOf(err) == CodeInvalidReturn }
func IsDuplicateValue(err error) bool { return CodeOf(err) == CodeDuplicateValue }

// BatchError aggregates row-level failures from a bulk import. The whole
// batch is rejected; RowErrors is capped by the importer and Truncated
// reports whether more errors existed than were kept.
type BatchError struct {
	RowErrors []string `json:"row_errors"`
	Truncated bool     `json:"truncated"`
}

func (e *BatchError) Error() string {
	msg := fmt.Sprintf("import rejected: %d row error(s)", len(e.RowErrors))
	if len(e.RowErrors) > 0 {
		msg += ": " + strings.Join(e.RowErrors, "; ")
	}
	if e.Truncated {
		msg += " (more errors omitted)"
	}
	return msg
}
