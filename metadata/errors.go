// Copyright (c) 2024 The IEA Wind Task 43 Project and its Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package metadata

import (
	"fmt"
	"strings"
)

// stable error kind identifiers, one per validation failure class
const (
	KindMissingField        = "missing_field"
	KindTypeMismatch        = "type_mismatch"
	KindInvalidEnumValue    = "invalid_enum_value"
	KindConflictingConstant = "conflicting_constant"
	KindUnknownField        = "unknown_field"
)

// A single validation failure, located by the path of the offending field.
// Paths use dot/bracket notation, e.g. "authors[2].orcid".
type FieldError interface {
	error
	// the path of the field the error pertains to
	Path() string
	// one of the Kind* identifiers above
	Kind() string
}

// indicates that a required field is absent from the input
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("The required field '%s' is missing", e.Field)
}

func (e MissingFieldError) Path() string { return e.Field }
func (e MissingFieldError) Kind() string { return KindMissingField }

// indicates that a field's value cannot be read as its declared type
type TypeMismatchError struct {
	Field    string
	Expected string // describes the declared type, e.g. "text" or "a date (YYYY-MM-DD)"
	Value    any
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("The field '%s' must be %s", e.Field, e.Expected)
}

func (e TypeMismatchError) Path() string { return e.Field }
func (e TypeMismatchError) Kind() string { return KindTypeMismatch }

// indicates that a field's value is text but not one of the field's
// allowed values
type InvalidEnumValueError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e InvalidEnumValueError) Error() string {
	return fmt.Sprintf("Invalid value '%s' for field '%s' (allowed: %s)",
		e.Value, e.Field, strings.Join(e.Allowed, ", "))
}

func (e InvalidEnumValueError) Path() string { return e.Field }
func (e InvalidEnumValueError) Kind() string { return KindInvalidEnumValue }

// indicates that the input supplies a value for resource_type other than
// the fixed literal "software"
type ConflictingConstantError struct {
	Field string
	Value any
}

func (e ConflictingConstantError) Error() string {
	return fmt.Sprintf("The field '%s' is fixed to '%s' and cannot be '%v'",
		e.Field, resourceTypeValue, e.Value)
}

func (e ConflictingConstantError) Path() string { return e.Field }
func (e ConflictingConstantError) Kind() string { return KindConflictingConstant }

// indicates that the input carries a field that is not part of the schema
// (reported only when the validator is configured to reject unknown fields)
type UnknownFieldError struct {
	Field string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("The field '%s' is not part of the metadata schema", e.Field)
}

func (e UnknownFieldError) Path() string { return e.Field }
func (e UnknownFieldError) Kind() string { return KindUnknownField }

// Every validation failure found in a document, in schema declaration order
// (sequence elements in input order). A document with any violation is
// rejected entirely, so a non-empty list always accompanies a zero Document.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	messages := make([]string, len(e))
	for i, fieldErr := range e {
		messages[i] = fieldErr.Error()
	}
	if len(e) == 1 {
		return messages[0]
	}
	return fmt.Sprintf("%d validation errors: %s", len(e), strings.Join(messages, "; "))
}

func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, fieldErr := range e {
		errs[i] = fieldErr
	}
	return errs
}
