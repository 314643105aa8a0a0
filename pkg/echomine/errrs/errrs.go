// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errrs defines the small, stable error hierarchy exposed by the
// echomine core. Every error the core raises (as opposed to an OS error it
// forwards unchanged, per the file-not-found / permission case) implements
// the Error interface so callers can distinguish fail-fast kinds from one
// another with a single type switch (or errors.As), or by comparing the
// value returned by Kind().
//
// The package is named errrs, not errors, so importing packages don't have
// to alias away the standard library's errors package.
package errrs

import "fmt"

// Kind classifies an echomine error. Kinds are stable across releases.
type Kind string

const (
	// KindParse indicates a JSON syntax error or a truncated/corrupted export.
	KindParse Kind = "parse"

	// KindValidation indicates a record failed normalized-model validation.
	KindValidation Kind = "validation"

	// KindSchemaVersion indicates a recognized-but-unsupported provider
	// export schema version.
	KindSchemaVersion Kind = "schema_version"

	// KindUnsupportedFormat indicates provider detection could not
	// classify the export at all.
	KindUnsupportedFormat Kind = "unsupported_format"
)

// Error is the interface every echomine-raised error satisfies. OS errors
// (file not found, permission denied) are never wrapped in an Error; they
// propagate from the standard library unchanged.
type Error interface {
	error
	Kind() Kind
	Unwrap() error
}

type baseError struct {
	kind    Kind
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *baseError) Kind() Kind   { return e.kind }
func (e *baseError) Unwrap() error { return e.cause }

// ParseError wraps a JSON syntax error or truncated export (spec §7: "Parse").
type ParseError struct{ *baseError }

// NewParseError builds a ParseError, optionally wrapping a lower-level cause.
func NewParseError(message string, cause error) *ParseError {
	return &ParseError{&baseError{kind: KindParse, message: message, cause: cause}}
}

// ValidationError wraps a normalized-model validation failure
// (spec §7: "Validation during streaming" / "Validation during point lookup").
type ValidationError struct {
	*baseError
	// Field names the offending field, when known ("", if the failure is
	// not attributable to a single field, e.g. a cross-field invariant).
	Field string
}

// NewValidationError builds a ValidationError for the named field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		baseError: &baseError{kind: KindValidation, message: message},
		Field:     field,
	}
}

// SchemaVersionError wraps an unsupported-but-recognized provider schema
// version (spec §7: "Schema version").
type SchemaVersionError struct{ *baseError }

// NewSchemaVersionError builds a SchemaVersionError.
func NewSchemaVersionError(message string) *SchemaVersionError {
	return &SchemaVersionError{&baseError{kind: KindSchemaVersion, message: message}}
}

// UnsupportedFormatError wraps a detection failure: neither a Claude nor an
// OpenAI marker key was found in the first record (spec §4.3 rule 4).
type UnsupportedFormatError struct{ *baseError }

// NewUnsupportedFormatError builds an UnsupportedFormatError. message should
// list the keys the detector looked for, per spec §7's "message listing
// required keys".
func NewUnsupportedFormatError(message string) *UnsupportedFormatError {
	return &UnsupportedFormatError{&baseError{kind: KindUnsupportedFormat, message: message}}
}
