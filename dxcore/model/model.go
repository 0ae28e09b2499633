/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package model defines the contracts shared by all dxbook domain types.
//
// Two families of types exist. Value types (Name, Email, GroupName,
// RepoLink) implement Model: they validate themselves, serialize to JSON and
// YAML, and redact personal data when logged. Aggregates (Person, Group)
// implement Entity: they validate and log, but never serialize themselves.
// Aggregates cross the storage boundary only through the flat adapted records
// of package storage, so that a change to the stored shape never forces a
// change to validation logic.
//
// Unless explicitly documented otherwise, implementations are immutable value
// types and are safe for concurrent reads.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the contract for self-validating value types. Any type
// implementing Model gains support for validation, JSON and YAML
// serialization, safe logging, type identification and zero detection.
//
// A value type MUST make invalid states unrepresentable: the only way to
// obtain a non-zero instance is a constructor that validates its input.
// Validate therefore never fails for a constructed instance; it exists so
// that generic helpers can treat value types and aggregates uniformly.
//
// Example implementation:
//
//	type Code struct{ value string }
//
//	func ParseCode(raw string) (Code, error) { ... }
//	func (c Code) Validate() error           { return nil }
//	func (c Code) TypeName() string          { return "Code" }
//	func (c Code) IsZero() bool              { return c.value == "" }
//	func (c Code) Redacted() string          { return c.value }
//	func (c Code) String() string            { return c.value }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ Model = (*Code)(nil)
type Model interface {
	Entity
	Serializable
}

// Entity is the contract for aggregates assembled from value types.
type Entity interface {
	Validatable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that validate their own state.
//
// Validate MUST check every invariant of the receiver, recursively validate
// nested values, and return nil if and only if the instance is fully valid.
// When validation fails, the error SHOULD be a *errors.ValidationError naming
// the type and field at fault.
//
// Validate MUST be fast, deterministic and free of side effects. It MUST NOT
// mutate the receiver.
type Validatable interface {
	Validate() error
}

// Serializable defines the contract for types that round-trip through JSON
// and YAML.
//
// Marshal methods emit the raw payload. Unmarshal methods MUST run the same
// validation as the type's constructor, so that a value read from any source
// is indistinguishable from one built from user input.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types with a safe logging form.
type Loggable interface {
	// Redacted returns a representation suitable for production logs. It
	// MUST mask personal data such as email addresses.
	Redacted() string

	// String returns the full representation. It MAY include personal data
	// and MUST NOT be used for production logging.
	String() string
}

// Identifiable supplies a canonical type name for diagnostics.
type Identifiable interface {
	// TypeName returns a constant CamelCase name without package prefix.
	TypeName() string
}

// ZeroCheckable detects the zero or unset state.
type ZeroCheckable interface {
	IsZero() bool
}

// Comparable defines value equality between two instances of the same type.
type Comparable[T any] interface {
	Equal(other T) bool
}
