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

// Package errors provides the error taxonomy shared by every dxbook package.
//
// The errors in this package are simple value carriers with stable message
// formats. They are designed to be easy to construct from validation and
// decoding code, easy to recognize via errors.As and errors.Is, and easy for
// users to understand when surfaced by the command line.
//
// # Error Types
//
//   - ValidationError
//     Raw input was present but failed a grammar or length constraint.
//     For value types the Reason is the type's fixed constraint message and
//     is suitable for direct display to the user.
//
//   - NullInputError
//     Raw input was absent. This is always a programming error in the caller
//     (or a missing field in stored data) and is never confused with a
//     ValidationError.
//
//   - ParseError
//     Command argument text could not be interpreted, for example because a
//     single-valued prefix was given twice.
//
//   - UnmarshalError
//     A stored document could not be decoded into its adapted shape.
//
//   - IntegrityError
//     Returned only while decoding a stored address book. The Kind names the
//     violated rule and matches one of the Err* sentinels via errors.Is.
package errors

import (
	"errors"
	"fmt"
)

// ValidationError is returned when raw input fails the constraints of a
// value type or when an aggregate is assembled from inconsistent parts.
//
// Type identifies the logical name of the type being validated (for example,
// "Email", "Person"), Field optionally identifies which field failed,
// Reason is the human-readable constraint description, and Value optionally
// carries the rejected input.
//
// # Example
//
//	func ParseEmail(raw string) (Email, error) {
//	    if !IsValidEmail(raw) {
//	        return Email{}, &errors.ValidationError{
//	            Type:   "Email",
//	            Reason: EmailConstraints,
//	            Value:  raw,
//	        }
//	    }
//	    return Email{value: raw}, nil
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	// May be nil if not applicable or if the value should not be logged.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxbook: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxbook: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxbook: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxbook: invalid " + e.Type + ": " + e.Reason
}

// InField attributes err, a failure of one of typ's fields, to that field.
//
// A *ValidationError is re-tagged with typ and fieldName, keeping its Reason
// and Value, so callers see one shape for every aggregate. Any other error is
// wrapped and stays reachable through errors.As.
func InField(typ, fieldName string, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &ValidationError{
			Type:   typ,
			Field:  fieldName,
			Reason: ve.Reason,
			Value:  ve.Value,
		}
	}
	return fmt.Errorf("%s.%s: %w", typ, fieldName, err)
}

// NullInputError is returned when a value-type constructor receives no input
// at all. It is distinct from ValidationError: absent input is a caller bug,
// not a user mistake that can be fixed by re-prompting.
type NullInputError struct {
	// Type is the logical name of the type that was being constructed.
	Type string

	// Field optionally names the stored field that was missing.
	Field string
}

// Error implements the error interface for NullInputError.
func (e *NullInputError) Error() string {
	if e.Field != "" {
		return "dxbook: missing " + e.Type + " (field " + e.Field + ")"
	}
	return "dxbook: missing " + e.Type
}

// ParseError is returned when command argument text cannot be interpreted.
//
// Type identifies what was being parsed ("Prefix", "Arguments"), Value is the
// offending text and Reason optionally explains the failure.
type ParseError struct {
	// Type is the logical name of the thing being parsed.
	Type string

	// Value is the invalid textual representation that was provided.
	Value string

	// Reason is an optional explanation appended to the message.
	Reason string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxbook: invalid {Type} value: {Value}"
//	"dxbook: invalid {Type} value: {Value} ({Reason})"
func (e *ParseError) Error() string {
	msg := "dxbook: invalid " + e.Type + " value: " + e.Value
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// UnmarshalError is returned when a stored document fails to decode into its
// adapted shape, for example because a list holds a number where a string was
// expected.
//
// The Data field is intentionally not included in the formatted message to
// avoid dumping whole address books into logs.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
func (e *UnmarshalError) Error() string {
	return "dxbook: cannot unmarshal " + e.Type + ": " + e.Reason
}

// IntegrityKind names the rule an IntegrityError reports.
type IntegrityKind int

const (
	// KindInvalidField means a stored field failed its value-type grammar.
	KindInvalidField IntegrityKind = iota + 1

	// KindMissingField means a required stored field was absent.
	KindMissingField

	// KindDuplicatePerson means two stored persons share an identity.
	KindDuplicatePerson

	// KindDuplicateGroup means two stored groups share a name.
	KindDuplicateGroup

	// KindInvalidPersonInGroup means a group lists a member that is not a
	// stored person.
	KindInvalidPersonInGroup

	// KindInvalidGroupInPerson means a person references a group that is not
	// stored.
	KindInvalidGroupInPerson
)

// Fixed integrity messages. The %s verbs receive the offending group or
// person name.
const (
	MessageDuplicatePerson      = "Persons list contains duplicate person(s)."
	MessageDuplicateGroup       = "Groups list contains duplicate group(s)."
	MessageInvalidPersonInGroup = "Group %s contains an invalid person"
	MessageInvalidGroupInPerson = "Person %s contains an invalid group"
)

// Sentinels matched by IntegrityError.Is.
var (
	ErrInvalidField          = errors.New("stored field is invalid")
	ErrMissingField          = errors.New("stored field is missing")
	ErrDuplicatePerson       = errors.New(MessageDuplicatePerson)
	ErrDuplicateGroup        = errors.New(MessageDuplicateGroup)
	ErrInvalidPersonInGroup  = errors.New("group contains an invalid person")
	ErrInvalidGroupInPerson  = errors.New("person contains an invalid group")
	errUnknownIntegrityError = errors.New("unknown integrity violation")
)

// Sentinel returns the Err* value matching k.
func (k IntegrityKind) Sentinel() error {
	switch k {
	case KindInvalidField:
		return ErrInvalidField
	case KindMissingField:
		return ErrMissingField
	case KindDuplicatePerson:
		return ErrDuplicatePerson
	case KindDuplicateGroup:
		return ErrDuplicateGroup
	case KindInvalidPersonInGroup:
		return ErrInvalidPersonInGroup
	case KindInvalidGroupInPerson:
		return ErrInvalidGroupInPerson
	default:
		return errUnknownIntegrityError
	}
}

// String returns a short identifier for logs.
func (k IntegrityKind) String() string {
	switch k {
	case KindInvalidField:
		return "invalid_field"
	case KindMissingField:
		return "missing_field"
	case KindDuplicatePerson:
		return "duplicate_person"
	case KindDuplicateGroup:
		return "duplicate_group"
	case KindInvalidPersonInGroup:
		return "invalid_person_in_group"
	case KindInvalidGroupInPerson:
		return "invalid_group_in_person"
	default:
		return "unknown"
	}
}

// IntegrityError reports why a stored address book cannot be loaded.
//
// Every decode failure is an IntegrityError so that the application boundary
// can treat them uniformly as corrupt storage while still telling the user
// exactly what is wrong. Subject names the offending person or group (or the
// stored field for KindInvalidField and KindMissingField). Err carries the
// underlying ValidationError or NullInputError when there is one.
type IntegrityError struct {
	Kind    IntegrityKind
	Subject string
	Err     error
}

// Error implements the error interface for IntegrityError.
//
// The message reuses the fixed Message* formats so that it can be shown to
// users as is.
func (e *IntegrityError) Error() string {
	switch e.Kind {
	case KindDuplicatePerson:
		return MessageDuplicatePerson
	case KindDuplicateGroup:
		return MessageDuplicateGroup
	case KindInvalidPersonInGroup:
		return fmt.Sprintf(MessageInvalidPersonInGroup, e.Subject)
	case KindInvalidGroupInPerson:
		return fmt.Sprintf(MessageInvalidGroupInPerson, e.Subject)
	case KindMissingField:
		return "Stored field " + e.Subject + " is missing"
	case KindInvalidField:
		if e.Err != nil {
			return "Stored field " + e.Subject + " is invalid: " + e.Err.Error()
		}
		return "Stored field " + e.Subject + " is invalid"
	default:
		return errUnknownIntegrityError.Error()
	}
}

// Is reports whether target is the sentinel for e.Kind.
func (e *IntegrityError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// Unwrap returns the underlying field error, if any.
func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// Mutation-time failures returned by the address book.
var (
	ErrPersonExists   = errors.New("person already exists in the address book")
	ErrGroupExists    = errors.New("group already exists in the address book")
	ErrPersonNotFound = errors.New("person not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrAlreadyMember  = errors.New("person is already a member of the group")
	ErrNotMember      = errors.New("person is not a member of the group")
)
