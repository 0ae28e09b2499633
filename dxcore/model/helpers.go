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

package model

import (
	"fmt"

	"dirpx.dev/rxmerr"
)

// ValidateAll validates a slice of entities and returns every failure rather
// than stopping at the first one.
//
// Each failure is wrapped with the element's index and TypeName so callers
// can tell exactly which entity is broken. The failures are combined with an
// rxmerr.Collector; the result is nil when every entity is valid. Empty
// slices are valid.
//
// Example:
//
//	if err := model.ValidateAll(book.Persons()); err != nil {
//	    logger.Warn("address book has invalid persons", "error", err)
//	}
func ValidateAll[T Entity](entities []T) error {
	c := rxmerr.NewCollector()

	for i, e := range entities {
		if err := e.Validate(); err != nil {
			c.Append(fmt.Errorf("%s[%d]: %w", e.TypeName(), i, err))
		}
	}

	return c.Err()
}

// SafeString returns the form of e that may be logged: e.Redacted() by
// default, or e.String() when unsafe is true. Callers pass unsafe only when
// the operator asked for full detail, such as at debug log level.
func SafeString[T Entity](e T, unsafe bool) string {
	if unsafe {
		return e.String()
	}
	return e.Redacted()
}

// FirstDuplicate returns the first element of items that occurs earlier in
// the slice, and whether one was found.
func FirstDuplicate[T comparable](items []T) (T, bool) {
	seen := make(map[T]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			return it, true
		}
		seen[it] = struct{}{}
	}
	var zero T
	return zero, false
}

// SameElements reports whether a and b hold the same elements, ignoring
// order. Both slices are assumed to be free of duplicates.
func SameElements[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[T]struct{}, len(a))
	for _, it := range a {
		set[it] = struct{}{}
	}
	for _, it := range b {
		if _, ok := set[it]; !ok {
			return false
		}
	}
	return true
}

// EqualAll reports whether a and b have the same length and pairwise Equal
// elements in the same order.
func EqualAll[T Comparable[T]](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
