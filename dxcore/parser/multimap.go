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

package parser

import (
	"slices"
	"strings"

	"dirpx.dev/dxbook/dxcore/errors"
)

// Fixed reasons reported in *errors.ParseError.
const (
	ReasonDuplicatePrefixes = "multiple values specified for the following single-valued field(s)"
	ReasonMissingPrefixes   = "missing required field(s)"
	ReasonUnexpectedText    = "unexpected text before the first field"
)

// ArgumentMultimap maps prefixes to the values given for them, in order.
type ArgumentMultimap struct {
	declared []Prefix
	values   map[string][]string
	preamble string
}

func newArgumentMultimap(declared []Prefix) ArgumentMultimap {
	return ArgumentMultimap{
		declared: slices.Clone(declared),
		values:   make(map[string][]string),
	}
}

func (m ArgumentMultimap) put(p Prefix, value string) {
	m.values[p.Key()] = append(m.values[p.Key()], value)
}

// Value returns the last value given for p.
func (m ArgumentMultimap) Value(p Prefix) (string, bool) {
	vs := m.values[p.Key()]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// AllValues returns every value given for p, in order.
func (m ArgumentMultimap) AllValues(p Prefix) []string {
	return slices.Clone(m.values[p.Key()])
}

// Preamble returns the trimmed text before the first prefix.
func (m ArgumentMultimap) Preamble() string { return m.preamble }

// VerifyNoDuplicatePrefixesFor fails if any of prefixes was given more than
// once.
func (m ArgumentMultimap) VerifyNoDuplicatePrefixesFor(prefixes ...Prefix) error {
	var dups []string
	for _, p := range prefixes {
		if len(m.values[p.Key()]) > 1 && !slices.Contains(dups, p.Marker()) {
			dups = append(dups, p.Marker())
		}
	}
	if len(dups) == 0 {
		return nil
	}
	return &errors.ParseError{Type: "arguments", Value: strings.Join(dups, " "), Reason: ReasonDuplicatePrefixes}
}

// VerifyUnique applies VerifyNoDuplicatePrefixesFor to every prefix the map
// was tokenized with that is declared Once.
func (m ArgumentMultimap) VerifyUnique() error {
	var once []Prefix
	for _, p := range m.declared {
		if p.IsUnique() {
			once = append(once, p)
		}
	}
	return m.VerifyNoDuplicatePrefixesFor(once...)
}

// Require fails if any of prefixes was not given.
func (m ArgumentMultimap) Require(prefixes ...Prefix) error {
	var missing []string
	for _, p := range prefixes {
		if _, ok := m.Value(p); !ok {
			missing = append(missing, p.Marker())
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &errors.ParseError{Type: "arguments", Value: strings.Join(missing, " "), Reason: ReasonMissingPrefixes}
}

// RequireEmptyPreamble fails if text precedes the first prefix.
func (m ArgumentMultimap) RequireEmptyPreamble() error {
	if m.preamble == "" {
		return nil
	}
	return &errors.ParseError{Type: "arguments", Value: m.preamble, Reason: ReasonUnexpectedText}
}
