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

// Package parser splits prefixed command arguments such as
// "n/Alice e/e1234567 g/CS2103" and converts them into validated values.
package parser

// Prefix marks the start of an argument, e.g. "n/" in "n/Alice".
//
// A Prefix may be declared exactly-once with Once. Identity is the marker
// alone: Equal and Key ignore the flag, so NewPrefix("n/") and
// NewPrefix("n/").Once() are the same prefix. Go's == also compares the
// flag; use Equal or Key instead.
type Prefix struct {
	marker string
	once   bool
}

// NewPrefix returns a prefix that may appear any number of times.
func NewPrefix(marker string) Prefix {
	return Prefix{marker: marker}
}

// Once returns a copy of p that may appear at most once. p is unchanged.
func (p Prefix) Once() Prefix {
	p.once = true
	return p
}

// IsUnique reports whether p was declared with Once.
func (p Prefix) IsUnique() bool { return p.once }

// Marker returns the literal marker text.
func (p Prefix) Marker() string { return p.marker }

// String returns the marker.
func (p Prefix) String() string { return p.marker }

// Equal compares markers only.
func (p Prefix) Equal(other Prefix) bool { return p.marker == other.marker }

// Key is the map key for p. Two prefixes have the same Key iff they are
// Equal.
func (p Prefix) Key() string { return p.marker }

// Argument prefixes understood by dxbook commands.
var (
	PrefixName      = NewPrefix("n/").Once()
	PrefixEmail     = NewPrefix("e/").Once()
	PrefixGroup     = NewPrefix("g/")
	PrefixGroupName = NewPrefix("gn/").Once()
	PrefixRepoLink  = NewPrefix("r/").Once()
)
