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

package field

import (
	"encoding/json"
	"fmt"
	"regexp"

	"dirpx.dev/dxbook/dxcore/model"
	"gopkg.in/yaml.v3"
)

// NameConstraints is shown to users whose input fails IsValidName.
const NameConstraints = "Names should only contain alphanumeric characters and spaces, and it should not be blank"

// NameRegexp matches a person name: an alphanumeric first character
// followed by alphanumerics and spaces.
var NameRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]*$`)

// Name is a person's display name. Person identity within an address book is
// its Name, so group memberships reference persons by Name.
type Name struct {
	value string
}

var _ model.Model = (*Name)(nil)

// ParseName validates raw and returns it as a Name.
func ParseName(raw string) (Name, error) {
	if !IsValidName(raw) {
		return Name{}, invalid("Name", NameConstraints, raw)
	}
	return Name{value: raw}, nil
}

// ParseNamePtr is ParseName for optional input.
func ParseNamePtr(raw *string) (Name, error) {
	s, err := deref("Name", raw)
	if err != nil {
		return Name{}, err
	}
	return ParseName(s)
}

// MustParseName is ParseName for literals known to be valid. It panics on
// invalid input.
func MustParseName(raw string) Name {
	n, err := ParseName(raw)
	if err != nil {
		panic(err)
	}
	return n
}

// IsValidName reports whether raw is an acceptable Name.
func IsValidName(raw string) bool {
	return NameRegexp.MatchString(raw)
}

// String returns the raw name.
func (n Name) String() string { return n.value }

// Redacted returns the name unchanged; names are shown in every listing.
func (n Name) Redacted() string { return n.value }

// TypeName returns "Name".
func (n Name) TypeName() string { return "Name" }

// IsZero reports whether the name is unset.
func (n Name) IsZero() bool { return n.value == "" }

// Equal reports whether both hold the same value.
func (n Name) Equal(other Name) bool { return n == other }

// Validate reports an error for the zero Name.
func (n Name) Validate() error {
	if n.IsZero() {
		return empty(n.TypeName())
	}
	if !IsValidName(n.value) {
		return invalid(n.TypeName(), NameConstraints, n.value)
	}
	return nil
}

// MarshalJSON writes the value as a JSON string.
func (n Name) MarshalJSON() ([]byte, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", n.TypeName(), err)
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON parses a JSON string with the same rules as the constructor.
func (n *Name) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString("Name", data)
	if err != nil {
		return err
	}
	parsed, err := ParseName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// MarshalYAML writes the value as a YAML scalar.
func (n Name) MarshalYAML() (interface{}, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", n.TypeName(), err)
	}
	return n.value, nil
}

// UnmarshalYAML parses a YAML scalar with the same rules as the constructor.
func (n *Name) UnmarshalYAML(node *yaml.Node) error {
	s, err := decodeYAMLString("Name", node)
	if err != nil {
		return err
	}
	parsed, err := ParseName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (n Name) MarshalText() ([]byte, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return []byte(n.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
