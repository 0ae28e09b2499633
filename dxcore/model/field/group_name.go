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

// GroupNameMaxLength is the longest accepted group name.
const GroupNameMaxLength = 50

// GroupNameConstraints is shown to users whose input fails IsValidGroupName.
const GroupNameConstraints = "Group names should only contain alphanumeric characters, spaces, '-' or '_', " +
	"should start with an alphanumeric character, and should be at most 50 characters long"

// GroupNameRegexp matches the character set of a group name. Length is
// checked separately.
var GroupNameRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _-]*$`)

// GroupName identifies a group. It is unique within an address book and is
// the key persons use to reference the groups they belong to.
type GroupName struct {
	value string
}

var _ model.Model = (*GroupName)(nil)

// ParseGroupName validates raw and returns it as a GroupName.
func ParseGroupName(raw string) (GroupName, error) {
	if !IsValidGroupName(raw) {
		return GroupName{}, invalid("GroupName", GroupNameConstraints, raw)
	}
	return GroupName{value: raw}, nil
}

// ParseGroupNamePtr is ParseGroupName for optional input.
func ParseGroupNamePtr(raw *string) (GroupName, error) {
	s, err := deref("GroupName", raw)
	if err != nil {
		return GroupName{}, err
	}
	return ParseGroupName(s)
}

// MustParseGroupName panics if raw is not a valid GroupName.
func MustParseGroupName(raw string) GroupName {
	g, err := ParseGroupName(raw)
	if err != nil {
		panic(err)
	}
	return g
}

// IsValidGroupName reports whether raw is an acceptable GroupName.
func IsValidGroupName(raw string) bool {
	return len(raw) <= GroupNameMaxLength && GroupNameRegexp.MatchString(raw)
}

// String returns the raw name.
func (g GroupName) String() string { return g.value }

// Redacted returns the name unchanged.
func (g GroupName) Redacted() string { return g.value }

// TypeName returns "GroupName".
func (g GroupName) TypeName() string { return "GroupName" }

// IsZero reports whether the group name is unset.
func (g GroupName) IsZero() bool { return g.value == "" }

// Equal reports whether both hold the same value.
func (g GroupName) Equal(other GroupName) bool { return g == other }

// Validate checks g against the GroupName grammar. The zero value is invalid.
func (g GroupName) Validate() error {
	if g.IsZero() {
		return empty(g.TypeName())
	}
	if !IsValidGroupName(g.value) {
		return invalid(g.TypeName(), GroupNameConstraints, g.value)
	}
	return nil
}

// MarshalJSON writes the value as a JSON string.
func (g GroupName) MarshalJSON() ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", g.TypeName(), err)
	}
	return json.Marshal(g.value)
}

// UnmarshalJSON parses a JSON string with the same rules as the constructor.
func (g *GroupName) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString("GroupName", data)
	if err != nil {
		return err
	}
	parsed, err := ParseGroupName(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalYAML writes the value as a YAML scalar.
func (g GroupName) MarshalYAML() (interface{}, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", g.TypeName(), err)
	}
	return g.value, nil
}

// UnmarshalYAML parses a YAML scalar with the same rules as the constructor.
func (g *GroupName) UnmarshalYAML(node *yaml.Node) error {
	s, err := decodeYAMLString("GroupName", node)
	if err != nil {
		return err
	}
	parsed, err := ParseGroupName(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (g GroupName) MarshalText() ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return []byte(g.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GroupName) UnmarshalText(text []byte) error {
	parsed, err := ParseGroupName(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
