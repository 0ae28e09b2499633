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

// Package field provides the validated value types that make up persons and
// groups: Name, Email, GroupName and RepoLink.
//
// Every type wraps a single unexported string. The only way to obtain a
// non-zero value is one of the Parse functions, which validate their input
// and return a *errors.ValidationError carrying the type's fixed constraint
// message when the input is rejected. Invalid values are therefore
// unrepresentable once constructed.
//
// Values compare with == by payload and can be used as map keys. String
// returns the payload verbatim; there is no normalization, so
// ParseX(s).String() == s for every accepted s.
//
// Each ParseX has a ParseXPtr twin taking a *string. A nil pointer yields a
// *errors.NullInputError rather than a ValidationError, which lets callers
// holding optional data (stored records, decoded documents) tell "absent"
// apart from "present but wrong".
package field

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/dxbook/dxcore/errors"
	"gopkg.in/yaml.v3"
)

// deref returns *raw or a NullInputError naming typ.
func deref(typ string, raw *string) (string, error) {
	if raw == nil {
		return "", &errors.NullInputError{Type: typ}
	}
	return *raw, nil
}

func invalid(typ, constraints, raw string) error {
	return &errors.ValidationError{
		Type:   typ,
		Reason: constraints,
		Value:  raw,
	}
}

func empty(typ string) error {
	return &errors.ValidationError{
		Type:   typ,
		Reason: "must not be empty",
	}
}

// decodeJSONString unmarshals a JSON string for typ.
func decodeJSONString(typ string, data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", &errors.UnmarshalError{
			Type:   typ,
			Data:   data,
			Reason: err.Error(),
		}
	}
	return s, nil
}

// decodeYAMLString decodes a YAML scalar for typ.
func decodeYAMLString(typ string, node *yaml.Node) (string, error) {
	var s string
	if err := node.Decode(&s); err != nil {
		return "", &errors.UnmarshalError{
			Type:   typ,
			Data:   []byte(fmt.Sprintf("%v", node.Value)),
			Reason: err.Error(),
		}
	}
	return s, nil
}
