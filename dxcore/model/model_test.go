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

package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"dirpx.dev/dxbook/dxcore/model"
	"gopkg.in/yaml.v3"
)

// code is a minimal value type used to exercise the generic helpers.
type code struct{ value string }

func parseCode(raw string) (code, error) {
	c := code{value: raw}
	if err := c.Validate(); err != nil {
		return code{}, err
	}
	return c, nil
}

func (c code) Validate() error {
	if strings.ContainsAny(c.value, " \t") {
		return errors.New("code must not contain whitespace")
	}
	return nil
}

func (c code) TypeName() string  { return "Code" }
func (c code) IsZero() bool      { return c.value == "" }
func (c code) Redacted() string  { return "c***" }
func (c code) String() string    { return c.value }
func (c code) Equal(o code) bool { return c.value == o.value }

func (c code) MarshalJSON() ([]byte, error) { return json.Marshal(c.value) }

func (c *code) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	c.value = s
	return nil
}

func (c code) MarshalYAML() (interface{}, error) { return c.value, nil }

func (c *code) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&c.value)
}

var (
	_ model.Model            = (*code)(nil)
	_ model.Comparable[code] = code{}
)

func TestValidateAll(t *testing.T) {
	valid := []code{{"a"}, {"b"}}
	if err := model.ValidateAll(valid); err != nil {
		t.Errorf("ValidateAll(valid) = %v, want nil", err)
	}

	if err := model.ValidateAll([]code{}); err != nil {
		t.Errorf("ValidateAll(empty) = %v, want nil", err)
	}

	mixed := []code{{"a"}, {"b c"}, {"d"}, {"e f"}}
	err := model.ValidateAll(mixed)
	if err == nil {
		t.Fatal("ValidateAll(mixed) = nil, want error")
	}
	msg := err.Error()
	for _, want := range []string{"Code[1]", "Code[3]"} {
		if !strings.Contains(msg, want) {
			t.Errorf("ValidateAll error %q does not mention %q", msg, want)
		}
	}
	if strings.Contains(msg, "Code[0]") || strings.Contains(msg, "Code[2]") {
		t.Errorf("ValidateAll error %q mentions a valid element", msg)
	}
}

func TestSafeString(t *testing.T) {
	c := code{"secret"}
	if got := model.SafeString(c, false); got != "c***" {
		t.Errorf("SafeString(safe) = %q, want %q", got, "c***")
	}
	if got := model.SafeString(c, true); got != "secret" {
		t.Errorf("SafeString(unsafe) = %q, want %q", got, "secret")
	}
}

func TestEqualAll(t *testing.T) {
	tests := []struct {
		name string
		a, b []code
		want bool
	}{
		{"both empty", nil, []code{}, true},
		{"same order", []code{{"a"}, {"b"}}, []code{{"a"}, {"b"}}, true},
		{"different order", []code{{"a"}, {"b"}}, []code{{"b"}, {"a"}}, false},
		{"different length", []code{{"a"}}, []code{{"a"}, {"b"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.EqualAll(tt.a, tt.b); got != tt.want {
				t.Errorf("EqualAll(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParseCodeFixture(t *testing.T) {
	if _, err := parseCode("x y"); err == nil {
		t.Error("parseCode accepted whitespace")
	}
}

func TestFirstDuplicate(t *testing.T) {
	tests := []struct {
		name   string
		items  []string
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"unique", []string{"a", "b", "c"}, "", false},
		{"one duplicate", []string{"a", "b", "a"}, "a", true},
		{"first of several", []string{"a", "b", "b", "a"}, "b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := model.FirstDuplicate(tt.items)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FirstDuplicate(%v) = %q, %v, want %q, %v", tt.items, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSameElements(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want bool
	}{
		{"both empty", nil, []int{}, true},
		{"same order", []int{1, 2}, []int{1, 2}, true},
		{"different order", []int{1, 2, 3}, []int{3, 1, 2}, true},
		{"different length", []int{1}, []int{1, 2}, false},
		{"different element", []int{1, 2}, []int{1, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.SameElements(tt.a, tt.b); got != tt.want {
				t.Errorf("SameElements(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
