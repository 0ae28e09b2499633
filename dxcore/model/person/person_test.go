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

package person_test

import (
	"errors"
	"testing"

	dxerrors "dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model/field"
	"dirpx.dev/dxbook/dxcore/model/person"
)

var (
	alice  = field.MustParseName("Alice Pauline")
	bob    = field.MustParseName("Bob Choo")
	email1 = field.MustParseEmail("e1234567")
	email2 = field.MustParseEmail("e7654321")
	cs2103 = field.MustParseGroupName("CS2103")
	cs2101 = field.MustParseGroupName("CS2101")
)

func TestNew(t *testing.T) {
	p, err := person.New(alice, email1, cs2103, cs2101)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Name != alice || p.Email != email1 || len(p.Groups) != 2 {
		t.Errorf("New = %v", p)
	}
}

func TestNew_DuplicateGroup(t *testing.T) {
	_, err := person.New(alice, email1, cs2103, cs2101, cs2103)
	var ve *dxerrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("New(duplicate) error = %v, want *ValidationError", err)
	}
	if ve.Field != "Groups" {
		t.Errorf("Field = %q, want %q", ve.Field, "Groups")
	}
}

func TestNew_CopiesGroups(t *testing.T) {
	groups := []field.GroupName{cs2103}
	p, err := person.New(alice, email1, groups...)
	if err != nil {
		t.Fatal(err)
	}
	groups[0] = cs2101
	if p.Groups[0] != cs2103 {
		t.Error("New kept a reference to the caller's slice")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		p         person.Person
		wantField string
	}{
		{"valid", person.Person{Name: alice, Email: email1}, ""},
		{"missing name", person.Person{Email: email1}, "Name"},
		{"missing email", person.Person{Name: alice}, "Email"},
		{"zero group", person.Person{Name: alice, Email: email1, Groups: []field.GroupName{{}}}, "Groups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var ve *dxerrors.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.wantField {
				t.Errorf("Validate() = %v, want ValidationError on %s", err, tt.wantField)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	base := person.Person{Name: alice, Email: email1, Groups: []field.GroupName{cs2103, cs2101}}

	tests := []struct {
		name  string
		other person.Person
		want  bool
	}{
		{"same", person.Person{Name: alice, Email: email1, Groups: []field.GroupName{cs2103, cs2101}}, true},
		{"group order ignored", person.Person{Name: alice, Email: email1, Groups: []field.GroupName{cs2101, cs2103}}, true},
		{"different email", person.Person{Name: alice, Email: email2, Groups: []field.GroupName{cs2103, cs2101}}, false},
		{"different name", person.Person{Name: bob, Email: email1, Groups: []field.GroupName{cs2103, cs2101}}, false},
		{"fewer groups", person.Person{Name: alice, Email: email1, Groups: []field.GroupName{cs2103}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSamePerson(t *testing.T) {
	a := person.Person{Name: alice, Email: email1}
	if !a.IsSamePerson(person.Person{Name: alice, Email: email2}) {
		t.Error("same name with different email should be the same person")
	}
	if a.IsSamePerson(person.Person{Name: bob, Email: email1}) {
		t.Error("different names should not be the same person")
	}
}

func TestWithGroup(t *testing.T) {
	p := person.Person{Name: alice, Email: email1, Groups: []field.GroupName{cs2103}}

	added, err := p.WithGroup(cs2101)
	if err != nil {
		t.Fatalf("WithGroup: %v", err)
	}
	if !added.HasGroup(cs2101) || !added.HasGroup(cs2103) {
		t.Errorf("WithGroup = %v", added)
	}
	if p.HasGroup(cs2101) {
		t.Error("WithGroup mutated the receiver")
	}

	if _, err := added.WithGroup(cs2103); !errors.Is(err, dxerrors.ErrAlreadyMember) {
		t.Errorf("WithGroup(existing) error = %v, want ErrAlreadyMember", err)
	}

	removed := added.WithoutGroup(cs2103)
	if removed.HasGroup(cs2103) || !added.HasGroup(cs2103) {
		t.Errorf("WithoutGroup = %v (receiver %v)", removed, added)
	}
}

func TestWithEmail(t *testing.T) {
	p := person.Person{Name: alice, Email: email1}
	q := p.WithEmail(email2)
	if q.Email != email2 || p.Email != email1 {
		t.Errorf("WithEmail = %v, receiver %v", q, p)
	}
}

func TestStringAndRedacted(t *testing.T) {
	p := person.Person{Name: alice, Email: email1, Groups: []field.GroupName{cs2103, cs2101}}

	if got, want := p.String(), "Person{Name:Alice Pauline, Email:e1234567, Groups:[CS2103 CS2101]}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := p.Redacted(), "Person{Name:Alice Pauline, Email:e***, Groups:[CS2103 CS2101]}"; got != want {
		t.Errorf("Redacted() = %q, want %q", got, want)
	}
}

func TestIsZero(t *testing.T) {
	if !(person.Person{}).IsZero() {
		t.Error("zero Person IsZero() = false")
	}
	if (person.Person{Name: alice}).IsZero() {
		t.Error("named Person IsZero() = true")
	}
}
