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

// Package person defines the Person aggregate.
package person

import (
	"fmt"
	"slices"
	"strings"

	"dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model"
	"dirpx.dev/dxbook/dxcore/model/field"
)

// Person is a contact in the address book.
//
// A Person is assembled from already validated value types and adds a single
// rule of its own: Groups holds each group name at most once. Groups is an
// ordered set; its order is kept for display but is irrelevant to equality.
//
// Person is immutable by convention. Methods that change membership return a
// modified copy and never touch the receiver's slice.
type Person struct {
	Name   field.Name
	Email  field.Email
	Groups []field.GroupName
}

var (
	_ model.Entity             = Person{}
	_ model.Comparable[Person] = Person{}
)

// New assembles a Person. A repeated group name is a caller error and is
// reported as a *errors.ValidationError rather than silently dropped.
func New(name field.Name, email field.Email, groups ...field.GroupName) (Person, error) {
	p := Person{
		Name:   name,
		Email:  email,
		Groups: slices.Clone(groups),
	}
	if err := p.Validate(); err != nil {
		return Person{}, err
	}
	return p, nil
}

// TypeName returns "Person".
func (p Person) TypeName() string { return "Person" }

// IsZero reports whether p has no name, email or groups.
func (p Person) IsZero() bool {
	return p.Name.IsZero() && p.Email.IsZero() && len(p.Groups) == 0
}

// Validate checks every field and the uniqueness of group references.
func (p Person) Validate() error {
	if err := p.Name.Validate(); err != nil {
		return errors.InField(p.TypeName(), "Name", err)
	}
	if err := p.Email.Validate(); err != nil {
		return errors.InField(p.TypeName(), "Email", err)
	}
	for _, g := range p.Groups {
		if err := g.Validate(); err != nil {
			return errors.InField(p.TypeName(), "Groups", err)
		}
	}
	if dup, ok := model.FirstDuplicate(p.Groups); ok {
		return &errors.ValidationError{
			Type:   p.TypeName(),
			Field:  "Groups",
			Reason: fmt.Sprintf("duplicate group reference %q", dup.String()),
			Value:  dup.String(),
		}
	}
	return nil
}

// IsSamePerson reports whether other has the same identity, i.e. the same
// Name. Two persons with the same Name cannot coexist in an address book.
func (p Person) IsSamePerson(other Person) bool {
	return p.Name == other.Name
}

// Equal reports full-value equality. Group order is ignored.
func (p Person) Equal(other Person) bool {
	return p.Name == other.Name &&
		p.Email == other.Email &&
		model.SameElements(p.Groups, other.Groups)
}

// HasGroup reports whether p references g.
func (p Person) HasGroup(g field.GroupName) bool {
	return slices.Contains(p.Groups, g)
}

// WithGroup returns a copy of p that also references g.
func (p Person) WithGroup(g field.GroupName) (Person, error) {
	if p.HasGroup(g) {
		return Person{}, fmt.Errorf("%w: %s in %s", errors.ErrAlreadyMember, p.Name, g)
	}
	out := p
	out.Groups = append(slices.Clone(p.Groups), g)
	return out, nil
}

// WithoutGroup returns a copy of p that no longer references g. It is a
// no-op copy when p does not reference g.
func (p Person) WithoutGroup(g field.GroupName) Person {
	out := p
	out.Groups = slices.DeleteFunc(slices.Clone(p.Groups), func(x field.GroupName) bool { return x == g })
	return out
}

// WithEmail returns a copy of p with a different email.
func (p Person) WithEmail(e field.Email) Person {
	out := p
	out.Groups = slices.Clone(p.Groups)
	out.Email = e
	return out
}

// String includes the full email.
func (p Person) String() string {
	return fmt.Sprintf("Person{Name:%s, Email:%s, Groups:[%s]}", p.Name, p.Email, joinGroups(p.Groups))
}

// Redacted masks the email.
func (p Person) Redacted() string {
	return fmt.Sprintf("Person{Name:%s, Email:%s, Groups:[%s]}", p.Name, p.Email.Redacted(), joinGroups(p.Groups))
}

func joinGroups(groups []field.GroupName) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = g.String()
	}
	return strings.Join(parts, " ")
}
