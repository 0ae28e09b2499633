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

// Package addressbook provides the aggregate store that owns every Person
// and Group and keeps the references between them consistent.
//
// Persons reference groups by GroupName and groups reference members by
// person Name. The store guarantees that every referenced key exists:
//
//   - at construction time, through Restore (used by the storage layer),
//   - at mutation time, through AddPerson, AddGroup, Assign and friends.
//
// Mutations performed through the API keep both sides of a membership in
// step: assigning a person to a group updates the person's Groups and the
// group's Members together, and removing either side cascades.
//
// AddressBook is not safe for concurrent use.
package addressbook

import (
	"fmt"
	"slices"

	"dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model"
	"dirpx.dev/dxbook/dxcore/model/field"
	"dirpx.dev/dxbook/dxcore/model/group"
	"dirpx.dev/dxbook/dxcore/model/person"
	"dirpx.dev/rxmerr"
)

// AddressBook holds persons and groups in insertion order.
type AddressBook struct {
	persons []person.Person
	groups  []group.Group

	personIndex map[field.Name]int
	groupIndex  map[field.GroupName]int
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{
		personIndex: make(map[field.Name]int),
		groupIndex:  make(map[field.GroupName]int),
	}
}

// Restore builds an address book from already decoded aggregates and checks
// it with Validate. Slices are copied.
//
// Restore does not require memberships to be mirrored on both sides; a
// stored person may list a group that does not list the person back, as
// long as both keys exist.
func Restore(persons []person.Person, groups []group.Group) (*AddressBook, error) {
	b := &AddressBook{
		persons: slices.Clone(persons),
		groups:  slices.Clone(groups),
	}
	b.reindex()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *AddressBook) reindex() {
	b.personIndex = make(map[field.Name]int, len(b.persons))
	for i, p := range b.persons {
		b.personIndex[p.Name] = i
	}
	b.groupIndex = make(map[field.GroupName]int, len(b.groups))
	for i, g := range b.groups {
		b.groupIndex[g.Name] = i
	}
}

// Len returns the number of persons.
func (b *AddressBook) Len() int { return len(b.persons) }

// Persons returns a copy of the persons in insertion order.
func (b *AddressBook) Persons() []person.Person { return slices.Clone(b.persons) }

// Groups returns a copy of the groups in insertion order.
func (b *AddressBook) Groups() []group.Group { return slices.Clone(b.groups) }

// HasPerson reports whether a person with the given name exists.
func (b *AddressBook) HasPerson(name field.Name) bool {
	_, ok := b.personIndex[name]
	return ok
}

// HasGroup reports whether a group with the given name exists.
func (b *AddressBook) HasGroup(name field.GroupName) bool {
	_, ok := b.groupIndex[name]
	return ok
}

// Person looks up a person by name.
func (b *AddressBook) Person(name field.Name) (person.Person, bool) {
	i, ok := b.personIndex[name]
	if !ok {
		return person.Person{}, false
	}
	return b.persons[i], true
}

// Group looks up a group by name.
func (b *AddressBook) Group(name field.GroupName) (group.Group, bool) {
	i, ok := b.groupIndex[name]
	if !ok {
		return group.Group{}, false
	}
	return b.groups[i], true
}

// AddPerson appends p. Every group p references must exist; each of those
// groups gains p as a member.
func (b *AddressBook) AddPerson(p person.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if b.HasPerson(p.Name) {
		return fmt.Errorf("%w: %s", errors.ErrPersonExists, p.Name)
	}
	if err := b.requireGroups(p.Groups); err != nil {
		return err
	}

	b.personIndex[p.Name] = len(b.persons)
	b.persons = append(b.persons, p)
	for _, gn := range p.Groups {
		b.addMember(gn, p.Name)
	}
	return nil
}

// SetPerson replaces the person named target with edited. The name may
// change as long as it does not collide with another person; group member
// lists are rewritten to follow the rename and any change of Groups.
func (b *AddressBook) SetPerson(target field.Name, edited person.Person) error {
	i, ok := b.personIndex[target]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrPersonNotFound, target)
	}
	if err := edited.Validate(); err != nil {
		return err
	}
	if edited.Name != target && b.HasPerson(edited.Name) {
		return fmt.Errorf("%w: %s", errors.ErrPersonExists, edited.Name)
	}
	if err := b.requireGroups(edited.Groups); err != nil {
		return err
	}

	old := b.persons[i]
	for _, gn := range old.Groups {
		b.removeMember(gn, old.Name)
	}
	b.persons[i] = edited
	delete(b.personIndex, target)
	b.personIndex[edited.Name] = i
	for _, gn := range edited.Groups {
		b.addMember(gn, edited.Name)
	}
	// Groups that listed the old name without the person listing them back.
	if edited.Name != target {
		for j, g := range b.groups {
			if g.HasMember(target) {
				b.groups[j] = renameMember(g, target, edited.Name)
			}
		}
	}
	return nil
}

// RemovePerson deletes the named person and drops it from every group.
func (b *AddressBook) RemovePerson(name field.Name) error {
	i, ok := b.personIndex[name]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrPersonNotFound, name)
	}
	b.persons = slices.Delete(b.persons, i, i+1)
	for j, g := range b.groups {
		b.groups[j] = g.WithoutMember(name)
	}
	b.reindex()
	return nil
}

// AddGroup appends g. Every member g lists must exist; each of those persons
// gains a reference to g.
func (b *AddressBook) AddGroup(g group.Group) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if b.HasGroup(g.Name) {
		return fmt.Errorf("%w: %s", errors.ErrGroupExists, g.Name)
	}
	if err := b.requirePersons(g.Members); err != nil {
		return err
	}

	b.groupIndex[g.Name] = len(b.groups)
	b.groups = append(b.groups, g)
	for _, n := range g.Members {
		b.addGroupRef(n, g.Name)
	}
	return nil
}

// SetGroup replaces the group named target with edited, following a rename
// and any change of Members on the person side. A person that references
// the group without being listed as a member keeps the reference.
func (b *AddressBook) SetGroup(target field.GroupName, edited group.Group) error {
	i, ok := b.groupIndex[target]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrGroupNotFound, target)
	}
	if err := edited.Validate(); err != nil {
		return err
	}
	if edited.Name != target && b.HasGroup(edited.Name) {
		return fmt.Errorf("%w: %s", errors.ErrGroupExists, edited.Name)
	}
	if err := b.requirePersons(edited.Members); err != nil {
		return err
	}

	old := b.groups[i]
	for j, p := range b.persons {
		if !p.HasGroup(target) {
			continue
		}
		if old.HasMember(p.Name) && !edited.HasMember(p.Name) {
			b.persons[j] = p.WithoutGroup(target)
			continue
		}
		b.persons[j] = renameGroupRef(p, target, edited.Name)
	}
	b.groups[i] = edited
	delete(b.groupIndex, target)
	b.groupIndex[edited.Name] = i
	for _, n := range edited.Members {
		b.addGroupRef(n, edited.Name)
	}
	return nil
}

// RemoveGroup deletes the named group and drops it from every person.
func (b *AddressBook) RemoveGroup(name field.GroupName) error {
	i, ok := b.groupIndex[name]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrGroupNotFound, name)
	}
	b.groups = slices.Delete(b.groups, i, i+1)
	for j, p := range b.persons {
		b.persons[j] = p.WithoutGroup(name)
	}
	b.reindex()
	return nil
}

// Assign makes the named person a member of the named group on both sides.
// It fails with ErrAlreadyMember only when both sides already agree.
func (b *AddressBook) Assign(name field.Name, gn field.GroupName) error {
	pi, gi, err := b.locate(name, gn)
	if err != nil {
		return err
	}
	if b.persons[pi].HasGroup(gn) && b.groups[gi].HasMember(name) {
		return fmt.Errorf("%w: %s in %s", errors.ErrAlreadyMember, name, gn)
	}
	b.addGroupRef(name, gn)
	b.addMember(gn, name)
	return nil
}

// Unassign removes the membership from both sides. It fails with
// ErrNotMember when neither side records it.
func (b *AddressBook) Unassign(name field.Name, gn field.GroupName) error {
	pi, gi, err := b.locate(name, gn)
	if err != nil {
		return err
	}
	if !b.persons[pi].HasGroup(gn) && !b.groups[gi].HasMember(name) {
		return fmt.Errorf("%w: %s in %s", errors.ErrNotMember, name, gn)
	}
	b.persons[pi] = b.persons[pi].WithoutGroup(gn)
	b.groups[gi] = b.groups[gi].WithoutMember(name)
	return nil
}

// Validate checks every aggregate, the uniqueness of names and that every
// reference resolves. All violations are reported together.
func (b *AddressBook) Validate() error {
	c := rxmerr.NewCollector()

	if err := model.ValidateAll(b.persons); err != nil {
		c.Append(err)
	}
	if err := model.ValidateAll(b.groups); err != nil {
		c.Append(err)
	}

	persons := make(map[field.Name]struct{}, len(b.persons))
	for _, p := range b.persons {
		if _, dup := persons[p.Name]; dup {
			c.Append(&errors.IntegrityError{Kind: errors.KindDuplicatePerson, Subject: p.Name.String()})
		}
		persons[p.Name] = struct{}{}
	}
	groups := make(map[field.GroupName]struct{}, len(b.groups))
	for _, g := range b.groups {
		if _, dup := groups[g.Name]; dup {
			c.Append(&errors.IntegrityError{Kind: errors.KindDuplicateGroup, Subject: g.Name.String()})
		}
		groups[g.Name] = struct{}{}
	}

	for _, g := range b.groups {
		for _, m := range g.Members {
			if _, ok := persons[m]; !ok {
				c.Append(&errors.IntegrityError{Kind: errors.KindInvalidPersonInGroup, Subject: g.Name.String()})
				break
			}
		}
	}
	for _, p := range b.persons {
		for _, gn := range p.Groups {
			if _, ok := groups[gn]; !ok {
				c.Append(&errors.IntegrityError{Kind: errors.KindInvalidGroupInPerson, Subject: p.Name.String()})
				break
			}
		}
	}

	return c.Err()
}

// Equal reports whether both books hold equal persons and groups in the
// same order.
func (b *AddressBook) Equal(other *AddressBook) bool {
	if b == nil || other == nil {
		return b == other
	}
	return model.EqualAll(b.persons, other.persons) && model.EqualAll(b.groups, other.groups)
}

// String summarizes the book by counts only.
func (b *AddressBook) String() string {
	return fmt.Sprintf("AddressBook{Persons:%d, Groups:%d}", len(b.persons), len(b.groups))
}

func (b *AddressBook) locate(name field.Name, gn field.GroupName) (int, int, error) {
	pi, ok := b.personIndex[name]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", errors.ErrPersonNotFound, name)
	}
	gi, ok := b.groupIndex[gn]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", errors.ErrGroupNotFound, gn)
	}
	return pi, gi, nil
}

func (b *AddressBook) requireGroups(names []field.GroupName) error {
	for _, gn := range names {
		if !b.HasGroup(gn) {
			return fmt.Errorf("%w: %s", errors.ErrGroupNotFound, gn)
		}
	}
	return nil
}

func (b *AddressBook) requirePersons(names []field.Name) error {
	for _, n := range names {
		if !b.HasPerson(n) {
			return fmt.Errorf("%w: %s", errors.ErrPersonNotFound, n)
		}
	}
	return nil
}

// addMember and addGroupRef are idempotent.
func (b *AddressBook) addMember(gn field.GroupName, n field.Name) {
	i := b.groupIndex[gn]
	if g, err := b.groups[i].WithMember(n); err == nil {
		b.groups[i] = g
	}
}

func (b *AddressBook) removeMember(gn field.GroupName, n field.Name) {
	if i, ok := b.groupIndex[gn]; ok {
		b.groups[i] = b.groups[i].WithoutMember(n)
	}
}

func (b *AddressBook) addGroupRef(n field.Name, gn field.GroupName) {
	i := b.personIndex[n]
	if p, err := b.persons[i].WithGroup(gn); err == nil {
		b.persons[i] = p
	}
}

func renameMember(g group.Group, from, to field.Name) group.Group {
	out := g.WithoutMember(from)
	if updated, err := out.WithMember(to); err == nil {
		return updated
	}
	return out
}

// renameGroupRef rewrites p's reference to from in place, keeping its
// position among p's groups.
func renameGroupRef(p person.Person, from, to field.GroupName) person.Person {
	if from == to {
		return p
	}
	groups := slices.Clone(p.Groups)
	if k := slices.Index(groups, from); k >= 0 {
		groups[k] = to
	}
	p.Groups = groups
	return p
}
