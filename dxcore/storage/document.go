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

// Package storage converts address books to and from their flat stored form
// and persists that form on disk.
//
// The stored form is a Document: two lists of adapted records in which
// every cross reference is a plain string key. Encode is total. Decode is
// the only place that rejects a document violating the address book's
// integrity rules, and it is all-or-nothing: either every record is
// accepted or an *errors.IntegrityError explains the first problem found.
package storage

import (
	"dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model/addressbook"
	"dirpx.dev/dxbook/dxcore/model/field"
	"dirpx.dev/dxbook/dxcore/model/group"
	"dirpx.dev/dxbook/dxcore/model/person"
)

// Document is the stored shape of an address book.
type Document struct {
	Persons []AdaptedPerson `json:"persons" yaml:"persons"`
	Groups  []AdaptedGroup  `json:"groups" yaml:"groups"`
}

// Encode converts b into its stored form. It never fails.
func Encode(b *addressbook.AddressBook) Document {
	persons := b.Persons()
	groups := b.Groups()

	doc := Document{
		Persons: make([]AdaptedPerson, len(persons)),
		Groups:  make([]AdaptedGroup, len(groups)),
	}
	for i, p := range persons {
		doc.Persons[i] = adaptPerson(p)
	}
	for i, g := range groups {
		doc.Groups[i] = adaptGroup(g)
	}
	return doc
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	emailRule field.EmailRule
}

// WithEmailRule selects the rule stored emails are checked against. The
// default is field.LegacyEmailRule.
func WithEmailRule(rule field.EmailRule) DecodeOption {
	return func(o *decodeOptions) {
		o.emailRule = rule
	}
}

// Decode rebuilds an address book from doc.
//
// Records are checked one at a time, in document order, and the first
// failure wins. Each stored person must convert to a valid Person whose
// name no earlier person has. Each stored group must then convert to a
// valid Group whose members are all accepted persons and whose name no
// earlier group has. Finally every group a person references must have
// been accepted.
func Decode(doc Document, opts ...DecodeOption) (*addressbook.AddressBook, error) {
	o := decodeOptions{emailRule: field.LegacyEmailRule}
	for _, opt := range opts {
		opt(&o)
	}

	persons := make([]person.Person, 0, len(doc.Persons))
	known := make(map[field.Name]struct{}, len(doc.Persons))
	for _, ap := range doc.Persons {
		p, err := ap.toModel(o.emailRule)
		if err != nil {
			return nil, err
		}
		if _, dup := known[p.Name]; dup {
			return nil, &errors.IntegrityError{Kind: errors.KindDuplicatePerson, Subject: p.Name.String()}
		}
		known[p.Name] = struct{}{}
		persons = append(persons, p)
	}

	groups := make([]group.Group, 0, len(doc.Groups))
	accepted := make(map[field.GroupName]struct{}, len(doc.Groups))
	for _, ag := range doc.Groups {
		g, err := ag.toModel()
		if err != nil {
			return nil, err
		}
		for _, m := range g.Members {
			if _, ok := known[m]; !ok {
				return nil, &errors.IntegrityError{Kind: errors.KindInvalidPersonInGroup, Subject: g.Name.String()}
			}
		}
		if _, dup := accepted[g.Name]; dup {
			return nil, &errors.IntegrityError{Kind: errors.KindDuplicateGroup, Subject: g.Name.String()}
		}
		accepted[g.Name] = struct{}{}
		groups = append(groups, g)
	}

	// Groups may be declared after the persons that reference them.
	for _, p := range persons {
		for _, gn := range p.Groups {
			if _, ok := accepted[gn]; !ok {
				return nil, &errors.IntegrityError{Kind: errors.KindInvalidGroupInPerson, Subject: p.Name.String()}
			}
		}
	}

	return addressbook.Restore(persons, groups)
}
