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

package storage

import (
	"errors"

	dxerrors "dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model/field"
	"dirpx.dev/dxbook/dxcore/model/group"
	"dirpx.dev/dxbook/dxcore/model/person"
)

// AdaptedPerson is the stored form of a person.
//
// Scalar fields are pointers so that an absent key can be told apart from an
// empty string: the former is a missing field, the latter an invalid one.
type AdaptedPerson struct {
	Name   *string  `json:"name" yaml:"name"`
	Email  *string  `json:"email" yaml:"email"`
	Groups []string `json:"groups" yaml:"groups"`
}

// AdaptedGroup is the stored form of a group. RepoLink holds "none" when the
// group has no link.
type AdaptedGroup struct {
	Name     *string  `json:"name" yaml:"name"`
	RepoLink *string  `json:"repoLink" yaml:"repoLink"`
	Members  []string `json:"members" yaml:"members"`
}

func adaptPerson(p person.Person) AdaptedPerson {
	groups := make([]string, len(p.Groups))
	for i, g := range p.Groups {
		groups[i] = g.String()
	}
	return AdaptedPerson{
		Name:   ptr(p.Name.String()),
		Email:  ptr(p.Email.String()),
		Groups: groups,
	}
}

func adaptGroup(g group.Group) AdaptedGroup {
	members := make([]string, len(g.Members))
	for i, m := range g.Members {
		members[i] = m.String()
	}
	return AdaptedGroup{
		Name:     ptr(g.Name.String()),
		RepoLink: ptr(g.RepoLink.String()),
		Members:  members,
	}
}

// toModel converts the record into a Person. Field failures are reported as
// IntegrityErrors naming the stored field.
func (a AdaptedPerson) toModel(rule field.EmailRule) (person.Person, error) {
	name, err := field.ParseNamePtr(a.Name)
	if err != nil {
		return person.Person{}, fieldIntegrity("Person.name", err)
	}
	email, err := field.ParseEmailPtr(a.Email, rule)
	if err != nil {
		return person.Person{}, fieldIntegrity("Person.email", err)
	}
	groups := make([]field.GroupName, 0, len(a.Groups))
	for _, raw := range a.Groups {
		g, err := field.ParseGroupName(raw)
		if err != nil {
			return person.Person{}, fieldIntegrity("Person.groups", err)
		}
		groups = append(groups, g)
	}
	p, err := person.New(name, email, groups...)
	if err != nil {
		return person.Person{}, fieldIntegrity("Person.groups", err)
	}
	return p, nil
}

func (a AdaptedGroup) toModel() (group.Group, error) {
	name, err := field.ParseGroupNamePtr(a.Name)
	if err != nil {
		return group.Group{}, fieldIntegrity("Group.name", err)
	}
	repo, err := field.LoadRepoLinkPtr(a.RepoLink)
	if err != nil {
		return group.Group{}, fieldIntegrity("Group.repoLink", err)
	}
	members := make([]field.Name, 0, len(a.Members))
	for _, raw := range a.Members {
		m, err := field.ParseName(raw)
		if err != nil {
			// A member that is not even a well-formed name cannot be a stored person.
			return group.Group{}, &dxerrors.IntegrityError{
				Kind:    dxerrors.KindInvalidPersonInGroup,
				Subject: name.String(),
				Err:     err,
			}
		}
		members = append(members, m)
	}
	g, err := group.New(name, repo, members...)
	if err != nil {
		return group.Group{}, fieldIntegrity("Group.members", err)
	}
	return g, nil
}

func fieldIntegrity(subject string, err error) error {
	kind := dxerrors.KindInvalidField
	var ne *dxerrors.NullInputError
	if errors.As(err, &ne) {
		kind = dxerrors.KindMissingField
	}
	return &dxerrors.IntegrityError{Kind: kind, Subject: subject, Err: err}
}

func ptr(s string) *string { return &s }
