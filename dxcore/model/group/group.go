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

// Package group defines the Group aggregate.
package group

import (
	"fmt"
	"slices"
	"strings"

	"dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model"
	"dirpx.dev/dxbook/dxcore/model/field"
)

// Group is a named set of persons with an optional repository link.
//
// Members references persons by Name, in insertion order, each at most once.
// Group never embeds Person values; the address book resolves the names.
type Group struct {
	Name     field.GroupName
	RepoLink field.RepoLink
	Members  []field.Name
}

var (
	_ model.Entity            = Group{}
	_ model.Comparable[Group] = Group{}
)

// New assembles a Group. A repeated member is reported as a
// *errors.ValidationError.
func New(name field.GroupName, repo field.RepoLink, members ...field.Name) (Group, error) {
	g := Group{
		Name:     name,
		RepoLink: repo,
		Members:  slices.Clone(members),
	}
	if err := g.Validate(); err != nil {
		return Group{}, err
	}
	return g, nil
}

// TypeName returns "Group".
func (g Group) TypeName() string { return "Group" }

// IsZero reports whether g has no name, link or members.
func (g Group) IsZero() bool {
	return g.Name.IsZero() && !g.RepoLink.IsSet() && len(g.Members) == 0
}

// Validate checks every field of g and rejects repeated members.
func (g Group) Validate() error {
	if err := g.Name.Validate(); err != nil {
		return errors.InField(g.TypeName(), "Name", err)
	}
	if err := g.RepoLink.Validate(); err != nil {
		return errors.InField(g.TypeName(), "RepoLink", err)
	}
	for _, m := range g.Members {
		if err := m.Validate(); err != nil {
			return errors.InField(g.TypeName(), "Members", err)
		}
	}
	if dup, ok := model.FirstDuplicate(g.Members); ok {
		return &errors.ValidationError{
			Type:   g.TypeName(),
			Field:  "Members",
			Reason: fmt.Sprintf("duplicate member %q", dup.String()),
			Value:  dup.String(),
		}
	}
	return nil
}

// IsSameGroup reports whether other has the same Name.
func (g Group) IsSameGroup(other Group) bool {
	return g.Name == other.Name
}

// Equal reports full-value equality, member order included.
func (g Group) Equal(other Group) bool {
	return g.Name == other.Name &&
		g.RepoLink == other.RepoLink &&
		slices.Equal(g.Members, other.Members)
}

// HasMember reports whether n is listed as a member.
func (g Group) HasMember(n field.Name) bool {
	return slices.Contains(g.Members, n)
}

// WithMember returns a copy of g with n appended to Members.
func (g Group) WithMember(n field.Name) (Group, error) {
	if g.HasMember(n) {
		return Group{}, fmt.Errorf("%w: %s in %s", errors.ErrAlreadyMember, n, g.Name)
	}
	out := g
	out.Members = append(slices.Clone(g.Members), n)
	return out, nil
}

// WithoutMember returns a copy of g without n.
func (g Group) WithoutMember(n field.Name) Group {
	out := g
	out.Members = slices.DeleteFunc(slices.Clone(g.Members), func(x field.Name) bool { return x == n })
	return out
}

// WithRepoLink returns a copy of g with a different link.
func (g Group) WithRepoLink(l field.RepoLink) Group {
	out := g
	out.Members = slices.Clone(g.Members)
	out.RepoLink = l
	return out
}

// String lists the group with its link and members.
func (g Group) String() string {
	names := make([]string, len(g.Members))
	for i, m := range g.Members {
		names[i] = m.String()
	}
	return fmt.Sprintf("Group{Name:%s, RepoLink:%s, Members:[%s]}", g.Name, g.RepoLink, strings.Join(names, ", "))
}

// Redacted is String; groups hold no personal data beyond member names.
func (g Group) Redacted() string { return g.String() }
