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

package parser

import (
	"dirpx.dev/dxbook/dxcore/model/field"
	"dirpx.dev/dxbook/dxcore/model/group"
	"dirpx.dev/dxbook/dxcore/model/person"
)

// PersonArgs is "n/NAME e/EMAIL [g/GROUP]...".
type PersonArgs struct {
	Name   field.Name
	Email  field.Email
	Groups []field.GroupName
}

// Person assembles the aggregate.
func (a PersonArgs) Person() (person.Person, error) {
	return person.New(a.Name, a.Email, a.Groups...)
}

// ParsePersonArgs parses the arguments of "person add". Emails are checked
// against rule.
func ParsePersonArgs(args string, rule field.EmailRule) (PersonArgs, error) {
	m := Tokenize(args, PrefixName, PrefixEmail, PrefixGroup)
	if err := check(m, PrefixName, PrefixEmail); err != nil {
		return PersonArgs{}, err
	}

	rawName, _ := m.Value(PrefixName)
	name, err := ParseName(rawName)
	if err != nil {
		return PersonArgs{}, err
	}
	rawEmail, _ := m.Value(PrefixEmail)
	email, err := ParseEmail(rawEmail, rule)
	if err != nil {
		return PersonArgs{}, err
	}
	groups, err := ParseGroupNames(m.AllValues(PrefixGroup))
	if err != nil {
		return PersonArgs{}, err
	}
	return PersonArgs{Name: name, Email: email, Groups: groups}, nil
}

// GroupArgs is "gn/GROUP [r/LINK]". RepoLink is unset when r/ is absent.
type GroupArgs struct {
	Name     field.GroupName
	RepoLink field.RepoLink
}

// Group assembles the aggregate without members.
func (a GroupArgs) Group() (group.Group, error) {
	return group.New(a.Name, a.RepoLink)
}

// ParseGroupArgs parses "gn/GROUP [r/LINK]". The link is optional.
func ParseGroupArgs(args string) (GroupArgs, error) {
	m := Tokenize(args, PrefixGroupName, PrefixRepoLink)
	if err := check(m, PrefixGroupName); err != nil {
		return GroupArgs{}, err
	}

	rawName, _ := m.Value(PrefixGroupName)
	name, err := ParseGroupName(rawName)
	if err != nil {
		return GroupArgs{}, err
	}
	out := GroupArgs{Name: name}
	if rawLink, ok := m.Value(PrefixRepoLink); ok {
		if out.RepoLink, err = ParseRepoLink(rawLink); err != nil {
			return GroupArgs{}, err
		}
	}
	return out, nil
}

// MembershipArgs is "n/NAME gn/GROUP".
type MembershipArgs struct {
	Name  field.Name
	Group field.GroupName
}

// ParseMembershipArgs parses "n/NAME gn/GROUP".
func ParseMembershipArgs(args string) (MembershipArgs, error) {
	m := Tokenize(args, PrefixName, PrefixGroupName)
	if err := check(m, PrefixName, PrefixGroupName); err != nil {
		return MembershipArgs{}, err
	}

	rawName, _ := m.Value(PrefixName)
	name, err := ParseName(rawName)
	if err != nil {
		return MembershipArgs{}, err
	}
	rawGroup, _ := m.Value(PrefixGroupName)
	gn, err := ParseGroupName(rawGroup)
	if err != nil {
		return MembershipArgs{}, err
	}
	return MembershipArgs{Name: name, Group: gn}, nil
}

func check(m ArgumentMultimap, required ...Prefix) error {
	if err := m.RequireEmptyPreamble(); err != nil {
		return err
	}
	if err := m.Require(required...); err != nil {
		return err
	}
	return m.VerifyUnique()
}
