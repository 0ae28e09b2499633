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

package group_test

import (
	"errors"
	"testing"

	dxerrors "dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model/field"
	"dirpx.dev/dxbook/dxcore/model/group"
)

var (
	cs2103 = field.MustParseGroupName("CS2103")
	repo   = field.MustParseRepoLink("https://github.com/user/repo")
	alice  = field.MustParseName("Alice")
	bob    = field.MustParseName("Bob")
)

func TestNew(t *testing.T) {
	g, err := group.New(cs2103, repo, alice, bob)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.Name != cs2103 || g.RepoLink != repo || len(g.Members) != 2 {
		t.Errorf("New = %v", g)
	}

	if _, err := group.New(cs2103, field.NoRepoLink()); err != nil {
		t.Errorf("New without link: %v", err)
	}
}

func TestNew_DuplicateMember(t *testing.T) {
	_, err := group.New(cs2103, repo, alice, bob, alice)
	var ve *dxerrors.ValidationError
	if !errors.As(err, &ve) || ve.Field != "Members" {
		t.Fatalf("New(duplicate) error = %v, want ValidationError on Members", err)
	}
}

func TestNew_MissingName(t *testing.T) {
	_, err := group.New(field.GroupName{}, repo)
	var ve *dxerrors.ValidationError
	if !errors.As(err, &ve) || ve.Field != "Name" {
		t.Fatalf("New(zero name) error = %v, want ValidationError on Name", err)
	}
}

func TestValidate_FieldErrorShape(t *testing.T) {
	g := group.Group{Name: cs2103, Members: []field.Name{alice, {}}}
	var ve *dxerrors.ValidationError
	if !errors.As(g.Validate(), &ve) {
		t.Fatalf("Validate() = %v, want *ValidationError", g.Validate())
	}
	want := dxerrors.ValidationError{Type: "Group", Field: "Members", Reason: "must not be empty"}
	if *ve != want {
		t.Errorf("Validate() = %+v, want %+v", *ve, want)
	}
}

func TestEqual(t *testing.T) {
	base := group.Group{Name: cs2103, RepoLink: repo, Members: []field.Name{alice, bob}}

	tests := []struct {
		name  string
		other group.Group
		want  bool
	}{
		{"same", group.Group{Name: cs2103, RepoLink: repo, Members: []field.Name{alice, bob}}, true},
		{"member order matters", group.Group{Name: cs2103, RepoLink: repo, Members: []field.Name{bob, alice}}, false},
		{"no link", group.Group{Name: cs2103, Members: []field.Name{alice, bob}}, false},
		{"different name", group.Group{Name: field.MustParseGroupName("CS2101"), RepoLink: repo, Members: []field.Name{alice, bob}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}

	if !base.IsSameGroup(group.Group{Name: cs2103}) {
		t.Error("IsSameGroup with same name = false")
	}
}

func TestMembers(t *testing.T) {
	g := group.Group{Name: cs2103}

	withAlice, err := g.WithMember(alice)
	if err != nil {
		t.Fatalf("WithMember: %v", err)
	}
	if !withAlice.HasMember(alice) || g.HasMember(alice) {
		t.Errorf("WithMember = %v, receiver %v", withAlice, g)
	}
	if _, err := withAlice.WithMember(alice); !errors.Is(err, dxerrors.ErrAlreadyMember) {
		t.Errorf("WithMember(existing) error = %v, want ErrAlreadyMember", err)
	}

	without := withAlice.WithoutMember(alice)
	if without.HasMember(alice) || !withAlice.HasMember(alice) {
		t.Errorf("WithoutMember = %v, receiver %v", without, withAlice)
	}
}

func TestWithRepoLink(t *testing.T) {
	g := group.Group{Name: cs2103}
	linked := g.WithRepoLink(repo)
	if !linked.RepoLink.IsSet() || g.RepoLink.IsSet() {
		t.Errorf("WithRepoLink = %v, receiver %v", linked, g)
	}
}

func TestString(t *testing.T) {
	g := group.Group{Name: cs2103, Members: []field.Name{alice, bob}}
	want := "Group{Name:CS2103, RepoLink:none, Members:[Alice, Bob]}"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if g.Redacted() != want {
		t.Errorf("Redacted() = %q, want %q", g.Redacted(), want)
	}
}
