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

package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	dxerrors "dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model/addressbook"
	"dirpx.dev/dxbook/dxcore/model/field"
	"dirpx.dev/dxbook/dxcore/model/group"
	"dirpx.dev/dxbook/dxcore/model/person"
	"dirpx.dev/dxbook/dxcore/storage"
)

func sp(s string) *string { return &s }

func adaptedPerson(name, email string, groups ...string) storage.AdaptedPerson {
	return storage.AdaptedPerson{Name: sp(name), Email: sp(email), Groups: groups}
}

func adaptedGroup(name, repo string, members ...string) storage.AdaptedGroup {
	return storage.AdaptedGroup{Name: sp(name), RepoLink: sp(repo), Members: members}
}

func TestDecode_Valid(t *testing.T) {
	doc := storage.Document{
		Persons: []storage.AdaptedPerson{
			adaptedPerson("Alice", "e1234567", "CS2103"),
			adaptedPerson("Bob", "e7654321"),
		},
		Groups: []storage.AdaptedGroup{
			adaptedGroup("CS2103", "https://github.com/org/repo", "Alice"),
			adaptedGroup("CS2101", "none"),
		},
	}

	book, err := storage.Decode(doc)
	require.NoError(t, err)
	require.Equal(t, 2, book.Len())

	g, ok := book.Group(field.MustParseGroupName("CS2101"))
	require.True(t, ok)
	require.False(t, g.RepoLink.IsSet(), "stored \"none\" should load as unset")

	g, ok = book.Group(field.MustParseGroupName("CS2103"))
	require.True(t, ok)
	require.Equal(t, "https://github.com/org/repo", g.RepoLink.String())
	require.True(t, g.HasMember(field.MustParseName("Alice")))
}

func TestDecode_OneSidedMembership(t *testing.T) {
	doc := storage.Document{
		Persons: []storage.AdaptedPerson{adaptedPerson("Alice", "e1234567")},
		Groups:  []storage.AdaptedGroup{adaptedGroup("CS2103", "none", "Alice")},
	}
	_, err := storage.Decode(doc)
	require.NoError(t, err)
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name    string
		doc     storage.Document
		want    error
		wantMsg string
	}{
		{
			name: "missing person name",
			doc:  storage.Document{Persons: []storage.AdaptedPerson{{Email: sp("e1234567")}}},
			want: dxerrors.ErrMissingField,
		},
		{
			name: "missing email",
			doc:  storage.Document{Persons: []storage.AdaptedPerson{{Name: sp("Alice")}}},
			want: dxerrors.ErrMissingField,
		},
		{
			name: "invalid email",
			doc:  storage.Document{Persons: []storage.AdaptedPerson{adaptedPerson("Alice", "alice@example.com")}},
			want: dxerrors.ErrInvalidField,
		},
		{
			name: "invalid person name",
			doc:  storage.Document{Persons: []storage.AdaptedPerson{adaptedPerson(" Alice", "e1234567")}},
			want: dxerrors.ErrInvalidField,
		},
		{
			name: "repeated group reference",
			doc: storage.Document{
				Persons: []storage.AdaptedPerson{adaptedPerson("Alice", "e1234567", "CS2103", "CS2103")},
				Groups:  []storage.AdaptedGroup{adaptedGroup("CS2103", "none")},
			},
			want: dxerrors.ErrInvalidField,
		},
		{
			name: "duplicate person",
			doc: storage.Document{Persons: []storage.AdaptedPerson{
				adaptedPerson("Alice", "e1234567"),
				adaptedPerson("Alice", "e1234567"),
			}},
			want:    dxerrors.ErrDuplicatePerson,
			wantMsg: "Persons list contains duplicate person(s).",
		},
		{
			name: "duplicate person reported before a later invalid field",
			doc: storage.Document{Persons: []storage.AdaptedPerson{
				adaptedPerson("Alice", "e1234567"),
				adaptedPerson("Alice", "e1234567"),
				adaptedPerson("Bob", "bad"),
			}},
			want:    dxerrors.ErrDuplicatePerson,
			wantMsg: "Persons list contains duplicate person(s).",
		},
		{
			name: "invalid field reported before a later duplicate person",
			doc: storage.Document{Persons: []storage.AdaptedPerson{
				adaptedPerson("Alice", "e1234567"),
				adaptedPerson("Bob", "bad"),
				adaptedPerson("Alice", "e1234567"),
			}},
			want: dxerrors.ErrInvalidField,
		},
		{
			name: "duplicate group reported before a later unknown member",
			doc: storage.Document{
				Persons: []storage.AdaptedPerson{adaptedPerson("Alice", "e1234567")},
				Groups: []storage.AdaptedGroup{
					adaptedGroup("G1", "none"),
					adaptedGroup("G1", "none"),
					adaptedGroup("G3", "none", "Ghost"),
				},
			},
			want:    dxerrors.ErrDuplicateGroup,
			wantMsg: "Groups list contains duplicate group(s).",
		},
		{
			name: "unknown member reported before a later duplicate group",
			doc: storage.Document{
				Persons: []storage.AdaptedPerson{adaptedPerson("Alice", "e1234567")},
				Groups: []storage.AdaptedGroup{
					adaptedGroup("G1", "none"),
					adaptedGroup("G3", "none", "Ghost"),
					adaptedGroup("G1", "none"),
				},
			},
			want:    dxerrors.ErrInvalidPersonInGroup,
			wantMsg: "Group G3 contains an invalid person",
		},
		{
			name: "unknown member",
			doc: storage.Document{
				Persons: []storage.AdaptedPerson{adaptedPerson("Alice", "e1234567")},
				Groups:  []storage.AdaptedGroup{adaptedGroup("CS2103", "none", "Alice", "Bob")},
			},
			want:    dxerrors.ErrInvalidPersonInGroup,
			wantMsg: "Group CS2103 contains an invalid person",
		},
		{
			name: "malformed member",
			doc:  storage.Document{Groups: []storage.AdaptedGroup{adaptedGroup("CS2103", "none", "B@b")}},
			want: dxerrors.ErrInvalidPersonInGroup,
		},
		{
			name: "duplicate group",
			doc: storage.Document{Groups: []storage.AdaptedGroup{
				adaptedGroup("CS2103", "none"),
				adaptedGroup("CS2103", "github.com/a/b"),
			}},
			want:    dxerrors.ErrDuplicateGroup,
			wantMsg: "Groups list contains duplicate group(s).",
		},
		{
			name: "unknown group reference",
			doc: storage.Document{
				Persons: []storage.AdaptedPerson{adaptedPerson("Alice", "e1234567", "CS2103")},
			},
			want:    dxerrors.ErrInvalidGroupInPerson,
			wantMsg: "Person Alice contains an invalid group",
		},
		{
			name: "missing repo link",
			doc:  storage.Document{Groups: []storage.AdaptedGroup{{Name: sp("CS2103")}}},
			want: dxerrors.ErrMissingField,
		},
		{
			name: "invalid repo link",
			doc:  storage.Document{Groups: []storage.AdaptedGroup{adaptedGroup("CS2103", "not a link")}},
			want: dxerrors.ErrInvalidField,
		},
		{
			name: "invalid group name",
			doc:  storage.Document{Groups: []storage.AdaptedGroup{adaptedGroup("-CS2103", "none")}},
			want: dxerrors.ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := storage.Decode(tt.doc)
			require.Nil(t, book)
			require.ErrorIs(t, err, tt.want)

			var ie *dxerrors.IntegrityError
			require.ErrorAs(t, err, &ie)
			if tt.wantMsg != "" {
				require.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestDecode_FieldErrorsUnwrap(t *testing.T) {
	_, err := storage.Decode(storage.Document{Persons: []storage.AdaptedPerson{{Name: sp("Alice")}}})
	var ne *dxerrors.NullInputError
	require.ErrorAs(t, err, &ne)

	var ve *dxerrors.ValidationError
	require.False(t, errors.As(err, &ve), "a missing field must not look like a validation failure")

	_, err = storage.Decode(storage.Document{Persons: []storage.AdaptedPerson{adaptedPerson("Alice", "E1234567")}})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, field.EmailConstraints, ve.Reason)
}

func TestDecode_EmailRule(t *testing.T) {
	doc := storage.Document{Persons: []storage.AdaptedPerson{adaptedPerson("Alice", "alice@example.com")}}

	_, err := storage.Decode(doc)
	require.ErrorIs(t, err, dxerrors.ErrInvalidField)

	book, err := storage.Decode(doc, storage.WithEmailRule(field.AddressEmailRule))
	require.NoError(t, err)
	require.True(t, book.HasPerson(field.MustParseName("Alice")))
}

func TestEncode(t *testing.T) {
	book := addressbook.New()
	require.NoError(t, book.AddGroup(group.Group{Name: field.MustParseGroupName("CS2103")}))
	require.NoError(t, book.AddPerson(person.Person{
		Name:   field.MustParseName("Alice"),
		Email:  field.MustParseEmail("e1234567"),
		Groups: []field.GroupName{field.MustParseGroupName("CS2103")},
	}))

	doc := storage.Encode(book)
	require.Len(t, doc.Persons, 1)
	require.Len(t, doc.Groups, 1)
	require.Equal(t, "Alice", *doc.Persons[0].Name)
	require.Equal(t, []string{"CS2103"}, doc.Persons[0].Groups)
	require.Equal(t, "none", *doc.Groups[0].RepoLink)
	require.Equal(t, []string{"Alice"}, doc.Groups[0].Members)

	empty := storage.Encode(addressbook.New())
	require.Empty(t, empty.Persons)
	require.Empty(t, empty.Groups)
}

func bookGen() *rapid.Generator[*addressbook.AddressBook] {
	return rapid.Custom(func(t *rapid.T) *addressbook.AddressBook {
		book := addressbook.New()

		groupNames := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z]{2}[0-9]{4}`), 0, 4, rapid.ID[string]).Draw(t, "groups")
		for _, raw := range groupNames {
			g := group.Group{Name: field.MustParseGroupName(raw)}
			if rapid.Bool().Draw(t, "linked") {
				g.RepoLink = field.MustParseRepoLink("https://github.com/org/" + raw)
			}
			if err := book.AddGroup(g); err != nil {
				t.Fatalf("AddGroup: %v", err)
			}
		}

		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z][a-z]{1,8}`), 0, 6, rapid.ID[string]).Draw(t, "names")
		for _, raw := range names {
			email := rapid.StringMatching(`e[0-9]{7}`).Draw(t, "email")
			p := person.Person{Name: field.MustParseName(raw), Email: field.MustParseEmail(email)}
			if err := book.AddPerson(p); err != nil {
				t.Fatalf("AddPerson: %v", err)
			}
			for _, gn := range groupNames {
				if rapid.Bool().Draw(t, "member") {
					if err := book.Assign(p.Name, field.MustParseGroupName(gn)); err != nil {
						t.Fatalf("Assign: %v", err)
					}
				}
			}
		}
		return book
	})
}

func TestProperty_DecodeInvertsEncode(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		book := bookGen().Draw(t, "book")

		decoded, err := storage.Decode(storage.Encode(book))
		require.NoError(t, err)
		require.True(t, book.Equal(decoded), "Decode(Encode(b)) differs from b")
	})
}

func TestProperty_CodecRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		book := bookGen().Draw(t, "book")
		codec := rapid.SampledFrom([]storage.Codec{storage.JSONCodec{}, storage.YAMLCodec{}}).Draw(t, "codec")

		data, err := codec.Marshal(storage.Encode(book))
		require.NoError(t, err)
		doc, err := codec.Unmarshal(data)
		require.NoError(t, err)
		decoded, err := storage.Decode(doc)
		require.NoError(t, err)
		require.True(t, book.Equal(decoded))
	})
}
