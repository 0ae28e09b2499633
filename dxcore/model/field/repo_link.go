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

package field

import (
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"

	"dirpx.dev/dxbook/dxcore/model"
	"gopkg.in/yaml.v3"
)

const (
	// RepoLinkNone is the stored sentinel meaning "no repository link set".
	// It is never accepted from user input.
	RepoLinkNone = "none"

	// RepoLinkMaxLength is the maximum length of a link in characters,
	// scheme included.
	RepoLinkMaxLength = 200
)

// RepoLinkConstraints is shown to users whose input fails IsValidRepoLink.
const RepoLinkConstraints = "Repository link format: [Protocol]Domain Name[Path]\n" +
	"Example: https://github.com/username/repo\n" +
	"- Protocol (optional): can be http:// or https://\n" +
	"- Domain Name (required):\n" +
	"  - Must include a top-level domain (TLD) of at least 2 letters (e.g., .com, .co)\n" +
	"  - Other domain levels support alphanumeric, '.', or '-'\n" +
	"- Path (optional): must start with / and must not contain whitespace\n" +
	"- The whole link must be at most 200 characters long"

// repoLinkPattern is the link grammar without the length bound. RE2 has no
// lookahead, so the 1..200 character bound is checked in IsValidRepoLink.
// RE2's \s leaves out the vertical tab, so the path class names it.
const repoLinkPattern = `^(?:https?://)?([A-Za-z0-9.-]+\.[A-Za-z]{2,})(?:/[^\s\v]*)?$`

// RepoLinkRegexp is the compiled link grammar. Callers SHOULD use
// IsValidRepoLink, which also applies the length bound.
var RepoLinkRegexp = regexp.MustCompile(repoLinkPattern)

// RepoLink is a group's repository link.
//
// A RepoLink is either unset or a link that satisfies IsValidRepoLink. Unset
// is represented by the zero value; it is written to storage as the
// RepoLinkNone sentinel and String returns RepoLinkNone for it. Because the
// sentinel never reaches the payload, NoRepoLink() == RepoLink{} and
// LoadRepoLink(RepoLinkNone) equals both.
//
// Two construction paths exist and they differ only in how they treat the
// sentinel:
//
//   - ParseRepoLink is for user input. The sentinel does not match the link
//     grammar and is rejected like any other malformed link.
//   - LoadRepoLink is for stored data. The sentinel is accepted without
//     validation and yields the unset link; every other value is validated
//     exactly as ParseRepoLink does.
//
// Example:
//
//	link, err := field.ParseRepoLink("https://github.com/user/repo")
//	fmt.Println(link.IsSet()) // true
//
//	stored, _ := field.LoadRepoLink("none")
//	fmt.Println(stored.IsSet(), stored) // false none
type RepoLink struct {
	value string
}

var _ model.Model = (*RepoLink)(nil)

// ParseRepoLink validates user input and returns it as a RepoLink.
//
// The returned error is a *errors.ValidationError whose Reason is
// RepoLinkConstraints.
func ParseRepoLink(raw string) (RepoLink, error) {
	if !IsValidRepoLink(raw) {
		return RepoLink{}, invalid("RepoLink", RepoLinkConstraints, raw)
	}
	return RepoLink{value: raw}, nil
}

// ParseRepoLinkPtr is ParseRepoLink for optional input.
func ParseRepoLinkPtr(raw *string) (RepoLink, error) {
	s, err := deref("RepoLink", raw)
	if err != nil {
		return RepoLink{}, err
	}
	return ParseRepoLink(s)
}

// LoadRepoLink converts a stored value into a RepoLink. RepoLinkNone yields
// the unset link; anything else must satisfy IsValidRepoLink.
func LoadRepoLink(raw string) (RepoLink, error) {
	if raw == RepoLinkNone {
		return RepoLink{}, nil
	}
	return ParseRepoLink(raw)
}

// LoadRepoLinkPtr is LoadRepoLink for optional stored input.
func LoadRepoLinkPtr(raw *string) (RepoLink, error) {
	s, err := deref("RepoLink", raw)
	if err != nil {
		return RepoLink{}, err
	}
	return LoadRepoLink(s)
}

// NoRepoLink returns the unset link.
func NoRepoLink() RepoLink {
	return RepoLink{}
}

// MustParseRepoLink panics if raw is not a valid link.
func MustParseRepoLink(raw string) RepoLink {
	l, err := ParseRepoLink(raw)
	if err != nil {
		panic(err)
	}
	return l
}

// IsValidRepoLink reports whether raw is an acceptable link: between 1 and
// RepoLinkMaxLength characters and matching RepoLinkRegexp.
func IsValidRepoLink(raw string) bool {
	n := utf8.RuneCountInString(raw)
	if n < 1 || n > RepoLinkMaxLength {
		return false
	}
	return RepoLinkRegexp.MatchString(raw)
}

// IsSet reports whether a real link is present.
func (l RepoLink) IsSet() bool {
	return l.value != ""
}

// String returns the link, or RepoLinkNone when unset.
func (l RepoLink) String() string {
	if !l.IsSet() {
		return RepoLinkNone
	}
	return l.value
}

// Redacted returns the same text as String.
func (l RepoLink) Redacted() string { return l.String() }

// TypeName returns "RepoLink".
func (l RepoLink) TypeName() string { return "RepoLink" }

// IsZero reports whether the link is unset. It is the negation of IsSet.
func (l RepoLink) IsZero() bool { return !l.IsSet() }

// Equal reports whether both hold the same value.
func (l RepoLink) Equal(other RepoLink) bool { return l == other }

// Validate accepts the unset link and any link satisfying IsValidRepoLink.
func (l RepoLink) Validate() error {
	if l.IsSet() && !IsValidRepoLink(l.value) {
		return invalid(l.TypeName(), RepoLinkConstraints, l.value)
	}
	return nil
}

// MarshalJSON writes the link, or the RepoLinkNone sentinel when unset.
func (l RepoLink) MarshalJSON() ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", l.TypeName(), err)
	}
	return json.Marshal(l.String())
}

// UnmarshalJSON follows the storage path: the sentinel is accepted.
func (l *RepoLink) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString("RepoLink", data)
	if err != nil {
		return err
	}
	parsed, err := LoadRepoLink(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML writes the link, or the RepoLinkNone sentinel when unset.
func (l RepoLink) MarshalYAML() (interface{}, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", l.TypeName(), err)
	}
	return l.String(), nil
}

// UnmarshalYAML follows the storage path like UnmarshalJSON.
func (l *RepoLink) UnmarshalYAML(node *yaml.Node) error {
	s, err := decodeYAMLString("RepoLink", node)
	if err != nil {
		return err
	}
	parsed, err := LoadRepoLink(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l RepoLink) MarshalText() ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler on the storage path.
func (l *RepoLink) UnmarshalText(text []byte) error {
	parsed, err := LoadRepoLink(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
