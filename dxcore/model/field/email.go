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
	"net/mail"
	"regexp"
	"strings"

	"dirpx.dev/dxbook/dxcore/model"
	"gopkg.in/yaml.v3"
)

// EmailConstraints is shown to users whose input fails the legacy rule.
const EmailConstraints = "Emails should be a NUSNET id of the form eXXXXXXX: " +
	"a lower-case 'e' followed by exactly 7 digits (e.g. e1234567)"

// AddressEmailConstraints is shown to users whose input fails the address rule.
const AddressEmailConstraints = "Emails should be of the format local-part@domain, " +
	"at most 254 characters long (e.g. jane@example.com)"

// EmailAddressMaxLength is the RFC 5321 limit applied by AddressEmailRule.
const EmailAddressMaxLength = 254

// legacyEmailRegexp accepts exactly eight characters: 'e' and seven digits.
// Hyphens, periods and '@' can never match, which rules out leading or
// trailing hyphens and consecutive periods.
var legacyEmailRegexp = regexp.MustCompile(`^e[0-9]{7}$`)

// EmailRule is a swappable email predicate together with the message shown
// when it rejects input.
type EmailRule struct {
	// Name identifies the rule in configuration ("legacy", "address").
	Name string

	// Constraints is the user-facing description of the rule.
	Constraints string

	// Match is a pure, total predicate.
	Match func(raw string) bool
}

// LegacyEmailRule accepts NUSNET ids such as "e1234567". It is the rule used
// by ParseEmail.
var LegacyEmailRule = EmailRule{
	Name:        "legacy",
	Constraints: EmailConstraints,
	Match:       legacyEmailRegexp.MatchString,
}

// AddressEmailRule accepts bare RFC 5322 addresses such as
// "jane@example.com".
var AddressEmailRule = EmailRule{
	Name:        "address",
	Constraints: AddressEmailConstraints,
	Match:       isEmailAddress,
}

func isEmailAddress(raw string) bool {
	if raw == "" || len(raw) > EmailAddressMaxLength {
		return false
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return false
	}
	// Reject display-name forms such as "Jane <jane@example.com>".
	return addr.Address == raw && addr.Name == ""
}

// EmailRuleByName returns the built-in rule with the given name.
func EmailRuleByName(name string) (EmailRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LegacyEmailRule.Name:
		return LegacyEmailRule, nil
	case AddressEmailRule.Name:
		return AddressEmailRule, nil
	default:
		return EmailRule{}, fmt.Errorf("unknown email rule %q", name)
	}
}

// Email is a person's email identifier.
type Email struct {
	value string
}

var _ model.Model = (*Email)(nil)

// ParseEmail validates raw against LegacyEmailRule.
func ParseEmail(raw string) (Email, error) {
	return ParseEmailWith(raw, LegacyEmailRule)
}

// ParseEmailWith validates raw against rule.
func ParseEmailWith(raw string, rule EmailRule) (Email, error) {
	if rule.Match == nil || !rule.Match(raw) {
		return Email{}, invalid("Email", rule.Constraints, raw)
	}
	return Email{value: raw}, nil
}

// ParseEmailPtr is ParseEmailWith for optional input.
func ParseEmailPtr(raw *string, rule EmailRule) (Email, error) {
	s, err := deref("Email", raw)
	if err != nil {
		return Email{}, err
	}
	return ParseEmailWith(s, rule)
}

// MustParseEmail panics if raw fails LegacyEmailRule.
func MustParseEmail(raw string) Email {
	e, err := ParseEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

// IsValidEmail reports whether raw satisfies LegacyEmailRule.
func IsValidEmail(raw string) bool {
	return LegacyEmailRule.Match(raw)
}

// String returns the address. Use Redacted when logging.
func (e Email) String() string { return e.value }

// Redacted keeps the first character and, for addresses, the domain:
// "e1234567" becomes "e***" and "jane@example.com" becomes "j***@example.com".
func (e Email) Redacted() string {
	if e.value == "" {
		return "[empty]"
	}
	if at := strings.Index(e.value, "@"); at > 0 {
		return e.value[:1] + "***" + e.value[at:]
	}
	return e.value[:1] + "***"
}

// TypeName returns "Email".
func (e Email) TypeName() string { return "Email" }

// IsZero reports whether the email is unset.
func (e Email) IsZero() bool { return e.value == "" }

// Equal reports whether both hold the same value.
func (e Email) Equal(other Email) bool { return e == other }

// Validate reports an error for the zero Email. A constructed Email always
// satisfies one of the built-in rules.
func (e Email) Validate() error {
	if e.IsZero() {
		return empty(e.TypeName())
	}
	if !LegacyEmailRule.Match(e.value) && !AddressEmailRule.Match(e.value) {
		return invalid(e.TypeName(), EmailConstraints, e.value)
	}
	return nil
}

// MarshalJSON writes the value as a JSON string.
func (e Email) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", e.TypeName(), err)
	}
	return json.Marshal(e.value)
}

// UnmarshalJSON applies LegacyEmailRule, like ParseEmail.
func (e *Email) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString("Email", data)
	if err != nil {
		return err
	}
	parsed, err := ParseEmail(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalYAML writes the value as a YAML scalar.
func (e Email) MarshalYAML() (interface{}, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", e.TypeName(), err)
	}
	return e.value, nil
}

// UnmarshalYAML applies LegacyEmailRule, like UnmarshalJSON.
func (e *Email) UnmarshalYAML(node *yaml.Node) error {
	s, err := decodeYAMLString("Email", node)
	if err != nil {
		return err
	}
	parsed, err := ParseEmail(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Email) MarshalText() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return []byte(e.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Email) UnmarshalText(text []byte) error {
	parsed, err := ParseEmail(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
