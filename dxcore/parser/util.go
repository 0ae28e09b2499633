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
	"strings"

	"dirpx.dev/dxbook/dxcore/model/field"
)

// The helpers below trim user input and hand it to the value types.

// ParseName trims raw and parses it as a Name.
func ParseName(raw string) (field.Name, error) {
	return field.ParseName(strings.TrimSpace(raw))
}

// ParseEmail trims raw and parses it as an Email under rule.
func ParseEmail(raw string, rule field.EmailRule) (field.Email, error) {
	return field.ParseEmailWith(strings.TrimSpace(raw), rule)
}

// ParseGroupName trims raw and parses it as a GroupName.
func ParseGroupName(raw string) (field.GroupName, error) {
	return field.ParseGroupName(strings.TrimSpace(raw))
}

// ParseGroupNames keeps repeats; the aggregate rejects them.
func ParseGroupNames(raws []string) ([]field.GroupName, error) {
	out := make([]field.GroupName, 0, len(raws))
	for _, raw := range raws {
		g, err := ParseGroupName(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// ParseRepoLink is for user input, so the "none" sentinel is rejected.
func ParseRepoLink(raw string) (field.RepoLink, error) {
	return field.ParseRepoLink(strings.TrimSpace(raw))
}
