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
	"sort"
	"strings"
	"unicode"
)

type position struct {
	prefix Prefix
	start  int
}

// Tokenize splits args on the given prefixes.
//
// A marker is recognised at the start of args or after whitespace, so "n/"
// inside "gn/Team" is not a separate argument. Text before the first marker
// is the preamble. Values are trimmed.
func Tokenize(args string, prefixes ...Prefix) ArgumentMultimap {
	var found []position
	for _, p := range prefixes {
		if p.marker == "" {
			continue
		}
		for from := 0; from < len(args); {
			i := strings.Index(args[from:], p.marker)
			if i < 0 {
				break
			}
			at := from + i
			if at == 0 || unicode.IsSpace(rune(args[at-1])) {
				found = append(found, position{prefix: p, start: at})
			}
			from = at + len(p.marker)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].start < found[j].start })

	m := newArgumentMultimap(prefixes)
	end := len(args)
	if len(found) > 0 {
		end = found[0].start
	}
	m.preamble = strings.TrimSpace(args[:end])

	for i, pos := range found {
		valueEnd := len(args)
		if i+1 < len(found) {
			valueEnd = found[i+1].start
		}
		value := strings.TrimSpace(args[pos.start+len(pos.prefix.marker) : valueEnd])
		m.put(pos.prefix, value)
	}
	return m
}
