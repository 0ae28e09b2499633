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

// Package style provides terminal styling for dxbook output using Lipgloss.
package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")). // green
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")). // yellow
		Bold(true)

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")). // red
		Bold(true)

	// Name renders person and group names in listings.
	Name = lipgloss.NewStyle().Bold(true)

	// Dim renders secondary details such as emails and links.
	Dim = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	// Tag renders group references next to a person.
	Tag = lipgloss.NewStyle().
		Foreground(lipgloss.Color("12"))

	SuccessPrefix = Success.Render("✓")
	WarningPrefix = Warning.Render("⚠")
	ErrorPrefix   = Error.Render("✗")
)

// Tags renders names as "[a] [b]".
func Tags(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = Tag.Render("[" + n + "]")
	}
	return strings.Join(parts, " ")
}
