// Copyright 2025 SpecForge
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package document

import (
	"regexp"
	"strings"
)

// lineWidth is the wrap column for rendered specification documents
const lineWidth = 92

var numberedHeaderPattern = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+\S`)

// Renderer formats a synthesized specification into a printable plain-text
// document: headers are underlined and set off, body text is wrapped.
type Renderer struct{}

// NewRenderer creates a document renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render formats specification text into a printable document
func (r *Renderer) Render(content string) []byte {
	var out strings.Builder

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out.WriteString("\n")
			continue
		}

		if isHeaderLine(trimmed) {
			title := strings.TrimLeft(trimmed, "# ")
			out.WriteString("\n")
			out.WriteString(title)
			out.WriteString("\n")
			out.WriteString(strings.Repeat("-", min(len(title), lineWidth)))
			out.WriteString("\n")
			continue
		}

		for _, wrapped := range wrapLine(trimmed, lineWidth) {
			out.WriteString(wrapped)
			out.WriteString("\n")
		}
	}

	return []byte(out.String())
}

// isHeaderLine detects markdown headers, ALL CAPS titles, and numbered
// section headings
func isHeaderLine(line string) bool {
	if strings.HasPrefix(line, "#") {
		return true
	}
	if len(line) > 8 && line == strings.ToUpper(line) && strings.ContainsAny(line, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return true
	}
	return numberedHeaderPattern.MatchString(line)
}

// wrapLine breaks a line on word boundaries at the given width
func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}

	lines := []string{}
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
