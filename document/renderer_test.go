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
	"strings"
	"testing"
)

// TestIsHeaderLine covers markdown, ALL CAPS, and numbered headers
func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line   string
		header bool
	}{
		{line: "# Main Header", header: true},
		{line: "## Sub Header", header: true},
		{line: "### Another Header", header: true},
		{line: "IMPORTANT SECTION TITLE", header: true},
		{line: "1. Introduction Section", header: true},
		{line: "2.1 Subsection Title", header: true},
		{line: "Regular paragraph text", header: false},
		{line: "short", header: false},
		{line: "Mixed Case Text", header: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := isHeaderLine(tt.line); got != tt.header {
				t.Errorf("isHeaderLine(%q) = %v, want %v", tt.line, got, tt.header)
			}
		})
	}
}

// TestRender verifies headers are underlined and body text is wrapped
func TestRender(t *testing.T) {
	content := "# Backend Architecture\n\nThis specification describes the service layout in detail and " +
		"keeps going long enough that the renderer is forced to wrap the paragraph across multiple lines of output.\n"

	rendered := string(NewRenderer().Render(content))

	if !strings.Contains(rendered, "Backend Architecture\n--------") {
		t.Errorf("Expected underlined header, got:\n%s", rendered)
	}

	for _, line := range strings.Split(rendered, "\n") {
		if len(line) > lineWidth {
			t.Errorf("Line exceeds wrap width %d: %q", lineWidth, line)
		}
	}
}

// TestRender_Empty verifies empty content renders without panicking
func TestRender_Empty(t *testing.T) {
	rendered := NewRenderer().Render("")
	if len(rendered) != 1 {
		t.Errorf("Expected single newline for empty content, got %q", string(rendered))
	}
}

// TestWrapLine verifies word-boundary wrapping
func TestWrapLine(t *testing.T) {
	lines := wrapLine("alpha beta gamma delta", 11)

	expected := []string{"alpha beta", "gamma delta"}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %v", len(expected), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("Line %d = %q, want %q", i, lines[i], expected[i])
		}
	}
}
