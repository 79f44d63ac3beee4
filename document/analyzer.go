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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxSections caps section identification. Sectioning is best-effort and
// lossy: downstream synthesis only needs a structural sketch.
const maxSections = 10

// ErrUnsupportedFormat is returned for document formats the analyzer
// cannot process
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrParsing is returned when content extraction from a supported
// document fails
var ErrParsing = errors.New("document parsing failed")

// supportedExtensions lists the formats the analyzer accepts. Binary
// formats (PDF, DOCX) are handled by an upstream conversion service; the
// platform itself only consumes plain text.
var supportedExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// Analysis holds extracted text plus structural metadata for one document
type Analysis struct {
	ExtractedText string            `json:"extracted_text"`
	Sections      []string          `json:"document_sections"`
	Metadata      map[string]string `json:"metadata"`
}

// Analyzer extracts text and structure from requirement documents
type Analyzer struct{}

// NewAnalyzer creates a document analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// AnalyzeFile reads and analyzes a document on disk. Unsupported formats
// return ErrUnsupportedFormat; read or decode failures return ErrParsing
// wrapping the cause.
func (a *Analyzer) AnalyzeFile(path string) (*Analysis, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q (supported: .md, .txt)", ErrUnsupportedFormat, ext)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsing, err)
	}

	text, encoding := decodeText(raw)

	analysis := a.AnalyzeText(text)
	analysis.Metadata["document_type"] = "text_document"
	analysis.Metadata["encoding_used"] = encoding
	return analysis, nil
}

// AnalyzeText analyzes already-extracted plain text
func (a *Analyzer) AnalyzeText(text string) *Analysis {
	return &Analysis{
		ExtractedText: text,
		Sections:      identifySections(text),
		Metadata: map[string]string{
			"character_count": fmt.Sprintf("%d", len(text)),
		},
	}
}

// decodeText returns a UTF-8 string from raw bytes, falling back to a
// Latin-1 interpretation when the bytes are not valid UTF-8
func decodeText(raw []byte) (string, string) {
	if utf8.Valid(raw) {
		return string(raw), "utf-8"
	}

	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes), "latin-1"
}

var sectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`),           // Markdown headers
	regexp.MustCompile(`(?m)^([A-Z][A-Z\s]{3,})$`),      // ALL CAPS headers
	regexp.MustCompile(`(?m)^(\d+\.?\s+[A-Z][^.\n]{10,})$`), // Numbered sections
}

// identifySections finds logical document structure via header detection,
// falling back to paragraph splitting when no headers exist. The result
// is capped at maxSections.
func identifySections(text string) []string {
	sections := []string{}

	for _, pattern := range sectionPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			sections = append(sections, strings.TrimSpace(match[1]))
		}
	}

	if len(sections) == 0 {
		for _, block := range regexp.MustCompile(`\n\s*\n`).Split(text, -1) {
			if trimmed := strings.TrimSpace(block); trimmed != "" {
				sections = append(sections, trimmed)
			}
		}
	}

	if len(sections) > maxSections {
		sections = sections[:maxSections]
	}
	return sections
}
