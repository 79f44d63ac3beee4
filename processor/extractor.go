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

package processor

import (
	"path"
	"regexp"
	"strings"

	"specforge/platform/shared/types"
)

// minContentLength is the smallest cleaned content accepted as substantive.
// Shorter candidates are placeholders, not files.
const minContentLength = 10

// contentTypeTable maps a path's final extension to its classification tag.
// Unknown extensions fall back to ContentTypeUnknown.
var contentTypeTable = map[string]types.ContentType{
	".py":   types.ContentTypePython,
	".js":   types.ContentTypeJavaScript,
	".ts":   types.ContentTypeTypeScript,
	".css":  types.ContentTypeCSS,
	".scss": types.ContentTypeCSS,
	".json": types.ContentTypeJSON,
	".md":   types.ContentTypeMarkdown,
	".html": types.ContentTypeHTML,
	".yml":  types.ContentTypeYAML,
	".yaml": types.ContentTypeYAML,
	".txt":  types.ContentTypeText,
	".go":   types.ContentTypeGo,
	".sql":  types.ContentTypeSQL,
}

// defaultBoilerplatePhrases is the denylist of attribution and disclaimer
// lines stripped from generated content before validation.
var defaultBoilerplatePhrases = []string{
	"Code Generated by Sidekick",
	"Auto-generated content",
	"This file was generated by",
	"DO NOT EDIT - generated",
}

// ExtractorConfig controls how the extractor locates file sections in
// free-form text. Markers are the header keywords recognized before a
// path token ("File" matches headers like "### File: app.py").
type ExtractorConfig struct {
	Markers            []string
	BoilerplatePhrases []string
}

// DefaultExtractorConfig returns the extraction configuration used by the
// generation pipeline. The header convention can be extended (for example
// with a "Component" marker) without touching validation or cleanup.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Markers:            []string{"File"},
		BoilerplatePhrases: defaultBoilerplatePhrases,
	}
}

// ArtifactExtractor parses a single free-form text blob (multi-agent
// synthesis output) into an ordered sequence of validated artifacts.
// It performs no I/O and holds no state between calls; a single instance
// is safe for concurrent use.
type ArtifactExtractor struct {
	config  ExtractorConfig
	pattern *regexp.Regexp
}

// NewArtifactExtractor creates an extractor with the default configuration
func NewArtifactExtractor() *ArtifactExtractor {
	return NewArtifactExtractorWithConfig(DefaultExtractorConfig())
}

// NewArtifactExtractorWithConfig creates an extractor with a custom
// marker and cleanup configuration
func NewArtifactExtractorWithConfig(config ExtractorConfig) *ArtifactExtractor {
	if len(config.Markers) == 0 {
		config.Markers = []string{"File"}
	}

	escaped := make([]string, len(config.Markers))
	for i, m := range config.Markers {
		escaped[i] = regexp.QuoteMeta(m)
	}

	// Two-part repeating pattern: a header line introducing a file path
	// (marker keyword, colon, path-like token that may carry quotes,
	// backslashes, or a leading separator) followed by a fenced content
	// block with an optional language hint, up to the next fence or the
	// end of the text.
	pattern := regexp.MustCompile(
		`(?s)#*\s*(?:` + strings.Join(escaped, "|") + "):[ \t]*([^\n]+)\\s*```[a-zA-Z0-9_+-]*\n(.*?)(?:```|\\z)",
	)

	return &ArtifactExtractor{config: config, pattern: pattern}
}

// Extract converts text into a validated artifact list, preserving source
// order. Malformed or invalid candidates are silently skipped; an input
// with no matches yields an empty slice, never an error. Duplicate paths
// are kept as-is — last-wins resolution happens at the archive step.
func (e *ArtifactExtractor) Extract(text string) []types.Artifact {
	artifacts := []types.Artifact{}
	if text == "" {
		return artifacts
	}

	for _, match := range e.pattern.FindAllStringSubmatch(text, -1) {
		filePath := normalizeArtifactPath(match[1])
		content := e.cleanContent(match[2])

		if !validateArtifact(filePath, content) {
			continue
		}

		artifacts = append(artifacts, types.Artifact{
			Path:        filePath,
			Content:     content,
			ContentType: classifyContentType(filePath),
		})
	}

	return artifacts
}

// normalizeArtifactPath strips whitespace and surrounding quotes, converts
// backslashes to forward slashes, and removes a single leading slash
func normalizeArtifactPath(raw string) string {
	p := strings.TrimSpace(raw)
	p = strings.Trim(p, `"'`+"`")
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "/")
	return p
}

// cleanContent drops boilerplate lines matching the configured denylist
// and strips leading/trailing blank lines
func (e *ArtifactExtractor) cleanContent(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if e.isBoilerplateLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	// Strip leading blank lines
	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}
	// Strip trailing blank lines
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}

	return strings.Join(kept, "\n")
}

// isBoilerplateLine reports whether a line matches the cleanup denylist
func (e *ArtifactExtractor) isBoilerplateLine(line string) bool {
	for _, phrase := range e.config.BoilerplatePhrases {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return false
}

// validateArtifact applies the four acceptance rules: non-empty path,
// non-empty content, an extension in the final path segment, and content
// long enough to be substantive
func validateArtifact(filePath, content string) bool {
	if filePath == "" || content == "" {
		return false
	}
	if path.Ext(filePath) == "" {
		return false
	}
	if len(strings.TrimSpace(content)) < minContentLength {
		return false
	}
	return true
}

// classifyContentType looks up the path's final extension in the static
// extension table, falling back to "unknown"
func classifyContentType(filePath string) types.ContentType {
	ext := strings.ToLower(path.Ext(filePath))
	if contentType, ok := contentTypeTable[ext]; ok {
		return contentType
	}
	return types.ContentTypeUnknown
}
