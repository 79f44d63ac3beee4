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

package types

// ContentType classifies an artifact by the extension of its path
type ContentType string

const (
	ContentTypePython     ContentType = "python"
	ContentTypeJavaScript ContentType = "javascript"
	ContentTypeTypeScript ContentType = "typescript"
	ContentTypeCSS        ContentType = "css"
	ContentTypeJSON       ContentType = "json"
	ContentTypeMarkdown   ContentType = "markdown"
	ContentTypeHTML       ContentType = "html"
	ContentTypeYAML       ContentType = "yaml"
	ContentTypeText       ContentType = "text"
	ContentTypeGo         ContentType = "go"
	ContentTypeSQL        ContentType = "sql"
	ContentTypeUnknown    ContentType = "unknown"
)

// String returns the string representation of the ContentType
func (c ContentType) String() string {
	return string(c)
}

// Artifact represents one generated file extracted from synthesis output.
//
// Path is a normalized relative file path: never empty, never absolute,
// forward slashes only, no surrounding quotes or whitespace. Content is
// the file body after boilerplate cleanup and is never empty. Artifacts
// are transient: created by the extractor, consumed by the packager or
// caller, never persisted as standalone entities.
type Artifact struct {
	Path        string      `json:"path"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
}

// ManifestFile describes one artifact recorded in an archive manifest
type ManifestFile struct {
	Path      string `json:"path"`
	Type      string `json:"type"`
	SizeBytes int    `json:"size_bytes"`
}

// ArchiveManifest is the metadata entry embedded in every produced archive
// as _metadata.json. It is created once per archive build and summarizes
// all artifacts accepted into the archive, plus any that failed to
// serialize (skipped, not fatal).
type ArchiveManifest struct {
	TotalFiles  int            `json:"total_files"`
	Files       []ManifestFile `json:"files"`
	Skipped     []string       `json:"skipped,omitempty"`
	GeneratedAt string         `json:"generated_at"`
}

// ArchiveInfo is a read-only summary computed by inspecting an existing
// archive. It is derived data, recomputed on demand and never cached.
type ArchiveInfo struct {
	ArchivePath        string         `json:"archive_path"`
	TotalFiles         int            `json:"total_files"`
	CompressedSize     int64          `json:"compressed_size"`
	UncompressedSize   int64          `json:"uncompressed_size"`
	CompressionRatio   float64        `json:"compression_ratio"`
	FileTypes          map[string]int `json:"file_types"`
	DirectoryStructure []string       `json:"directory_structure"`
}
