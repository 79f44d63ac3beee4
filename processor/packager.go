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
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"specforge/platform/shared/types"
)

// ManifestEntryName is the fixed name of the manifest entry added to
// every archive built from an artifact list
const ManifestEntryName = "_metadata.json"

// ArchivePackager builds compressed archives from in-memory artifact
// lists. It opens no shared resources; concurrent builds are safe.
type ArchivePackager struct{}

// NewArchivePackager creates a new packager
func NewArchivePackager() *ArchivePackager {
	return &ArchivePackager{}
}

// BuildArchive writes each artifact to its path inside a ZIP archive and
// appends a _metadata.json manifest summarizing the accepted set.
//
// Duplicate paths resolve last-wins: the later artifact in the sequence
// replaces the earlier one's entry. An artifact that fails to serialize
// is skipped and recorded in the manifest rather than aborting the build;
// the upstream generated content is untrusted and one malformed file must
// never lose the whole set. The returned buffer is positioned at start,
// ready to stream.
func (p *ArchivePackager) BuildArchive(artifacts []types.Artifact) (*bytes.Buffer, error) {
	// Last-wins resolution before writing: ZIP readers take the final
	// entry for a duplicate name, but producing a single entry keeps the
	// archive and its manifest unambiguous.
	ordered := dedupeArtifacts(artifacts)

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	manifest := types.ArchiveManifest{
		TotalFiles:  0,
		Files:       []types.ManifestFile{},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, artifact := range ordered {
		if err := addArtifactEntry(zw, artifact); err != nil {
			manifest.Skipped = append(manifest.Skipped,
				fmt.Sprintf("%s: %v", artifact.Path, err))
			continue
		}
		manifest.TotalFiles++
		manifest.Files = append(manifest.Files, types.ManifestFile{
			Path:      artifact.Path,
			Type:      artifact.ContentType.String(),
			SizeBytes: len(artifact.Content),
		})
	}

	if err := addManifestEntry(zw, manifest); err != nil {
		zw.Close()
		return nil, fmt.Errorf("failed to write archive manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf, nil
}

// dedupeArtifacts collapses duplicate paths, keeping the content of the
// later occurrence at the position of the first
func dedupeArtifacts(artifacts []types.Artifact) []types.Artifact {
	ordered := make([]types.Artifact, 0, len(artifacts))
	position := make(map[string]int, len(artifacts))

	for _, artifact := range artifacts {
		if idx, seen := position[artifact.Path]; seen {
			ordered[idx] = artifact
			continue
		}
		position[artifact.Path] = len(ordered)
		ordered = append(ordered, artifact)
	}

	return ordered
}

// addArtifactEntry serializes one artifact into the archive. Failures are
// per-item: the caller records them in the manifest and continues.
func addArtifactEntry(zw *zip.Writer, artifact types.Artifact) error {
	w, err := zw.Create(artifact.Path)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	if _, err := w.Write([]byte(artifact.Content)); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}

// addManifestEntry writes the manifest JSON as the archive's final entry
func addManifestEntry(zw *zip.Writer, manifest types.ArchiveManifest) error {
	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}

	w, err := zw.Create(ManifestEntryName)
	if err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}
