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
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specforge/platform/shared/types"
)

// readArchive opens an in-memory archive and returns entries by name
func readArchive(t *testing.T, buf *bytes.Buffer) map[string]string {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err, "archive should be readable")

	entries := map[string]string{}
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		entries[f.Name] = string(data)
	}
	return entries
}

// TestBuildArchive creates an archive from artifacts and verifies entries
// plus the embedded manifest
func TestBuildArchive(t *testing.T) {
	artifacts := []types.Artifact{
		{Path: "main.py", Content: "print('Hello, World!')", ContentType: types.ContentTypePython},
		{Path: "config.json", Content: `{"debug": true}`, ContentType: types.ContentTypeJSON},
	}

	buf, err := NewArchivePackager().BuildArchive(artifacts)
	require.NoError(t, err)
	require.Greater(t, buf.Len(), 0, "archive should have content")

	entries := readArchive(t, buf)

	assert.Contains(t, entries, "main.py")
	assert.Contains(t, entries, "config.json")
	assert.Contains(t, entries, ManifestEntryName)
	assert.Equal(t, "print('Hello, World!')", entries["main.py"])

	var manifest types.ArchiveManifest
	require.NoError(t, json.Unmarshal([]byte(entries[ManifestEntryName]), &manifest))
	assert.Equal(t, 2, manifest.TotalFiles)
	assert.Len(t, manifest.Files, 2)
	assert.Equal(t, "main.py", manifest.Files[0].Path)
	assert.Equal(t, "python", manifest.Files[0].Type)
	assert.Equal(t, len("print('Hello, World!')"), manifest.Files[0].SizeBytes)
	assert.NotEmpty(t, manifest.GeneratedAt)
	assert.Empty(t, manifest.Skipped)
}

// TestBuildArchive_Empty verifies an empty artifact list still yields a
// valid archive containing only the manifest
func TestBuildArchive_Empty(t *testing.T) {
	buf, err := NewArchivePackager().BuildArchive(nil)
	require.NoError(t, err)

	entries := readArchive(t, buf)
	require.Len(t, entries, 1)
	assert.Contains(t, entries, ManifestEntryName)

	var manifest types.ArchiveManifest
	require.NoError(t, json.Unmarshal([]byte(entries[ManifestEntryName]), &manifest))
	assert.Equal(t, 0, manifest.TotalFiles)
}

// TestBuildArchive_DuplicatePathLastWins verifies the later artifact's
// content replaces the earlier entry and the archive holds exactly one
// entry for the path
func TestBuildArchive_DuplicatePathLastWins(t *testing.T) {
	artifacts := []types.Artifact{
		{Path: "app.py", Content: "print('first version of file')", ContentType: types.ContentTypePython},
		{Path: "app.py", Content: "print('second version of file')", ContentType: types.ContentTypePython},
	}

	buf, err := NewArchivePackager().BuildArchive(artifacts)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	count := 0
	for _, f := range reader.File {
		if f.Name == "app.py" {
			count++
		}
	}
	assert.Equal(t, 1, count, "duplicate path should produce exactly one entry")

	entries := readArchive(t, buf)
	assert.Equal(t, "print('second version of file')", entries["app.py"])

	var manifest types.ArchiveManifest
	require.NoError(t, json.Unmarshal([]byte(entries[ManifestEntryName]), &manifest))
	assert.Equal(t, 1, manifest.TotalFiles)
}

// TestBuildArchive_RoundTripInspection builds an archive, writes it to
// disk, and inspects it
func TestBuildArchive_RoundTripInspection(t *testing.T) {
	artifacts := []types.Artifact{
		{Path: "a.py", Content: "print(1)", ContentType: types.ContentTypePython},
	}

	buf, err := NewArchivePackager().BuildArchive(artifacts)
	require.NoError(t, err)

	archivePath := t.TempDir() + "/artifacts.zip"
	require.NoError(t, writeFile(archivePath, buf.Bytes()))

	info, err := InspectArchive(archivePath)
	require.NoError(t, err)

	// The artifact plus the manifest entry
	assert.Equal(t, 2, info.TotalFiles)
	assert.Equal(t, 1, info.FileTypes[".py"])
	assert.Equal(t, 1, info.FileTypes[".json"])
}
