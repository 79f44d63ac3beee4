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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile writes a file creating parent directories as needed
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// buildTestTree creates a small source tree for compression tests
func buildTestTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"a.py":                  "print('module a contents')",
		"b.js":                  "console.log('module b');",
		"subfolder/c.html":      "<html><body>hello</body></html>",
		"__pycache__/c.pyc":     "bytecode",
		"src/.git/HEAD":         "ref: refs/heads/main",
		"src/d.py":              "print('module d contents')",
		"node_modules/dep/x.js": "module.exports = {};",
		"debug.log":             "log line",
	}
	for path, content := range files {
		if err := writeFile(filepath.Join(root, path), []byte(content)); err != nil {
			t.Fatalf("Failed to build test tree: %v", err)
		}
	}
	return root
}

// archiveNames lists the entry names of a ZIP file on disk
func archiveNames(t *testing.T, archivePath string) []string {
	t.Helper()

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer reader.Close()

	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	return names
}

// TestCompress_DefaultExclusions verifies version-control metadata,
// dependency caches, bytecode, and logs never reach the archive, even
// nested arbitrarily deep
func TestCompress_DefaultExclusions(t *testing.T) {
	root := buildTestTree(t)
	archivePath := filepath.Join(t.TempDir(), "out.zip")

	if err := NewDirectoryCompressor().Compress(root, archivePath); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	names := archiveNames(t, archivePath)
	got := map[string]bool{}
	for _, name := range names {
		got[name] = true
	}

	for _, want := range []string{"a.py", "b.js", "subfolder/c.html", "src/d.py"} {
		if !got[want] {
			t.Errorf("Expected %s in archive, entries: %v", want, names)
		}
	}

	for _, name := range names {
		if strings.Contains(name, "__pycache__") || strings.Contains(name, ".git") ||
			strings.Contains(name, "node_modules") || strings.HasSuffix(name, ".log") {
			t.Errorf("Excluded entry leaked into archive: %s", name)
		}
	}
}

// TestCompress_CallerExclusionsExtendDefaults verifies per-call patterns
// extend, not replace, the default set
func TestCompress_CallerExclusionsExtendDefaults(t *testing.T) {
	root := buildTestTree(t)
	archivePath := filepath.Join(t.TempDir(), "out.zip")

	if err := NewDirectoryCompressor().Compress(root, archivePath, "*.js", "subfolder"); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	for _, name := range archiveNames(t, archivePath) {
		if strings.HasSuffix(name, ".js") {
			t.Errorf("Caller exclusion *.js not applied: %s", name)
		}
		if strings.HasPrefix(name, "subfolder/") {
			t.Errorf("Caller exclusion subfolder not applied: %s", name)
		}
		if strings.Contains(name, "__pycache__") {
			t.Errorf("Default exclusion dropped when extending: %s", name)
		}
	}
}

// TestCompress_MissingSource verifies a missing or invalid source raises
// CompressionError
func TestCompress_MissingSource(t *testing.T) {
	compressor := NewDirectoryCompressor()
	archivePath := filepath.Join(t.TempDir(), "out.zip")

	err := compressor.Compress(filepath.Join(t.TempDir(), "nope"), archivePath)
	if err == nil {
		t.Fatal("Expected error for missing source directory")
	}
	var ce *CompressionError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected CompressionError, got %T: %v", err, err)
	}
	if !strings.Contains(ce.Error(), "does not exist") {
		t.Errorf("Error should name the failure: %v", ce)
	}
}

// TestCompress_SourceNotADirectory verifies a file source is rejected
func TestCompress_SourceNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := NewDirectoryCompressor().Compress(file, filepath.Join(t.TempDir(), "out.zip"))
	if !IsCompressionError(err) {
		t.Fatalf("Expected CompressionError, got %v", err)
	}
	if !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Error should carry the cause: %v", err)
	}
}

// TestShouldExclude covers exact and single-wildcard matching against
// base names
func TestShouldExclude(t *testing.T) {
	exclusions := []string{"*.pyc", "__pycache__", "node_modules", "*.log", "tmp*"}

	tests := []struct {
		name     string
		excluded bool
	}{
		{name: "__pycache__", excluded: true},
		{name: "node_modules", excluded: true},
		{name: "test.pyc", excluded: true},
		{name: "app.log", excluded: true},
		{name: "tmpfile", excluded: true},
		{name: "app.py", excluded: false},
		{name: "config.json", excluded: false},
		{name: "logbook.md", excluded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldExclude(tt.name, exclusions); got != tt.excluded {
				t.Errorf("shouldExclude(%q) = %v, want %v", tt.name, got, tt.excluded)
			}
		})
	}
}

// TestDefaultExclusions verifies callers get a copy, not the constant
func TestDefaultExclusions(t *testing.T) {
	first := DefaultExclusions()
	first[0] = "mutated"

	second := DefaultExclusions()
	if second[0] == "mutated" {
		t.Error("DefaultExclusions must return a fresh copy per call")
	}
}
