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
	"compress/flate"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// compressionLevel is deliberately moderate, not maximal: generated trees
// can be large and archive speed matters more than the last few percent.
const compressionLevel = 6

// defaultExclusions keeps archives portable: version-control metadata,
// dependency caches, bytecode, logs, OS metadata, and environment files
// never belong in an export.
var defaultExclusions = []string{
	"__pycache__",
	".git",
	".gitignore",
	"node_modules",
	".env",
	"*.pyc",
	"*.log",
	".DS_Store",
	"Thumbs.db",
}

// DefaultExclusions returns a copy of the default exclusion patterns.
// Callers extend the set per call; the constant itself is never mutated.
func DefaultExclusions() []string {
	out := make([]string, len(defaultExclusions))
	copy(out, defaultExclusions)
	return out
}

// DirectoryCompressor compresses directory trees into ZIP archives with
// exclusion filtering. Each call opens exactly one output handle and
// shares no mutable state, so concurrent calls targeting distinct output
// paths are safe.
type DirectoryCompressor struct{}

// NewDirectoryCompressor creates a new compressor
func NewDirectoryCompressor() *DirectoryCompressor {
	return &DirectoryCompressor{}
}

// Compress recursively walks sourceDir and writes every surviving file
// into a ZIP archive at archivePath, preserving paths relative to
// sourceDir. Excluded directories are pruned before descent, not merely
// omitted from output. Extra exclusion patterns extend (never replace)
// the default set.
//
// Any failure is returned as a CompressionError carrying the original
// cause; partial output from a failed run is not cleaned up and must be
// treated as invalid.
func (c *DirectoryCompressor) Compress(sourceDir, archivePath string, exclusions ...string) error {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return newCompressionError(fmt.Sprintf("source directory does not exist: %s", sourceDir), err)
	}
	if !info.IsDir() {
		return newCompressionError(fmt.Sprintf("source path is not a directory: %s", sourceDir), fmt.Errorf("not a directory"))
	}

	active := append(DefaultExclusions(), exclusions...)

	out, err := os.Create(archivePath)
	if err != nil {
		return newCompressionError("failed to create archive file", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, compressionLevel)
	})

	if err := c.addDirectory(zw, sourceDir, "", active); err != nil {
		zw.Close()
		return newCompressionError("directory compression failed", err)
	}

	if err := zw.Close(); err != nil {
		return newCompressionError("failed to finalize archive", err)
	}

	return nil
}

// addDirectory walks one directory level, filtering entries against the
// exclusion set before descending into subdirectories
func (c *DirectoryCompressor) addDirectory(zw *zip.Writer, dir, relPrefix string, exclusions []string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if shouldExclude(entry.Name(), exclusions) {
			continue
		}

		absPath := filepath.Join(dir, entry.Name())
		relPath := entry.Name()
		if relPrefix != "" {
			relPath = relPrefix + "/" + entry.Name()
		}

		if entry.IsDir() {
			if err := c.addDirectory(zw, absPath, relPath, exclusions); err != nil {
				return err
			}
			continue
		}

		if err := c.addFile(zw, absPath, relPath); err != nil {
			return err
		}
	}

	return nil
}

// addFile copies one file into the archive under its relative path
func (c *DirectoryCompressor) addFile(zw *zip.Writer, absPath, relPath string) error {
	src, err := os.Open(absPath)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.Create(relPath)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, src)
	return err
}

// shouldExclude matches a base name against the exclusion set: exact name
// match, or a single leading/trailing wildcard. Patterns never match
// against full paths and there are no mid-string or recursive globs.
func shouldExclude(name string, exclusions []string) bool {
	for _, pattern := range exclusions {
		if name == pattern {
			return true
		}
		if strings.HasPrefix(pattern, "*") && strings.HasSuffix(name, pattern[1:]) {
			return true
		}
		if strings.HasSuffix(pattern, "*") && strings.HasPrefix(name, pattern[:len(pattern)-1]) {
			return true
		}
	}
	return false
}
