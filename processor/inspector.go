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
	"math"
	"path"
	"sort"
	"strings"

	"specforge/platform/shared/types"
)

// InspectArchive computes a read-only summary of an existing ZIP archive:
// file count (directories excluded), compressed and uncompressed byte
// totals, compression ratio, an extension histogram, and the directory
// listing. The result is derived on demand and never cached.
//
// An unreadable or corrupt archive returns a CompressionError wrapping
// the underlying cause.
func InspectArchive(archivePath string) (*types.ArchiveInfo, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, newCompressionError("archive analysis failed", err)
	}
	defer reader.Close()

	info := &types.ArchiveInfo{
		ArchivePath: archivePath,
		FileTypes:   map[string]int{},
	}

	directories := map[string]bool{}

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			directories[strings.TrimSuffix(entry.Name, "/")] = true
			continue
		}

		info.TotalFiles++
		info.CompressedSize += int64(entry.CompressedSize64)
		info.UncompressedSize += int64(entry.UncompressedSize64)

		ext := strings.ToLower(path.Ext(entry.Name))
		if ext == "" {
			ext = "no_extension"
		}
		info.FileTypes[ext]++

		if parent := path.Dir(entry.Name); parent != "." {
			directories[parent] = true
		}
	}

	info.CompressionRatio = compressionRatio(info.CompressedSize, info.UncompressedSize)

	info.DirectoryStructure = make([]string, 0, len(directories))
	for dir := range directories {
		info.DirectoryStructure = append(info.DirectoryStructure, dir)
	}
	sort.Strings(info.DirectoryStructure)

	return info, nil
}

// compressionRatio is compressed/uncompressed as a percentage, rounded to
// two decimals. Defined as 0.0 for an empty archive so inspection never
// divides by zero.
func compressionRatio(compressed, uncompressed int64) float64 {
	if uncompressed == 0 {
		return 0.0
	}
	ratio := float64(compressed) / float64(uncompressed) * 100
	return math.Round(ratio*100) / 100
}
