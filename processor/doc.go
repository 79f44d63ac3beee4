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

/*
Package processor implements the artifact extraction and packaging
pipeline: parsing loosely-structured synthesis output into validated
file artifacts, and assembling artifacts or directory trees into
compressed, inspectable ZIP archives.

# Extraction

ArtifactExtractor scans free-form text for a repeating header plus
fenced-block pattern:

	### File: app.py
	```python
	print("hi")
	```

Each candidate is normalized, cleaned of boilerplate, classified by
extension, and validated. Invalid candidates are silently skipped —
extraction never fails on malformed input, it degrades to an empty or
partial result. Extraction is a pure function of its input text.

# Packaging

ArchivePackager builds a ZIP from an artifact list (duplicate paths
resolve last-wins, a _metadata.json manifest is embedded), and
DirectoryCompressor builds a ZIP from an on-disk tree with exclusion
filtering. InspectArchive summarizes an existing archive.

Error taxonomy: extraction skips silently, archive building degrades
per-artifact (failures recorded in the manifest), and directory
compression or inspection raises CompressionError eagerly — callers must
treat a CompressionError as "no usable output produced".
*/
package processor
