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
Package types contains common types shared between the processor,
synthesis, storage, and server components. It provides a single source
of truth for the artifact data model and generation job records.

An Artifact is one generated file (path, content, content type) produced
by extraction from free-form synthesis output. ArchiveManifest and
ArchiveInfo describe archive contents from the inside (embedded manifest)
and the outside (on-demand inspection) respectively. GenerationJob tracks
asynchronous code-generation runs initiated through the API.
*/
package types
