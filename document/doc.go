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
Package document analyzes requirement documents and renders synthesized
specifications.

The Analyzer extracts plain text from markdown and text documents and
identifies logical sections via header detection, capped at ten
sections. The Renderer formats specification
text into a printable document with underlined headers and wrapped
body text.
*/
package document
