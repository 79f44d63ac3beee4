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
Package synthesis runs the specialist agent teams that turn requirement
documents into technical specifications and code-generation transcripts.

A RoundRobinTeam drives a fixed sequence of agents against a shared
transcript for a bounded number of rounds, with optional keyword
termination. The Engine composes three teams: requirement synthesis
(two architects plus a quality analyst), backend generation, and
frontend generation. Generation transcripts are plain text; artifact
extraction from them belongs to the processor package.

Providers implement the Provider interface. OpenAIProvider speaks the
chat completions protocol and works against any OpenAI-compatible
endpoint via its BaseURL.
*/
package synthesis
