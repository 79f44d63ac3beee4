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
Package server exposes the SpecForge HTTP API.

The API covers the full pipeline: document analysis, specification
synthesis, synchronous artifact download, asynchronous generation jobs
with status polling, workspace export, and archive inspection. Requests
carry an X-Request-ID that flows through structured logs; /prometheus
serves scrape metrics while /metrics serves a JSON summary.

Bearer authentication guards the /api/v1 surface when a JWT secret is
configured; an empty secret disables it for local development.
*/
package server
