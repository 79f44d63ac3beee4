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
Package storage persists generation jobs.

JobRepository stores jobs in PostgreSQL and owns all status
transitions. JobCache keeps short-lived job snapshots in Redis for
status polling; the database is always the source of truth and a cache
miss falls through to the repository.
*/
package storage
