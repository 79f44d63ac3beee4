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

package types

import "time"

// JobStatus represents the lifecycle state of a generation job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// IsValid returns true if the JobStatus is a known value
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusRunning, JobStatusCompleted, JobStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once a job can no longer change state
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// JobKind identifies the generation pipeline a job runs
type JobKind string

const (
	JobKindBackend  JobKind = "backend"
	JobKindFrontend JobKind = "frontend"
	JobKindSpec     JobKind = "specification"
)

// GenerationJob is a background code-generation run initiated through the
// API. The specification text is fed to the synthesis engine; extracted
// artifact counts and any failure are recorded when the job finishes.
type GenerationJob struct {
	ID            string     `json:"id"`
	Kind          JobKind    `json:"kind"`
	Status        JobStatus  `json:"status"`
	Specification string     `json:"specification,omitempty"`
	ArtifactCount int        `json:"artifact_count"`
	ArchivePath   string     `json:"archive_path,omitempty"`
	Error         string     `json:"error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}
