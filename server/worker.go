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

package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"specforge/platform/shared/types"
)

// jobTimeout bounds one full generation run across all agent turns
const jobTimeout = 30 * time.Minute

// runGenerationJob executes a generation job in the background: run the
// agent team, extract artifacts from the transcript, package them, and
// persist the outcome. Runs detached from the initiating request.
func (s *Server) runGenerationJob(jobID string, kind types.JobKind, specification, requestID string) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.jobs.MarkRunning(ctx, jobID); err != nil {
		s.logger.Error(requestID, "Failed to mark job running", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
		return
	}
	s.refreshJobCache(ctx, jobID)

	var transcript string
	var err error
	switch kind {
	case types.JobKindFrontend:
		transcript, err = s.engine.GenerateFrontend(ctx, requestID, specification)
	default:
		transcript, err = s.engine.GenerateBackend(ctx, requestID, specification)
	}
	if err != nil {
		s.failJob(ctx, jobID, kind, requestID, fmt.Sprintf("generation failed: %v", err))
		return
	}

	artifacts := s.extractor.Extract(transcript)
	promArtifactsExtracted.Add(float64(len(artifacts)))

	buf, err := s.packager.BuildArchive(artifacts)
	if err != nil {
		s.failJob(ctx, jobID, kind, requestID, fmt.Sprintf("packaging failed: %v", err))
		return
	}
	promArchivesBuilt.Inc()

	archivePath := filepath.Join(s.cfg.Workspace.ArchiveDir, fmt.Sprintf("%s.zip", jobID))
	if err := os.WriteFile(archivePath, buf.Bytes(), 0o644); err != nil {
		s.failJob(ctx, jobID, kind, requestID, fmt.Sprintf("archive write failed: %v", err))
		return
	}

	if err := s.jobs.MarkCompleted(ctx, jobID, len(artifacts), archivePath); err != nil {
		s.logger.Error(requestID, "Failed to mark job completed", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
		return
	}
	s.refreshJobCache(ctx, jobID)
	promGenerationJobs.WithLabelValues(string(kind), "completed").Inc()

	s.logger.Info(requestID, "Generation job completed", map[string]interface{}{
		"job_id":    jobID,
		"kind":      string(kind),
		"artifacts": len(artifacts),
		"archive":   archivePath,
	})
}

// failJob records a job failure in the store and cache
func (s *Server) failJob(ctx context.Context, jobID string, kind types.JobKind, requestID, message string) {
	if err := s.jobs.MarkFailed(ctx, jobID, message); err != nil {
		s.logger.Error(requestID, "Failed to mark job failed", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
	}
	s.refreshJobCache(ctx, jobID)
	promGenerationJobs.WithLabelValues(string(kind), "failed").Inc()

	s.logger.Error(requestID, "Generation job failed", map[string]interface{}{
		"job_id": jobID,
		"kind":   string(kind),
		"reason": message,
	})
}

// refreshJobCache re-caches the current job snapshot after a state
// change. Cache failures are logged, never fatal.
func (s *Server) refreshJobCache(ctx context.Context, jobID string) {
	if s.cache == nil {
		return
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return
	}
	if err := s.cache.Put(ctx, job); err != nil {
		s.logger.Warn("", "Failed to refresh job cache", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
	}
}
