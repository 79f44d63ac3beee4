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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"specforge/platform/document"
	"specforge/platform/processor"
	"specforge/platform/shared/types"
	"specforge/platform/storage"
)

// maxUploadBytes bounds document uploads
const maxUploadBytes = 10 << 20

// analyzeDocumentHandler accepts a requirement document and returns the
// extracted text and section sketch. The body is either a multipart
// upload under the "document" field or a JSON {"text": ...} payload.
func (s *Server) analyzeDocumentHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := requestIDFrom(r.Context())

	var analysis *document.Analysis
	var sourceName string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.fail(w, r, "Invalid request body", http.StatusBadRequest, start)
			return
		}
		if req.Text == "" {
			s.fail(w, r, "Document text is required", http.StatusBadRequest, start)
			return
		}
		analysis = s.analyzer.AnalyzeText(req.Text)
		sourceName = "inline"
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("document")
		if err != nil {
			s.fail(w, r, "Document upload is required", http.StatusBadRequest, start)
			return
		}
		defer file.Close()

		uploadPath := filepath.Join(s.cfg.Workspace.UploadDir,
			fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(header.Filename)))
		dst, err := os.Create(uploadPath)
		if err != nil {
			s.fail(w, r, "Failed to store uploaded document", http.StatusInternalServerError, start)
			return
		}
		if _, err := io.Copy(dst, file); err != nil {
			dst.Close()
			s.fail(w, r, "Failed to store uploaded document", http.StatusInternalServerError, start)
			return
		}
		dst.Close()

		analysis, err = s.analyzer.AnalyzeFile(uploadPath)
		if err != nil {
			if errors.Is(err, document.ErrUnsupportedFormat) {
				s.fail(w, r, "Unsupported document format", http.StatusUnsupportedMediaType, start)
				return
			}
			s.fail(w, r, "Document analysis failed", http.StatusUnprocessableEntity, start)
			return
		}
		sourceName = header.Filename
	}

	s.logger.InfoWithDuration(requestID, "Document analyzed",
		float64(time.Since(start).Milliseconds()), map[string]interface{}{
			"source":   sourceName,
			"sections": len(analysis.Sections),
		})
	s.succeed(w, http.StatusOK, map[string]interface{}{
		"source":         sourceName,
		"extracted_text": analysis.ExtractedText,
		"sections":       analysis.Sections,
		"metadata":       analysis.Metadata,
	}, start)
}

// generateSpecificationsHandler synthesizes frontend and backend
// technical specifications from a requirements document
func (s *Server) generateSpecificationsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := requestIDFrom(r.Context())

	if s.engine == nil {
		s.fail(w, r, "LLM provider is not configured", http.StatusServiceUnavailable, start)
		return
	}

	var req struct {
		Requirements string `json:"requirements"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, "Invalid request body", http.StatusBadRequest, start)
		return
	}
	if req.Requirements == "" {
		s.fail(w, r, "Requirements text is required", http.StatusBadRequest, start)
		return
	}

	specs, err := s.engine.SynthesizeSpecifications(r.Context(), requestID, req.Requirements)
	if err != nil {
		s.fail(w, r, "Specification synthesis failed: "+err.Error(), http.StatusBadGateway, start)
		return
	}

	s.logger.InfoWithDuration(requestID, "Specifications generated",
		float64(time.Since(start).Milliseconds()), nil)
	s.succeed(w, http.StatusOK, specs, start)
}

// downloadArtifactsHandler extracts artifacts from generated text and
// streams them back as a ZIP archive. A transcript with no valid
// artifacts still yields a manifest-only archive.
func (s *Server) downloadArtifactsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := requestIDFrom(r.Context())

	var req struct {
		Text string `json:"text"`
		Name string `json:"name,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, "Invalid request body", http.StatusBadRequest, start)
		return
	}
	if req.Text == "" {
		s.fail(w, r, "Generated text is required", http.StatusBadRequest, start)
		return
	}

	artifacts := s.extractor.Extract(req.Text)
	promArtifactsExtracted.Add(float64(len(artifacts)))

	buf, err := s.packager.BuildArchive(artifacts)
	if err != nil {
		s.fail(w, r, "Archive packaging failed: "+err.Error(), http.StatusInternalServerError, start)
		return
	}
	promArchivesBuilt.Inc()

	name := req.Name
	if name == "" {
		name = "generated_backend.zip"
	}

	s.logger.InfoWithDuration(requestID, "Artifact archive built",
		float64(time.Since(start).Milliseconds()), map[string]interface{}{
			"artifacts":  len(artifacts),
			"size_bytes": buf.Len(),
		})

	s.metrics.record(time.Since(start).Milliseconds(), true)
	promRequestsTotal.WithLabelValues("artifacts_download", "success").Inc()
	promRequestDuration.WithLabelValues("artifacts_download").Observe(float64(time.Since(start).Milliseconds()))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(name)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error(requestID, "Failed to stream archive", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// initiateBackendHandler starts an asynchronous backend generation job
func (s *Server) initiateBackendHandler(w http.ResponseWriter, r *http.Request) {
	s.initiateGeneration(w, r, types.JobKindBackend)
}

// initiateFrontendHandler starts an asynchronous frontend generation job
func (s *Server) initiateFrontendHandler(w http.ResponseWriter, r *http.Request) {
	s.initiateGeneration(w, r, types.JobKindFrontend)
}

func (s *Server) initiateGeneration(w http.ResponseWriter, r *http.Request, kind types.JobKind) {
	start := time.Now()
	requestID := requestIDFrom(r.Context())

	if s.engine == nil {
		s.fail(w, r, "LLM provider is not configured", http.StatusServiceUnavailable, start)
		return
	}
	if s.jobs == nil {
		s.fail(w, r, "Job store is not configured", http.StatusServiceUnavailable, start)
		return
	}

	var req struct {
		Specification string `json:"specification"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, "Invalid request body", http.StatusBadRequest, start)
		return
	}
	if req.Specification == "" {
		s.fail(w, r, "Specification text is required", http.StatusBadRequest, start)
		return
	}

	job, err := s.jobs.Create(r.Context(), kind, req.Specification)
	if err != nil {
		s.fail(w, r, "Failed to create generation job", http.StatusInternalServerError, start)
		return
	}

	go s.runGenerationJob(job.ID, kind, req.Specification, requestID)

	s.logger.Info(requestID, "Generation job accepted", map[string]interface{}{
		"job_id": job.ID,
		"kind":   string(kind),
	})
	s.succeed(w, http.StatusAccepted, map[string]interface{}{
		"job_id": job.ID,
		"kind":   kind,
		"status": job.Status,
	}, start)
}

// getJobHandler returns job status, preferring the cache
func (s *Server) getJobHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	jobID := mux.Vars(r)["id"]

	if s.cache != nil {
		if job, err := s.cache.Get(r.Context(), jobID); err == nil && job != nil {
			s.succeed(w, http.StatusOK, job, start)
			return
		}
	}

	job, err := s.jobs.GetByID(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			s.fail(w, r, "Job not found", http.StatusNotFound, start)
			return
		}
		s.fail(w, r, "Failed to load job", http.StatusInternalServerError, start)
		return
	}
	s.succeed(w, http.StatusOK, job, start)
}

// listJobsHandler returns recent jobs, newest first
func (s *Server) listJobsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	jobs, err := s.jobs.ListRecent(r.Context(), limit)
	if err != nil {
		s.fail(w, r, "Failed to list jobs", http.StatusInternalServerError, start)
		return
	}
	s.succeed(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	}, start)
}

// exportWorkspaceHandler compresses the generated output directory and
// streams the archive. Extra exclusion patterns come from repeated
// "exclude" query parameters.
func (s *Server) exportWorkspaceHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := requestIDFrom(r.Context())

	exclusions := r.URL.Query()["exclude"]
	archivePath := filepath.Join(s.cfg.Workspace.ArchiveDir,
		fmt.Sprintf("workspace-export-%s.zip", uuid.New().String()))

	if err := s.compressor.Compress(s.cfg.Workspace.OutputDir, archivePath, exclusions...); err != nil {
		status := http.StatusInternalServerError
		if processor.IsCompressionError(err) {
			s.fail(w, r, "Workspace export failed: "+err.Error(), status, start)
			return
		}
		s.fail(w, r, "Workspace export failed", status, start)
		return
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		s.fail(w, r, "Workspace export failed", http.StatusInternalServerError, start)
		return
	}

	s.logger.InfoWithDuration(requestID, "Workspace exported",
		float64(time.Since(start).Milliseconds()), map[string]interface{}{
			"archive":    filepath.Base(archivePath),
			"size_bytes": info.Size(),
		})
	s.metrics.record(time.Since(start).Milliseconds(), true)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="workspace-export.zip"`)
	http.ServeFile(w, r, archivePath)
}

// archiveInfoHandler analyzes a previously built archive by name
func (s *Server) archiveInfoHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	name := r.URL.Query().Get("name")
	if name == "" {
		s.fail(w, r, "Archive name is required", http.StatusBadRequest, start)
		return
	}

	// Base() confines lookups to the archive directory
	archivePath := filepath.Join(s.cfg.Workspace.ArchiveDir, filepath.Base(name))
	info, err := processor.InspectArchive(archivePath)
	if err != nil {
		if os.IsNotExist(errors.Unwrap(err)) {
			s.fail(w, r, "Archive not found", http.StatusNotFound, start)
			return
		}
		s.fail(w, r, "Archive analysis failed: "+err.Error(), http.StatusInternalServerError, start)
		return
	}
	s.succeed(w, http.StatusOK, info, start)
}

// succeed finalizes a successful request with metrics
func (s *Server) succeed(w http.ResponseWriter, status int, payload interface{}, start time.Time) {
	s.metrics.record(time.Since(start).Milliseconds(), true)
	s.sendJSON(w, status, payload)
}

// fail finalizes a failed request with metrics
func (s *Server) fail(w http.ResponseWriter, r *http.Request, message string, status int, start time.Time) {
	s.metrics.record(time.Since(start).Milliseconds(), false)
	s.sendError(w, r, message, status)
}
