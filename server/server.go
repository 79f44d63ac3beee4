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
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"specforge/platform/config"
	"specforge/platform/document"
	"specforge/platform/processor"
	"specforge/platform/shared/logger"
	"specforge/platform/shared/types"
	"specforge/platform/synthesis"
)

// jobStore persists generation jobs
type jobStore interface {
	Create(ctx context.Context, kind types.JobKind, specification string) (*types.GenerationJob, error)
	MarkRunning(ctx context.Context, jobID string) error
	MarkCompleted(ctx context.Context, jobID string, artifactCount int, archivePath string) error
	MarkFailed(ctx context.Context, jobID, message string) error
	GetByID(ctx context.Context, jobID string) (*types.GenerationJob, error)
	ListRecent(ctx context.Context, limit int) ([]*types.GenerationJob, error)
}

// jobCache caches job snapshots for status polling
type jobCache interface {
	Put(ctx context.Context, job *types.GenerationJob) error
	Get(ctx context.Context, jobID string) (*types.GenerationJob, error)
	Invalidate(ctx context.Context, jobID string) error
}

// synthesisEngine drives the agent teams
type synthesisEngine interface {
	SynthesizeSpecifications(ctx context.Context, requestID, requirements string) (*synthesis.Specifications, error)
	GenerateBackend(ctx context.Context, requestID, specification string) (string, error)
	GenerateFrontend(ctx context.Context, requestID, specification string) (string, error)
	HealthCheck(ctx context.Context) error
}

// Server wires the HTTP API to the processing components
type Server struct {
	cfg        *config.Config
	engine     synthesisEngine
	jobs       jobStore
	cache      jobCache
	analyzer   *document.Analyzer
	renderer   *document.Renderer
	extractor  *processor.ArtifactExtractor
	packager   *processor.ArchivePackager
	compressor *processor.DirectoryCompressor
	logger     *logger.Logger
	metrics    *serviceMetrics
}

// NewServer assembles a server from its dependencies. The cache is
// optional; a nil cache sends every status poll to the store.
func NewServer(cfg *config.Config, engine synthesisEngine, jobs jobStore, cache jobCache) *Server {
	return &Server{
		cfg:        cfg,
		engine:     engine,
		jobs:       jobs,
		cache:      cache,
		analyzer:   document.NewAnalyzer(),
		renderer:   document.NewRenderer(),
		extractor:  processor.NewArtifactExtractor(),
		packager:   processor.NewArchivePackager(),
		compressor: processor.NewDirectoryCompressor(),
		logger:     logger.New("server"),
		metrics:    newServiceMetrics(),
	}
}

// Router builds the HTTP route table
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/health", s.healthHandler).Methods("GET")
	r.HandleFunc("/metrics", s.metricsHandler).Methods("GET")
	r.Handle("/prometheus", promhttp.Handler()).Methods("GET")

	// API surface, behind bearer auth when configured
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(mux.MiddlewareFunc(s.authMiddleware))

	api.HandleFunc("/documents/analyze", s.analyzeDocumentHandler).Methods("POST")
	api.HandleFunc("/specifications/generate", s.generateSpecificationsHandler).Methods("POST")
	api.HandleFunc("/artifacts/backend/download", s.downloadArtifactsHandler).Methods("POST")
	api.HandleFunc("/generation/backend/initiate", s.initiateBackendHandler).Methods("POST")
	api.HandleFunc("/generation/frontend/initiate", s.initiateFrontendHandler).Methods("POST")
	api.HandleFunc("/jobs", s.listJobsHandler).Methods("GET")
	api.HandleFunc("/jobs/{id}", s.getJobHandler).Methods("GET")
	api.HandleFunc("/workspace/export", s.exportWorkspaceHandler).Methods("GET")
	api.HandleFunc("/archives/info", s.archiveInfoHandler).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(requestIDMiddleware(r))
}

// Run starts the HTTP server and blocks until it is shut down
func (s *Server) Run() error {
	if err := s.cfg.EnsureWorkspace(); err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.logger.Info("", "SpecForge server listening", map[string]interface{}{
		"port": s.cfg.Server.Port,
	})
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	components := map[string]bool{
		"job_store": s.jobs != nil,
		"job_cache": s.cache != nil,
	}

	providerHealthy := false
	if s.engine != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		providerHealthy = s.engine.HealthCheck(ctx) == nil
	}
	components["llm_provider"] = providerHealthy

	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"service":    "specforge",
		"version":    "1.0.0",
		"timestamp":  time.Now().UTC(),
		"components": components,
	})
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"service_metrics": s.metrics.snapshot(),
		"timestamp":       time.Now().UTC(),
	})
}

// sendJSON writes a JSON response
func (s *Server) sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// sendError writes a JSON error response and records the failure
func (s *Server) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	s.logger.ErrorWithCode(requestIDFrom(r.Context()), message, status, nil, nil)
	s.sendJSON(w, status, map[string]interface{}{
		"error":  message,
		"status": status,
	})
}
