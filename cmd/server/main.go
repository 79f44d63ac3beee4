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

// Package main is the entry point for the SpecForge server.
//
// SpecForge turns requirement documents into generated code archives:
// it analyzes documents, synthesizes technical specifications with
// specialist agent teams, extracts file artifacts from generation
// transcripts, and packages them into downloadable ZIP archives.
//
// Usage:
//
//	./server [-config path/to/config.yaml]
//
// Environment Variables:
//
//	SPECFORGE_PORT - HTTP server port (default: 8080)
//	SPECFORGE_DATABASE_URL - PostgreSQL connection string
//	SPECFORGE_REDIS_URL - Redis connection string (optional)
//	SPECFORGE_LLM_API_KEY - LLM provider API key
//	SPECFORGE_JWT_SECRET - bearer auth secret (optional)
package main

import (
	"flag"
	"log"

	"specforge/platform/config"
	"specforge/platform/server"
	"specforge/platform/storage"
	"specforge/platform/synthesis"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := storage.Open(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	jobs := storage.NewJobRepository(db)

	var cache *storage.JobCache
	if cfg.Redis.URL != "" {
		cache, err = storage.NewJobCache(cfg.Redis.URL)
		if err != nil {
			log.Printf("Warning: job cache disabled: %v", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	var engine *synthesis.Engine
	if cfg.Provider.APIKey != "" {
		provider, err := synthesis.NewOpenAIProvider("primary", synthesis.OpenAIConfig{
			APIKey:  cfg.Provider.APIKey,
			BaseURL: cfg.Provider.BaseURL,
			Model:   cfg.Provider.Model,
		})
		if err != nil {
			log.Fatalf("Failed to initialize LLM provider: %v", err)
		}
		engine = synthesis.NewEngine(provider)
	} else {
		log.Println("Warning: no LLM API key configured, synthesis endpoints disabled")
	}

	srv := newServer(cfg, engine, jobs, cache)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

// newServer keeps the nil-interface wiring in one place: a nil *Engine
// or *JobCache must become a nil interface, not a typed nil.
func newServer(cfg *config.Config, engine *synthesis.Engine, jobs *storage.JobRepository, cache *storage.JobCache) *server.Server {
	if engine == nil && cache == nil {
		return server.NewServer(cfg, nil, jobs, nil)
	}
	if engine == nil {
		return server.NewServer(cfg, nil, jobs, cache)
	}
	if cache == nil {
		return server.NewServer(cfg, engine, jobs, nil)
	}
	return server.NewServer(cfg, engine, jobs, cache)
}
