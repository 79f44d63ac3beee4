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

package synthesis

import (
	"context"
	"fmt"

	"specforge/platform/shared/logger"
)

// TerminationKeyword ends specification review once the quality analyst
// signs off
const TerminationKeyword = "TECHNICAL_REVIEW_COMPLETE"

// specReviewRounds bounds the specification team conversation
const specReviewRounds = 2

// Engine orchestrates the specialist agent teams: requirement
// synthesis into technical specifications, and backend/frontend code
// generation whose transcripts feed artifact extraction.
type Engine struct {
	provider Provider
	logger   *logger.Logger
}

// NewEngine creates a synthesis engine on top of an LLM provider
func NewEngine(provider Provider) *Engine {
	return &Engine{
		provider: provider,
		logger:   logger.New("synthesis"),
	}
}

// Specifications holds the two technical design documents produced from
// one requirements document
type Specifications struct {
	Frontend string `json:"frontend_technical_specification"`
	Backend  string `json:"backend_technical_specification"`
}

// SynthesizeSpecifications transforms a software requirements document
// into frontend and backend technical specifications, validated by a
// quality analyst agent.
func (e *Engine) SynthesizeSpecifications(ctx context.Context, requestID, requirements string) (*Specifications, error) {
	team := NewRoundRobinTeam(e.provider, specificationAgents(), specReviewRounds, TerminationKeyword)

	task := "Transform the following Software Requirements Specification into detailed " +
		"technical design documents.\n\nRequirements:\n" + requirements

	result, err := team.Run(ctx, requestID, task)
	if err != nil {
		return nil, fmt.Errorf("specification synthesis failed: %w", err)
	}

	specs := &Specifications{}
	for _, turn := range result.Turns {
		switch turn.Agent {
		case agentFrontendArchitect:
			specs.Frontend = turn.Content
		case agentBackendArchitect:
			specs.Backend = turn.Content
		}
	}

	if specs.Frontend == "" || specs.Backend == "" {
		return nil, fmt.Errorf("specification synthesis incomplete: missing architect output")
	}

	e.logger.Info(requestID, "Specifications synthesized", map[string]interface{}{
		"turns":      len(result.Turns),
		"terminated": result.Terminated,
	})
	return specs, nil
}

// GenerateBackend runs the backend code-generation team against a
// technical specification and returns the raw transcript text. Artifact
// extraction happens downstream in the processor.
func (e *Engine) GenerateBackend(ctx context.Context, requestID, specification string) (string, error) {
	team := NewRoundRobinTeam(e.provider, backendAgents(), 1, "")

	task := "Generate backend code for the following technical specification.\n\n" +
		"Specification:\n" + specification

	result, err := team.Run(ctx, requestID, task)
	if err != nil {
		return "", fmt.Errorf("backend generation failed: %w", err)
	}
	return result.FinalText, nil
}

// GenerateFrontend runs the frontend code-generation team against an
// interface specification and returns the raw transcript text
func (e *Engine) GenerateFrontend(ctx context.Context, requestID, specification string) (string, error) {
	team := NewRoundRobinTeam(e.provider, frontendAgents(), 1, "")

	task := "Generate frontend code for the following interface specification.\n\n" +
		"Specification:\n" + specification

	result, err := team.Run(ctx, requestID, task)
	if err != nil {
		return "", fmt.Errorf("frontend generation failed: %w", err)
	}
	return result.FinalText, nil
}

// HealthCheck verifies the underlying provider is reachable
func (e *Engine) HealthCheck(ctx context.Context) error {
	return e.provider.HealthCheck(ctx)
}
