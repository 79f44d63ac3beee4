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
	"time"
)

// Provider is the interface all LLM providers implement.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name returns the unique identifier for this provider instance,
	// used for routing, logging, and metrics.
	Name() string

	// Complete generates a completion for the given request. The context
	// should be used for cancellation and timeout.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// HealthCheck verifies the provider is operational.
	HealthCheck(ctx context.Context) error
}

// CompletionRequest represents one completion call to a provider
type CompletionRequest struct {
	SystemPrompt string
	Prompt       string
	Model        string
	MaxTokens    int
	Temperature  float64
}

// CompletionResponse represents a provider's completion result
type CompletionResponse struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
	Latency      time.Duration
}
