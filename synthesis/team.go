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
	"strings"
	"time"

	"specforge/platform/shared/logger"
)

// Agent is one specialist participant in a round-robin team. The system
// prompt fixes its role; each turn it sees the task plus the transcript
// so far.
type Agent struct {
	Name         string
	Description  string
	SystemPrompt string
}

// Turn records one agent response in a team run
type Turn struct {
	Agent     string        `json:"agent"`
	Content   string        `json:"content"`
	Duration  time.Duration `json:"duration"`
	Truncated bool          `json:"truncated"`
}

// TeamResult is the outcome of a team run: the full transcript and the
// concatenated output text fed to downstream extraction
type TeamResult struct {
	Turns      []Turn
	FinalText  string
	Terminated bool
}

// RoundRobinTeam drives a fixed sequence of agents for a bounded number
// of rounds, stopping early when any agent emits the termination keyword.
type RoundRobinTeam struct {
	agents      []Agent
	provider    Provider
	maxRounds   int
	termination string
	logger      *logger.Logger
}

// NewRoundRobinTeam creates a team over the given agents. maxRounds
// bounds full passes over the agent list; termination is an optional
// keyword that ends the run when present in a response.
func NewRoundRobinTeam(provider Provider, agents []Agent, maxRounds int, termination string) *RoundRobinTeam {
	if maxRounds <= 0 {
		maxRounds = 1
	}
	return &RoundRobinTeam{
		agents:      agents,
		provider:    provider,
		maxRounds:   maxRounds,
		termination: termination,
		logger:      logger.New("synthesis"),
	}
}

// Run executes the team conversation for the given task. A single failed
// turn fails the run: partial transcripts produce misleading artifacts.
func (t *RoundRobinTeam) Run(ctx context.Context, requestID, task string) (*TeamResult, error) {
	if len(t.agents) == 0 {
		return nil, fmt.Errorf("team has no agents")
	}

	result := &TeamResult{Turns: []Turn{}}
	var transcript strings.Builder

	for round := 0; round < t.maxRounds; round++ {
		for _, agent := range t.agents {
			start := time.Now()

			prompt := buildTurnPrompt(task, transcript.String())
			resp, err := t.provider.Complete(ctx, CompletionRequest{
				SystemPrompt: agent.SystemPrompt,
				Prompt:       prompt,
			})
			if err != nil {
				return nil, fmt.Errorf("agent %s turn failed: %w", agent.Name, err)
			}

			turn := Turn{
				Agent:    agent.Name,
				Content:  resp.Content,
				Duration: time.Since(start),
			}
			result.Turns = append(result.Turns, turn)

			transcript.WriteString(fmt.Sprintf("\n\n[%s]\n%s", agent.Name, resp.Content))

			t.logger.InfoWithDuration(requestID, "Agent turn completed",
				float64(turn.Duration.Milliseconds()), map[string]interface{}{
					"agent": agent.Name,
					"round": round + 1,
				})

			if t.termination != "" && strings.Contains(resp.Content, t.termination) {
				result.Terminated = true
				result.FinalText = transcript.String()
				return result, nil
			}
		}
	}

	result.FinalText = transcript.String()
	return result, nil
}

// buildTurnPrompt combines the task with the conversation so far
func buildTurnPrompt(task, transcript string) string {
	if transcript == "" {
		return task
	}
	return fmt.Sprintf("%s\n\nConversation so far:%s\n\nContinue from your role.", task, transcript)
}
