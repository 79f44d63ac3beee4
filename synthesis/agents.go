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

// Agent names referenced when collecting outputs from team transcripts
const (
	agentFrontendArchitect = "FrontendArchitect"
	agentBackendArchitect  = "BackendArchitect"
	agentQualityAnalyst    = "QualityAnalyst"
)

// artifactFormatInstruction tells code-generation agents how to emit
// files so the extractor can recover them from the transcript
const artifactFormatInstruction = "Emit every file as a markdown section starting with a header line " +
	"of the form '### File: <relative/path/with/extension>' followed immediately by a fenced code " +
	"block containing the complete file contents. Never emit partial files or placeholder comments."

// specificationAgents builds the requirement synthesis team: two
// architects draft the technical specifications, a quality analyst
// reviews and signs off with the termination keyword.
func specificationAgents() []Agent {
	return []Agent{
		{
			Name:        agentFrontendArchitect,
			Description: "Designs the frontend technical specification",
			SystemPrompt: "You are a senior frontend architect. From the requirements, produce a " +
				"complete frontend technical specification: page inventory, component hierarchy, " +
				"state management, API contracts consumed, and validation rules. Output only the " +
				"specification document.",
		},
		{
			Name:        agentBackendArchitect,
			Description: "Designs the backend technical specification",
			SystemPrompt: "You are a senior backend architect. From the requirements, produce a " +
				"complete backend technical specification: service decomposition, data models, " +
				"API endpoints with request/response schemas, error handling, and persistence " +
				"strategy. Output only the specification document.",
		},
		{
			Name:        agentQualityAnalyst,
			Description: "Reviews both specifications for completeness and consistency",
			SystemPrompt: "You are a technical quality analyst. Review the frontend and backend " +
				"specifications against the requirements. List concrete gaps or contradictions " +
				"for the architects to address. When both specifications are complete and " +
				"consistent, respond with " + TerminationKeyword + ".",
		},
	}
}

// backendAgents builds the backend code-generation team. Each agent owns
// one layer; together one round produces a full service transcript.
func backendAgents() []Agent {
	return []Agent{
		{
			Name:        "APIDesigner",
			Description: "Implements route handlers and request validation",
			SystemPrompt: "You are an API implementation specialist. Generate the HTTP route " +
				"handlers, request validation, and response serialization described in the " +
				"specification. " + artifactFormatInstruction,
		},
		{
			Name:        "ModelDeveloper",
			Description: "Implements data models and persistence code",
			SystemPrompt: "You are a data modeling specialist. Generate the data models, schema " +
				"definitions, and persistence layer described in the specification. " +
				artifactFormatInstruction,
		},
		{
			Name:        "ServiceDeveloper",
			Description: "Implements business logic services",
			SystemPrompt: "You are a business logic specialist. Generate the service layer that " +
				"implements the behavior described in the specification, wiring the API handlers " +
				"to the data models. " + artifactFormatInstruction,
		},
		{
			Name:        "IntegrationEngineer",
			Description: "Implements configuration, startup wiring, and dependencies",
			SystemPrompt: "You are an integration specialist. Generate the application entry point, " +
				"configuration loading, dependency manifest, and any glue code the other layers " +
				"need to run. " + artifactFormatInstruction,
		},
	}
}

// frontendAgents builds the frontend code-generation team
func frontendAgents() []Agent {
	return []Agent{
		{
			Name:        "ComponentDeveloper",
			Description: "Implements UI components and pages",
			SystemPrompt: "You are a UI implementation specialist. Generate the pages and reusable " +
				"components described in the interface specification, including styling. " +
				artifactFormatInstruction,
		},
		{
			Name:        "StateEngineer",
			Description: "Implements client state and API integration",
			SystemPrompt: "You are a client state specialist. Generate the state management, API " +
				"client, and data-flow code the components depend on. " + artifactFormatInstruction,
		},
		{
			Name:        "BuildEngineer",
			Description: "Implements the frontend build setup",
			SystemPrompt: "You are a frontend tooling specialist. Generate the entry point, build " +
				"configuration, and dependency manifest for the application. " +
				artifactFormatInstruction,
		},
	}
}
