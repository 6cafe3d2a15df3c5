// Copyright 2025 BrandSentry, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cloud provides the clients for the external services the
// pipeline depends on (the generative model provider and the risk search
// provider) along with the configuration structures for both, loaded from
// TOML files.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings disables the model provider's content blocking for
// all harm categories. Compliance analysis has to be able to look at the
// very content a stricter filter would drop.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// PromptTemplates holds the Go text/template sources for the prompts sent
// to the generative models.
type PromptTemplates struct {
	SummaryPrompt    string `toml:"summary"`    // Template for the video summarization prompt.
	CompliancePrompt string `toml:"compliance"` // Template for the technical compliance prompt.
}

// GenAIModel configures one generative model, including its sampling
// parameters and client-side rate limit.
type GenAIModel struct {
	Model              string  `toml:"model"`               // The provider's model identifier.
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the model.
	Temperature        float32 `toml:"temperature"`         // Sampling temperature.
	TopP               float32 `toml:"top_p"`               // Nucleus sampling parameter.
	TopK               float32 `toml:"top_k"`               // Top-k sampling parameter.
	MaxTokens          int32   `toml:"max_tokens"`          // Output token cap.
	OutputFormat       string  `toml:"output_format"`       // Desired response MIME type (e.g. application/json).
	RateLimit          int     `toml:"rate_limit"`          // Client-side requests-per-second limit.
}

// SearchProvider configures the risk search API.
type SearchProvider struct {
	BaseURL          string `toml:"base_url"`           // Root URL of the search API.
	APIKeyEnv        string `toml:"api_key_env"`        // Name of the env var holding the API key.
	ResultsPerQuery  int    `toml:"results_per_query"`  // Result cap per individual query.
	WindowDays       int    `toml:"window_days"`        // Lookback window applied to every query in a batch.
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // HTTP timeout for a single search request.
	MaxFindings      int    `toml:"max_findings"`       // Cap on aggregated findings per run.
}

// Config is the top-level application configuration, loaded from TOML.
type Config struct {
	Application struct {
		Name            string `toml:"name"`              // The service name, used for telemetry.
		Port            int    `toml:"port"`              // HTTP listen port.
		GoogleProjectId string `toml:"google_project_id"` // Google Cloud project for Vertex and telemetry export.
		GoogleLocation  string `toml:"location"`          // Google Cloud location for Vertex.
		GeminiAPIKeyEnv string `toml:"gemini_api_key_env"` // Env var holding an API key; when set it wins over Vertex auth.
		ScratchDir      string `toml:"scratch_dir"`       // Directory for uploaded videos awaiting analysis.
	} `toml:"application"`
	Search          SearchProvider        `toml:"search"`           // Risk search provider configuration.
	PromptTemplates PromptTemplates       `toml:"prompt_templates"` // Prompt template sources.
	AgentModels     map[string]GenAIModel `toml:"agent_models"`     // Generative models keyed by a logical name (e.g. "summary-flash").
}

// NewConfig creates a Config with its map fields initialized so the TOML
// decoder can populate them.
func NewConfig() *Config {
	return &Config{
		AgentModels: make(map[string]GenAIModel),
	}
}
