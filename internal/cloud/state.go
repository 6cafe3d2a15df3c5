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

// Package cloud provides clients for external services. This file
// initializes all of them from the application configuration and bundles
// them into a single ServiceClients container that the rest of the
// application receives by injection.
package cloud

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// ServiceClients is the container for every external-service client the
// application uses: the generative model client, the configured
// quota-aware models on top of it, and the risk search client.
type ServiceClients struct {
	GenAIClient  *genai.Client
	SearchClient *ExaSearchClient
	AgentModels  map[string]*QuotaAwareGenerativeAIModel
}

// NewCloudServiceClients initializes the external-service clients from the
// loaded configuration. Authentication against the model provider prefers
// an API key when the configured env var is populated and falls back to
// Vertex project/location credentials otherwise.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	clientConfig := &genai.ClientConfig{}
	if key := os.Getenv(config.Application.GeminiAPIKeyEnv); config.Application.GeminiAPIKeyEnv != "" && key != "" {
		clientConfig.APIKey = key
	} else {
		clientConfig.Project = config.Application.GoogleProjectId
		clientConfig.Location = config.Application.GoogleLocation
		clientConfig.Backend = genai.BackendVertexAI
	}

	gc, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating genai client: %w", err)
	}

	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for amKey, values := range config.AgentModels {
		contentConfig := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
		}
		agentModels[amKey] = NewQuotaAwareModel(contentConfig, values.Model, gc.Models, values.RateLimit)
	}

	searchClient := NewExaSearchClient(config.Search, os.Getenv(config.Search.APIKeyEnv))

	return &ServiceClients{
		GenAIClient:  gc,
		SearchClient: searchClient,
		AgentModels:  agentModels,
	}, nil
}

// Close releases the clients' idle resources. The genai client holds no
// closable handle; the search client only keeps pooled HTTP connections.
func (c *ServiceClients) Close() {
	if c.SearchClient != nil && c.SearchClient.HTTPClient != nil {
		c.SearchClient.HTTPClient.CloseIdleConnections()
	}
}
