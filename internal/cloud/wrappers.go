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

// Package cloud provides clients for external services. This file wraps the
// generative model client with a token-bucket rate limiter and OpenTelemetry
// token accounting. The wrapper deliberately does NOT retry: every failure
// in the pipeline is handled exactly once by the stage that owns it.
package cloud

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// QuotaAwareGenerativeAIModel decorates a generative model with a
// client-side rate limit so a burst of pipeline runs cannot trip the
// provider's per-minute quota.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig
	ModelName               string
	ModelHandle             *genai.Models
	RateLimit               *rate.Limiter

	inputTokenCounter  metric.Int64Counter
	outputTokenCounter metric.Int64Counter
}

// NewQuotaAwareModel wraps a model configuration with a limiter allowing
// requestsPerSecond calls per second (bursts up to the same size).
func NewQuotaAwareModel(config *genai.GenerateContentConfig, name string, handle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	meter := otel.Meter(fmt.Sprintf("genai.model.%s", name))
	inputCounter, _ := meter.Int64Counter(fmt.Sprintf("%s.gemini.token.input", name))
	outputCounter, _ := meter.Int64Counter(fmt.Sprintf("%s.gemini.token.output", name))

	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: config,
		ModelName:               name,
		ModelHandle:             handle,
		RateLimit:               rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		inputTokenCounter:       inputCounter,
		outputTokenCounter:      outputCounter,
	}
}

// GenerateContent waits for a rate limiter token and issues the request.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, err
	}
	return q.ModelHandle.GenerateContent(ctx, q.ModelName, contents, q.GenerativeContentConfig)
}

// GenerateText issues a multi-modal request and returns the concatenated
// text of the response with any markdown code fences stripped. Token usage
// is recorded on the model's OTel counters.
func (q *QuotaAwareGenerativeAIModel) GenerateText(ctx context.Context, contents []*genai.Content) (string, error) {
	resp, err := q.GenerateContent(ctx, contents)
	if err != nil {
		return "", err
	}
	if resp.UsageMetadata != nil {
		q.inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		q.outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", q.ModelName)
	}
	return TrimCodeFences(text), nil
}
