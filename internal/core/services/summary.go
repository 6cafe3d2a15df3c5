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

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/brandsentry/go-brand-compliance/internal/cloud"
	"github.com/brandsentry/go-brand-compliance/internal/core/model"
)

// SummaryService implements Summarizer on top of a generative model. Its
// defining property is totality: Summarize never propagates a failure.
// Whatever goes wrong (provider unreachable, junk response, missing
// credentials wired through the client), the caller receives the fixed
// fallback summary and the pipeline proceeds.
type SummaryService struct {
	Model    ContentGenerator
	Template *template.Template
}

// NewSummaryService parses the configured summary prompt template.
func NewSummaryService(model ContentGenerator, promptTemplate string) (*SummaryService, error) {
	tmpl, err := template.New("summary-prompt").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary prompt template: %w", err)
	}
	return &SummaryService{Model: model, Template: tmpl}, nil
}

// Summarize sends the video to the model with the summarization prompt and
// parses the response into a VideoSummary. The returned summary is never
// nil; a non-nil error means the fallback was substituted and carries the
// cause so the caller can surface a degraded-analysis message.
func (s *SummaryService) Summarize(ctx context.Context, video *model.VideoInput) (*model.VideoSummary, error) {
	prompt, err := s.renderPrompt()
	if err != nil {
		return model.FallbackSummary(), err
	}

	contents, err := videoContent(prompt, video)
	if err != nil {
		return model.FallbackSummary(), err
	}

	raw, err := s.Model.GenerateText(ctx, contents)
	if err != nil {
		slog.WarnContext(ctx, "video summarization failed, using fallback summary", "error", err)
		return model.FallbackSummary(), fmt.Errorf("summary generation failed: %w", err)
	}

	summary, err := ParseSummaryResponse(raw)
	if err != nil {
		slog.WarnContext(ctx, "video summary unparsable, using fallback summary", "error", err)
		return model.FallbackSummary(), err
	}
	return summary, nil
}

func (s *SummaryService) renderPrompt() (string, error) {
	exampleJSON, err := json.Marshal(model.GetExampleSummary())
	if err != nil {
		return "", err
	}
	var buffer bytes.Buffer
	if err := s.Template.Execute(&buffer, map[string]any{"EXAMPLE_JSON": string(exampleJSON)}); err != nil {
		return "", fmt.Errorf("failed to execute summary prompt template: %w", err)
	}
	return buffer.String(), nil
}

// ParseSummaryResponse extracts the first balanced JSON object from a raw
// model response and decodes it as a VideoSummary. Models are instructed to
// return bare JSON but regularly wrap it in prose or fences, so the parse
// is tolerant. A summary with no main topics is treated as a parse failure
// because everything downstream keys off those.
func ParseSummaryResponse(raw string) (*model.VideoSummary, error) {
	payload, err := cloud.ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("no JSON object in summary response: %w", err)
	}
	summary := &model.VideoSummary{}
	if err := json.Unmarshal([]byte(payload), summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal video summary: %w", err)
	}
	if len(summary.MainTopics) == 0 {
		return nil, fmt.Errorf("summary response has no main topics")
	}
	return summary, nil
}
