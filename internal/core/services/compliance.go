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
	"text/template"

	"github.com/brandsentry/go-brand-compliance/internal/cloud"
	"github.com/brandsentry/go-brand-compliance/internal/core/model"
)

// ComplianceService implements ComplianceChecker on top of a generative
// model. It sends the video and the brand guidelines with an instruction
// to find distinct, non-repeating issues at specific timestamps, each with
// a concrete parameterized fix, a severity, and a category. The model's
// output is trusted as-is after schema parsing; no local validation is
// layered on top. Failures propagate to the orchestrator, which owns the
// quota-versus-other degradation decision.
type ComplianceService struct {
	Model    ContentGenerator
	Template *template.Template
}

// NewComplianceService parses the configured compliance prompt template.
func NewComplianceService(model ContentGenerator, promptTemplate string) (*ComplianceService, error) {
	tmpl, err := template.New("compliance-prompt").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse compliance prompt template: %w", err)
	}
	return &ComplianceService{Model: model, Template: tmpl}, nil
}

// Check runs the technical compliance analysis and returns the issues the
// model found. Contextual-risk issues never originate here; that category
// is reserved for findings derived from search.
func (s *ComplianceService) Check(ctx context.Context, video *model.VideoInput, guidelines string) ([]*model.ComplianceIssue, error) {
	prompt, err := s.renderPrompt(guidelines)
	if err != nil {
		return nil, err
	}

	contents, err := videoContent(prompt, video)
	if err != nil {
		return nil, err
	}

	raw, err := s.Model.GenerateText(ctx, contents)
	if err != nil {
		return nil, fmt.Errorf("compliance check failed: %w", err)
	}

	return ParseComplianceResponse(raw)
}

func (s *ComplianceService) renderPrompt(guidelines string) (string, error) {
	exampleJSON, err := json.Marshal(model.GetExampleIssues())
	if err != nil {
		return "", err
	}
	var buffer bytes.Buffer
	err = s.Template.Execute(&buffer, map[string]any{
		"GUIDELINES":   guidelines,
		"EXAMPLE_JSON": string(exampleJSON),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute compliance prompt template: %w", err)
	}
	return buffer.String(), nil
}

// ParseComplianceResponse extracts the first balanced JSON array from a
// raw model response and decodes it as a list of compliance issues.
func ParseComplianceResponse(raw string) ([]*model.ComplianceIssue, error) {
	payload, err := cloud.ExtractJSONArray(raw)
	if err != nil {
		return nil, fmt.Errorf("no JSON array in compliance response: %w", err)
	}
	issues := make([]*model.ComplianceIssue, 0)
	if err := json.Unmarshal([]byte(payload), &issues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compliance issues: %w", err)
	}
	return issues, nil
}
