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

// Package services contains the business logic of the pipeline stages that
// talk to external providers: video summarization, technical compliance
// checking, and contextual risk search. Each service accepts small
// interfaces over the provider clients so tests can substitute fakes.
package services

import (
	"context"
	"fmt"

	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"google.golang.org/genai"
)

// ContentGenerator is the slice of the model client the services need:
// a multi-modal request in, the response text out.
type ContentGenerator interface {
	GenerateText(ctx context.Context, contents []*genai.Content) (string, error)
}

// Summarizer produces a structured topical summary of a video. The summary
// return value is never nil; when err is non-nil the summary is the fixed
// fallback and the error is informational only.
type Summarizer interface {
	Summarize(ctx context.Context, video *model.VideoInput) (*model.VideoSummary, error)
}

// ComplianceChecker analyzes a video against brand guidelines and returns
// the technical issues found. Unlike Summarizer, failures propagate: the
// orchestrator decides how to degrade.
type ComplianceChecker interface {
	Check(ctx context.Context, video *model.VideoInput, guidelines string) ([]*model.ComplianceIssue, error)
}

// RiskFinder runs the full contextual risk search for a brand against a
// video summary and returns the aggregated findings.
type RiskFinder interface {
	FindRisks(ctx context.Context, brandName string, summary *model.VideoSummary) ([]*model.Finding, error)
}

// videoContent assembles the multi-modal request content for a prompt plus
// a video payload, inlining the bytes when the video was supplied as data
// and referencing the URI otherwise.
func videoContent(prompt string, video *model.VideoInput) ([]*genai.Content, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	switch {
	case len(video.Data) > 0:
		parts = append(parts, genai.NewPartFromBytes(video.Data, video.MIMEType))
	case video.FileURI != "":
		parts = append(parts, genai.NewPartFromURI(video.FileURI, video.MIMEType))
	default:
		return nil, fmt.Errorf("video input has neither inline data nor a file URI")
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil
}
