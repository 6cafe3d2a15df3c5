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

// Package model defines the core data structures of the compliance pipeline.
// Every object here is transient: it is created during a single analysis run,
// passed between pipeline stages, serialized to the caller, and discarded.
// Nothing in this package is persisted.
package model

import (
	"encoding/base64"
	"regexp"
	"strings"
	"time"
)

// Severity is the shared scale for compliance issues and risk findings.
// Findings only ever surface at SeverityHigh or SeverityCritical; the lower
// levels exist for technical issues and for robustness in sorting.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RiskOrder maps a severity to its sort weight. Higher is more severe.
// Medium and low cannot appear in aggregated findings after filtering, but
// the table is defined for all levels so sorting never sees an unknown key.
var RiskOrder = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// Category classifies what aspect of the video a compliance issue concerns.
type Category string

const (
	CategoryVisual         Category = "visual"
	CategoryAudio          Category = "audio"
	CategoryText           Category = "text"
	CategoryBranding       Category = "branding"
	CategoryTechnical      Category = "technical"
	CategoryContextualRisk Category = "contextual-risk"
)

// VideoSummary is the structured topical summary a generative model extracts
// from a video. It is read-only after creation and always producible: when
// analysis fails, callers receive FallbackSummary() instead of a nil value.
type VideoSummary struct {
	MainTopics        []string `json:"mainTopics"`
	KeyMessages       []string `json:"keyMessages"`
	VisualElements    []string `json:"visualElements"`
	TargetAudience    string   `json:"targetAudience"`
	ContentTheme      string   `json:"contentTheme"`
	ProductsMentioned []string `json:"productsMentioned,omitempty"`
	Tone              string   `json:"tone"`
	CulturalElements  []string `json:"culturalElements,omitempty"`
}

// RawSearchHit is a single result returned by the risk search provider.
// Hits are scored immediately and never retained past the scoring stage.
type RawSearchHit struct {
	Title         string `json:"title"`
	Text          string `json:"text"`
	URL           string `json:"url"`
	PublishedDate string `json:"publishedDate,omitempty"`
}

// QueryHits pairs a search query with the hits it returned. The slice a
// search batch produces preserves query-submission order regardless of the
// order the individual requests completed in.
type QueryHits struct {
	Query string
	Hits  []*RawSearchHit
}

// Finding is a scored, filtered search hit representing a potential
// contextual brand risk. Only hits that clear the relevance floor, carry a
// high or critical risk level, and mention a business-impact indicator
// become findings; everything else is discarded during scoring.
type Finding struct {
	TopicName      string   `json:"topicName"`
	Description    string   `json:"description"`
	URL            string   `json:"url"`
	PublishedDate  string   `json:"publishedDate"`
	RiskLevel      Severity `json:"riskLevel"`
	Recommendation string   `json:"recommendation"`
	// RelevanceScore is additive and uncapped: a hit matching the content
	// theme plus several topics can exceed 1.0. Aggregation sorts on the raw
	// value, so it is intentionally left unclamped.
	RelevanceScore float64 `json:"relevanceScore"`
}

// ComplianceIssue is one entry in the final report. Issues come from two
// sources: the technical compliance check (any category except
// contextual-risk) or a transformed Finding (category contextual-risk, with
// Timestamp forced to zero meaning the issue applies to the whole video).
// An issue is immutable once created and lives only for one report.
type ComplianceIssue struct {
	Timestamp     float64  `json:"timestamp"`
	Issue         string   `json:"issue"`
	SuggestedFix  string   `json:"suggestedFix"`
	Severity      Severity `json:"severity"`
	Category      Category `json:"category"`
	SourceURL     string   `json:"sourceUrl,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
}

// ComplianceReport is the final aggregate returned to the caller.
type ComplianceReport struct {
	ID              string             `json:"id"`
	TechnicalIssues []*ComplianceIssue `json:"technicalIssues"`
	ContextualRisks []*ComplianceIssue `json:"contextualRisks"`
	VideoSummary    *VideoSummary      `json:"videoSummary,omitempty"`
	TotalIssues     int                `json:"totalIssues"`
	// ProcessingTime is the wall clock duration of the whole run in
	// milliseconds.
	ProcessingTime int64 `json:"processingTime"`
}

// ProgressUpdate is an ephemeral event emitted while a streaming analysis
// run executes. Progress is monotonically non-decreasing within one run
// except for the terminal error event, which reports zero.
type ProgressUpdate struct {
	Step           string `json:"step"`
	Progress       int    `json:"progress"`
	Message        string `json:"message"`
	PartialResults any    `json:"partialResults,omitempty"`
}

// ComplianceRequest is the caller-facing request shape. Exactly one of
// VideoDataURI, VideoURL, or UploadID identifies the video to analyze.
type ComplianceRequest struct {
	VideoDataURI               string `json:"videoDataUri,omitempty"`
	VideoURL                   string `json:"videoUrl,omitempty"`
	UploadID                   string `json:"uploadId,omitempty"`
	BrandGuidelines            string `json:"brandGuidelines"`
	BrandName                  string `json:"brandName"`
	EnableSensitiveTopicsCheck bool   `json:"enableSensitiveTopicsCheck"`
	ContentType                string `json:"contentType,omitempty"`
}

// VideoInput is the resolved, opaque video payload handed to the model
// boundary: either inline bytes (decoded from a data URI or an upload) or a
// URI reference, plus a MIME type.
type VideoInput struct {
	Data     []byte
	FileURI  string
	MIMEType string
}

var dataURIPattern = regexp.MustCompile(`^data:([^;,]+);base64,`)

// NewVideoInputFromDataURI decodes a base64 data URI into a VideoInput.
// The MIME type embedded in the URI wins over the supplied contentType,
// which in turn wins over the video/mp4 default.
func NewVideoInputFromDataURI(dataURI string, contentType string) (*VideoInput, error) {
	mime := contentType
	if mime == "" {
		mime = "video/mp4"
	}
	payload := dataURI
	if m := dataURIPattern.FindStringSubmatch(dataURI); m != nil {
		mime = m[1]
		payload = dataURI[len(m[0]):]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, err
	}
	return &VideoInput{Data: data, MIMEType: mime}, nil
}

// NewVideoInputFromURI wraps a remote or file-service URI as a VideoInput.
func NewVideoInputFromURI(uri string, contentType string) *VideoInput {
	if contentType == "" {
		contentType = "video/mp4"
	}
	return &VideoInput{FileURI: uri, MIMEType: contentType}
}

// NowISO returns the current UTC time in RFC 3339 form. It is the default
// published date for search hits that do not carry one.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
