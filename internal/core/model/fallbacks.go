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
// This file centralizes every fallback object the pipeline substitutes when a
// stage degrades. Keeping them behind named constructors prevents call sites
// from reproducing slightly different fallback shapes.
package model

import "fmt"

// FallbackSummary returns the canned summary used whenever video analysis
// fails for any reason. The pipeline never propagates a summarization error;
// downstream stages always receive a usable summary.
func FallbackSummary() *VideoSummary {
	return &VideoSummary{
		MainTopics:        []string{"General content"},
		KeyMessages:       []string{"Standard messaging"},
		VisualElements:    []string{"Standard visuals"},
		TargetAudience:    "General audience",
		ContentTheme:      "General content",
		ProductsMentioned: []string{},
		Tone:              "Neutral",
		CulturalElements:  []string{},
	}
}

// QuotaFallbackIssues returns the single warning issue substituted for the
// technical compliance check when the model provider reports quota
// exhaustion. Any other checker failure substitutes an empty issue list.
func QuotaFallbackIssues() []*ComplianceIssue {
	return []*ComplianceIssue{{
		Timestamp:    0,
		Issue:        "⚠️ API quota exceeded - basic compliance check unavailable",
		SuggestedFix: "Please try again later or check your API billing settings. Enhanced features may be limited.",
		Severity:     SeverityMedium,
		Category:     CategoryTechnical,
	}}
}

// NoRiskPlaceholder returns the single low-severity issue synthesized when
// the contextual risk search produces no qualifying findings, so the
// contextual risk list in a report is never empty once the check ran.
func NoRiskPlaceholder() *ComplianceIssue {
	return &ComplianceIssue{
		Timestamp:     0,
		Issue:         "✅ No high or critical risk sensitive topics found",
		SuggestedFix:  "Your content appears compliant with current cultural and trending issues. Only high and critical risk factors are flagged - lower risk items are considered acceptable. Continue monitoring for any emerging risks.",
		Severity:      SeverityLow,
		Category:      CategoryContextualRisk,
		PublishedDate: NowISO(),
	}
}

// FindingsToIssues transforms aggregated risk findings into contextual-risk
// compliance issues. The timestamp is forced to zero because a contextual
// risk applies to the entire video rather than a moment in it.
func FindingsToIssues(findings []*Finding) []*ComplianceIssue {
	issues := make([]*ComplianceIssue, 0, len(findings))
	for _, f := range findings {
		issues = append(issues, &ComplianceIssue{
			Timestamp:     0,
			Issue:         fmt.Sprintf("Contextual Risk: %s - %s", f.TopicName, f.Description),
			SuggestedFix:  f.Recommendation,
			Severity:      f.RiskLevel,
			Category:      CategoryContextualRisk,
			SourceURL:     f.URL,
			PublishedDate: f.PublishedDate,
		})
	}
	return issues
}
