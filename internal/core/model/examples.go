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

// Package model defines the data structures for the application. This file
// provides factory functions for hardcoded example instances used for
// few-shot prompting: embedding a concrete example of the desired JSON
// output in the prompt keeps the model's responses consistent and parsable.
package model

// GetExampleSummary creates a sample VideoSummary used as a few-shot
// example in the summarization prompt.
func GetExampleSummary() *VideoSummary {
	return &VideoSummary{
		MainTopics:        []string{"sustainable packaging", "ocean plastic", "product launch"},
		KeyMessages:       []string{"Switching to recycled materials", "Every bottle counts"},
		VisualElements:    []string{"green and blue color palette", "ocean footage", "recycling logo overlay"},
		TargetAudience:    "environmentally conscious consumers aged 18-35",
		ContentTheme:      "promotional",
		ProductsMentioned: []string{"EverGreen water bottle"},
		Tone:              "optimistic, urgent",
		CulturalElements:  []string{"Earth Day"},
	}
}

// GetExampleIssues creates sample ComplianceIssue values used as a few-shot
// example in the technical compliance prompt. The categories deliberately
// span the checker's range; contextual-risk never appears because that
// category is reserved for findings derived from search.
func GetExampleIssues() []*ComplianceIssue {
	return []*ComplianceIssue{
		{
			Timestamp:    0.0,
			Issue:        "Brand logo is missing from the top-right corner at 0.0s",
			SuggestedFix: "Overlay the primary logo at 85% opacity in the top-right corner for the first 3 seconds",
			Severity:     SeverityHigh,
			Category:     CategoryBranding,
		},
		{
			Timestamp:    3.2,
			Issue:        "Text color #FF0000 violates brand color palette (should be #1E40AF) at 3.2s",
			SuggestedFix: "Change the headline text color to #1E40AF per the primary palette",
			Severity:     SeverityMedium,
			Category:     CategoryVisual,
		},
		{
			Timestamp:    15.8,
			Issue:        "Audio volume exceeds brand standard of -12dB at 15.8s",
			SuggestedFix: "Normalize the soundtrack to -12dB between 15s and 18s",
			Severity:     SeverityLow,
			Category:     CategoryAudio,
		},
	}
}
