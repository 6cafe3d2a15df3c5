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

package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"github.com/brandsentry/go-brand-compliance/internal/core/risk"
)

// TestGenerateQueriesMinimalSummary verifies the base case: one topic, no
// cultural or visual elements, neutral tone. That yields the four brand
// queries plus two topic queries, in a fixed order.
func TestGenerateQueriesMinimalSummary(t *testing.T) {
	summary := &model.VideoSummary{
		MainTopics:   []string{"sustainability"},
		ContentTheme: "promotional",
		Tone:         "professional",
	}

	queries := risk.GenerateQueries("Acme", summary)

	assert.Equal(t, []string{
		"Recent news about Acme business impact reputation damage:",
		"Recent news about Acme legal issues regulatory problems:",
		"Recent news about Acme customer complaints boycott:",
		"Recent news about Acme financial losses revenue impact:",
		"Business risks associated with sustainability industry impact:",
		"Legal regulatory issues with sustainability compliance problems:",
	}, queries)
}

// TestGenerateQueriesCaps verifies that only the first three topics, two
// cultural elements, and two visual elements contribute queries.
func TestGenerateQueriesCaps(t *testing.T) {
	summary := &model.VideoSummary{
		MainTopics:       []string{"a", "b", "c", "d", "e"},
		CulturalElements: []string{"x", "y", "z"},
		VisualElements:   []string{"v", "w", "u"},
		Tone:             "casual",
	}

	queries := risk.GenerateQueries("Acme", summary)

	// 4 brand + 3*2 topic + 2*2 cultural + 2*2 visual.
	assert.Len(t, queries, 18)
	assert.NotContains(t, queries, "Business risks associated with d industry impact:")
	assert.NotContains(t, queries, "z cultural appropriation sensitivity backlash:")
	assert.NotContains(t, queries, "u problematic imagery business impact:")
}

// TestGenerateQueriesToneTrigger verifies the trending queries appear only
// for urgent or serious tones, matched case-insensitively.
func TestGenerateQueriesToneTrigger(t *testing.T) {
	trigger := &model.VideoSummary{Tone: "Serious and Urgent"}
	queries := risk.GenerateQueries("Acme", trigger)
	assert.Contains(t, queries, "Current business risks trending news brand impact:")
	assert.Contains(t, queries, "Recent regulatory changes affecting brands:")

	neutral := &model.VideoSummary{Tone: "humorous"}
	queries = risk.GenerateQueries("Acme", neutral)
	assert.NotContains(t, queries, "Current business risks trending news brand impact:")
}

// TestGenerateQueriesDeterministic verifies identical inputs produce
// identical output, order included.
func TestGenerateQueriesDeterministic(t *testing.T) {
	summary := &model.VideoSummary{
		MainTopics:       []string{"pricing", "launch"},
		CulturalElements: []string{"Earth Day"},
		VisualElements:   []string{"logo"},
		Tone:             "urgent",
	}

	first := risk.GenerateQueries("Acme", summary)
	second := risk.GenerateQueries("Acme", summary)
	assert.Equal(t, first, second)
}
