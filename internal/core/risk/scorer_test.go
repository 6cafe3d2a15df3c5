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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"github.com/brandsentry/go-brand-compliance/internal/core/risk"
)

func scoringSummary() *model.VideoSummary {
	return &model.VideoSummary{
		MainTopics:       []string{"product launch", "sustainability"},
		CulturalElements: []string{"Earth Day"},
		ContentTheme:     "promotional",
	}
}

// TestScoreCriticalFinding verifies the happy path: a hit mentioning a
// topic, a critical keyword, and a business impact indicator becomes a
// critical finding with the review recommendation.
func TestScoreCriticalFinding(t *testing.T) {
	hit := &model.RawSearchHit{
		Title:         "Company faces lawsuit over product launch claims",
		Text:          "Revenue dropped sharply as customers alleged misleading advertising.",
		URL:           "https://example.com/a",
		PublishedDate: "2025-06-01T00:00:00.000Z",
	}

	finding := risk.Score(hit, scoringSummary())

	assert.NotNil(t, finding)
	assert.Equal(t, model.SeverityCritical, finding.RiskLevel)
	assert.Equal(t, hit.Title, finding.TopicName)
	assert.Equal(t, hit.URL, finding.URL)
	assert.Equal(t, "2025-06-01T00:00:00.000Z", finding.PublishedDate)
	assert.InDelta(t, 0.2, finding.RelevanceScore, 1e-9)
	assert.Contains(t, finding.Recommendation, "reviewing content")
}

// TestScoreRejectsBelowRelevanceFloor verifies a hit that matches no theme,
// topic, or cultural element is discarded before risk classification.
func TestScoreRejectsBelowRelevanceFloor(t *testing.T) {
	hit := &model.RawSearchHit{
		Title: "Unrelated lawsuit hits another firm",
		Text:  "Revenue impact across the sector.",
	}

	assert.Nil(t, risk.Score(hit, scoringSummary()))
}

// TestScoreRejectsMediumRisk verifies a relevant hit with only
// medium-level keywords never becomes a finding.
func TestScoreRejectsMediumRisk(t *testing.T) {
	hit := &model.RawSearchHit{
		Title: "Questions raised about product launch",
		Text:  "Customers debate the pricing concern; revenue steady.",
	}

	assert.Nil(t, risk.Score(hit, scoringSummary()))
}

// TestScoreRejectsWithoutBusinessImpact verifies a relevant high-risk hit
// with no business impact indicator is discarded.
func TestScoreRejectsWithoutBusinessImpact(t *testing.T) {
	hit := &model.RawSearchHit{
		Title: "Online backlash over product launch video",
		Text:  "Commenters were unhappy with the tone of the spot.",
	}

	assert.Nil(t, risk.Score(hit, scoringSummary()))
}

// TestScoreRelevanceIsUncapped verifies the additive score exceeds 1.0 when
// a hit matches the theme plus several topics and cultural elements.
func TestScoreRelevanceIsUncapped(t *testing.T) {
	hit := &model.RawSearchHit{
		Title: "Promotional product launch for Earth Day draws boycott",
		Text:  "The sustainability push backfired; revenue and reputation both suffered.",
	}

	finding := risk.Score(hit, scoringSummary())

	assert.NotNil(t, finding)
	// theme 0.3 + two topics 0.4 + cultural 0.2
	assert.InDelta(t, 0.9, finding.RelevanceScore, 1e-9)

	summary := scoringSummary()
	summary.MainTopics = append(summary.MainTopics, "earth day", "boycott")
	finding = risk.Score(hit, summary)
	assert.NotNil(t, finding)
	assert.Greater(t, finding.RelevanceScore, 1.0)
}

// TestScoreTruncation verifies the topic name is cut at 100 characters with
// no ellipsis and the description at 300 characters with one.
func TestScoreTruncation(t *testing.T) {
	longTitle := "product launch lawsuit " + strings.Repeat("x", 200)
	longText := "revenue " + strings.Repeat("y", 400)
	hit := &model.RawSearchHit{Title: longTitle, Text: longText}

	finding := risk.Score(hit, scoringSummary())

	assert.NotNil(t, finding)
	assert.Len(t, finding.TopicName, 100)
	assert.Equal(t, longTitle[:100], finding.TopicName)
	assert.Len(t, finding.Description, 303)
	assert.True(t, strings.HasSuffix(finding.Description, "..."))
}

// TestScoreDefaultsPublishedDate verifies a hit without a published date
// gets a current timestamp rather than an empty field.
func TestScoreDefaultsPublishedDate(t *testing.T) {
	hit := &model.RawSearchHit{
		Title: "product launch fraud investigation",
		Text:  "regulatory scrutiny grows",
	}

	finding := risk.Score(hit, scoringSummary())

	assert.NotNil(t, finding)
	assert.NotEmpty(t, finding.PublishedDate)
}
