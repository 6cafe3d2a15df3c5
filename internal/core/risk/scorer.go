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

package risk

import (
	"strings"

	"github.com/brandsentry/go-brand-compliance/internal/core/model"
)

// Scoring weights and limits. The relevance score is purely additive and
// deliberately uncapped: a hit matching the theme and several topics can
// score above 1.0, and the aggregation sort depends on those raw values.
const (
	themeWeight          = 0.3
	topicWeight          = 0.2
	culturalWeight       = 0.2
	minRelevance         = 0.1
	maxTopicNameLen      = 100
	maxDescriptionLen    = 300
	reviewRecommendation = "Consider reviewing content for potential brand impact and cultural sensitivity"
	watchRecommendation  = "Monitor this topic for potential relevance to your brand"
)

// Score evaluates one raw search hit against the video summary and either
// returns a Finding or nil. The filter is strict by design: a hit survives
// only if it clears the relevance floor, classifies as high or critical
// risk, and mentions at least one business-impact indicator. Most hits are
// expected to be discarded.
func Score(hit *model.RawSearchHit, summary *model.VideoSummary) *model.Finding {
	content := strings.ToLower(hit.Title + " " + hit.Text)

	relevance := 0.0
	if theme := strings.ToLower(summary.ContentTheme); theme != "" && strings.Contains(content, theme) {
		relevance += themeWeight
	}
	for _, topic := range summary.MainTopics {
		if topic != "" && strings.Contains(content, strings.ToLower(topic)) {
			relevance += topicWeight
		}
	}
	for _, element := range summary.CulturalElements {
		if element != "" && strings.Contains(content, strings.ToLower(element)) {
			relevance += culturalWeight
		}
	}
	if relevance < minRelevance {
		return nil
	}

	level := classifyRisk(content)
	if level != model.SeverityHigh && level != model.SeverityCritical {
		return nil
	}

	if !hasBusinessImpact(content) {
		return nil
	}

	published := hit.PublishedDate
	if published == "" {
		published = model.NowISO()
	}

	return &model.Finding{
		TopicName:      truncate(hit.Title, maxTopicNameLen, false),
		Description:    truncate(hit.Text, maxDescriptionLen, true),
		URL:            hit.URL,
		PublishedDate:  published,
		RiskLevel:      level,
		Recommendation: recommendationFor(level),
		RelevanceScore: relevance,
	}
}

// classifyRisk tests the keyword sets in priority order critical, high,
// medium. The first set with any match decides the level; low is the
// default when nothing matches.
func classifyRisk(content string) model.Severity {
	for _, set := range riskKeywords {
		for _, keyword := range set.keywords {
			if strings.Contains(content, keyword) {
				return set.level
			}
		}
	}
	return model.SeverityLow
}

func hasBusinessImpact(content string) bool {
	for _, indicator := range businessImpactIndicators {
		if strings.Contains(content, indicator) {
			return true
		}
	}
	return false
}

func recommendationFor(level model.Severity) string {
	if level == model.SeverityCritical || level == model.SeverityHigh {
		return reviewRecommendation
	}
	return watchRecommendation
}

func truncate(s string, max int, ellipsis bool) string {
	if len(s) <= max {
		return s
	}
	if ellipsis {
		return s[:max] + "..."
	}
	return s[:max]
}
