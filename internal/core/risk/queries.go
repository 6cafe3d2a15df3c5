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
	"fmt"
	"strings"

	"github.com/brandsentry/go-brand-compliance/internal/core/model"
)

// Caps on how much of the summary feeds into query generation. More entries
// produce diminishing returns while multiplying search API calls.
const (
	maxTopicQueries    = 3
	maxCulturalQueries = 2
	maxVisualQueries   = 2
)

// GenerateQueries derives the targeted search queries for a brand and a
// video summary. It is deterministic: identical inputs produce identical
// output in identical order. The order is brand risk queries, main topic
// queries, cultural sensitivity queries, visual imagery queries, and
// finally tone-triggered trending queries.
func GenerateQueries(brandName string, summary *model.VideoSummary) []string {
	queries := make([]string, 0, 16)

	// Brand-specific business risk searches focused on actual impact.
	queries = append(queries,
		fmt.Sprintf("Recent news about %s business impact reputation damage:", brandName),
		fmt.Sprintf("Recent news about %s legal issues regulatory problems:", brandName),
		fmt.Sprintf("Recent news about %s customer complaints boycott:", brandName),
		fmt.Sprintf("Recent news about %s financial losses revenue impact:", brandName),
	)

	// Content-specific business and legal risk searches.
	for _, topic := range head(summary.MainTopics, maxTopicQueries) {
		queries = append(queries,
			fmt.Sprintf("Business risks associated with %s industry impact:", topic),
			fmt.Sprintf("Legal regulatory issues with %s compliance problems:", topic),
		)
	}

	// Cultural sensitivity searches, only when the summary surfaced any
	// cultural elements.
	for _, element := range head(summary.CulturalElements, maxCulturalQueries) {
		queries = append(queries,
			fmt.Sprintf("%s cultural appropriation sensitivity backlash:", element),
			fmt.Sprintf("%s cultural insensitivity business impact:", element),
		)
	}

	// Visual elements that might cause business problems.
	for _, element := range head(summary.VisualElements, maxVisualQueries) {
		queries = append(queries,
			fmt.Sprintf("%s problematic imagery business impact:", element),
			fmt.Sprintf("%s visual content legal issues:", element),
		)
	}

	// Tone-triggered searches for serious business risks.
	tone := strings.ToLower(summary.Tone)
	if strings.Contains(tone, "urgent") || strings.Contains(tone, "serious") {
		queries = append(queries,
			"Current business risks trending news brand impact:",
			"Recent regulatory changes affecting brands:",
		)
	}

	return queries
}

func head(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
