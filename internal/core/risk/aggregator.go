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
	"sort"

	"github.com/brandsentry/go-brand-compliance/internal/core/model"
)

// DefaultMaxFindings caps how many findings survive aggregation.
const DefaultMaxFindings = 10

// Aggregate merges per-query finding lists into the final ranked set.
// The input order is queries in generation order with findings in hit order;
// that order decides which duplicate of a URL wins (the first occurrence).
// The merged set is sorted descending by risk level and then by relevance
// score, and truncated to max entries (DefaultMaxFindings when max <= 0).
func Aggregate(perQuery [][]*model.Finding, max int) []*model.Finding {
	if max <= 0 {
		max = DefaultMaxFindings
	}

	seen := make(map[string]bool)
	merged := make([]*model.Finding, 0)
	for _, findings := range perQuery {
		for _, f := range findings {
			if seen[f.URL] {
				continue
			}
			seen[f.URL] = true
			merged = append(merged, f)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		ri, rj := model.RiskOrder[merged[i].RiskLevel], model.RiskOrder[merged[j].RiskLevel]
		if ri != rj {
			return ri > rj
		}
		return merged[i].RelevanceScore > merged[j].RelevanceScore
	})

	if len(merged) > max {
		merged = merged[:max]
	}
	return merged
}
