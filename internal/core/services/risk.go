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
	"context"
	"log/slog"
	"time"

	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"github.com/brandsentry/go-brand-compliance/internal/core/risk"
)

// RiskSearcher is the slice of the search client the risk service needs.
// SearchAll absorbs per-query failures into empty hit lists, so it has no
// error return; the result slice preserves query-submission order.
type RiskSearcher interface {
	SearchAll(ctx context.Context, queries []string, windowStart time.Time) []model.QueryHits
}

// RiskService implements RiskFinder: it derives search queries from the
// brand and summary, fans them out to the search provider, scores every
// hit against the summary, and aggregates the survivors into a ranked,
// deduplicated finding list.
type RiskService struct {
	Searcher    RiskSearcher
	WindowDays  int // Lookback window in days; 30 when unset.
	MaxFindings int // Aggregation cap; risk.DefaultMaxFindings when unset.
}

// FindRisks runs the contextual risk search for one pipeline run. The risk
// window is computed once at batch start and shared by every query.
func (s *RiskService) FindRisks(ctx context.Context, brandName string, summary *model.VideoSummary) ([]*model.Finding, error) {
	queries := risk.GenerateQueries(brandName, summary)

	windowDays := s.WindowDays
	if windowDays <= 0 {
		windowDays = 30
	}
	windowStart := time.Now().AddDate(0, 0, -windowDays)

	slog.InfoContext(ctx, "executing risk search queries", "brand", brandName, "queries", len(queries))
	results := s.Searcher.SearchAll(ctx, queries, windowStart)

	perQuery := make([][]*model.Finding, 0, len(results))
	totalHits := 0
	for _, qh := range results {
		findings := make([]*model.Finding, 0, len(qh.Hits))
		for _, hit := range qh.Hits {
			totalHits++
			if f := risk.Score(hit, summary); f != nil {
				findings = append(findings, f)
			}
		}
		perQuery = append(perQuery, findings)
	}

	aggregated := risk.Aggregate(perQuery, s.MaxFindings)
	slog.InfoContext(ctx, "risk search complete",
		"hits", totalHits, "findings", len(aggregated))
	return aggregated, nil
}
