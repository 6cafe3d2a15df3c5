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

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/zeebo/assert"

	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"github.com/brandsentry/go-brand-compliance/internal/core/services"
	test "github.com/brandsentry/go-brand-compliance/internal/testutil"
)

// fakeSearcher returns a fixed hit set for every query and records the
// batch it received.
type fakeSearcher struct {
	hits        []*model.RawSearchHit
	queries     []string
	windowStart time.Time
}

func (f *fakeSearcher) SearchAll(_ context.Context, queries []string, windowStart time.Time) []model.QueryHits {
	f.queries = queries
	f.windowStart = windowStart
	out := make([]model.QueryHits, len(queries))
	for i, q := range queries {
		out[i] = model.QueryHits{Query: q, Hits: f.hits}
	}
	return out
}

// TestFindRisksScoresAndAggregates verifies the full path: queries are
// generated from the brand and summary, every hit is scored, survivors are
// deduplicated by URL across queries, and the window honors WindowDays.
func TestFindRisksScoresAndAggregates(t *testing.T) {
	searcher := &fakeSearcher{hits: []*model.RawSearchHit{
		test.GetTestHit("https://example.com/lawsuit"),
		{
			// Relevant but only medium risk, must be filtered out.
			Title: "Questions about product launch pricing",
			Text:  "Customers debate the new revenue model.",
			URL:   "https://example.com/medium",
		},
	}}
	svc := &services.RiskService{Searcher: searcher, WindowDays: 7}

	findings, err := svc.FindRisks(context.Background(), "Acme", test.GetTestSummary())
	assert.NoError(t, err)

	// The same URL came back for every query; dedup leaves one finding.
	assert.Equal(t, 1, len(findings))
	assert.Equal(t, model.SeverityCritical, findings[0].RiskLevel)
	assert.Equal(t, "https://example.com/lawsuit", findings[0].URL)

	// Brand queries lead the batch.
	assert.True(t, len(searcher.queries) >= 4)
	assert.Equal(t, "Recent news about Acme business impact reputation damage:", searcher.queries[0])

	// The lookback window is computed from WindowDays.
	expected := time.Now().AddDate(0, 0, -7)
	assert.True(t, searcher.windowStart.Sub(expected) < time.Minute)
}

// TestFindRisksHonorsMaxFindings verifies the aggregation cap configured on
// the service.
func TestFindRisksHonorsMaxFindings(t *testing.T) {
	hits := make([]*model.RawSearchHit, 0, 8)
	for i := 0; i < 8; i++ {
		hit := test.GetTestHit("https://example.com/" + string(rune('a'+i)))
		hits = append(hits, hit)
	}
	searcher := &fakeSearcher{hits: hits}
	svc := &services.RiskService{Searcher: searcher, MaxFindings: 3}

	findings, err := svc.FindRisks(context.Background(), "Acme", test.GetTestSummary())
	assert.NoError(t, err)
	assert.Equal(t, 3, len(findings))
}

// TestFindRisksEmptyResults verifies a batch with no qualifying hits yields
// an empty finding list, not an error.
func TestFindRisksEmptyResults(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := &services.RiskService{Searcher: searcher}

	findings, err := svc.FindRisks(context.Background(), "Acme", test.GetTestSummary())
	assert.NoError(t, err)
	assert.Equal(t, 0, len(findings))
}
