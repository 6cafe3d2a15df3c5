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

// Package cloud provides clients for external services. This file
// implements the client for the Exa neural search API, which the pipeline
// uses to look up recent news and discussion around a brand and its video
// content.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/brandsentry/go-brand-compliance/internal/core/model"
)

// DefaultExaBaseURL is the production endpoint of the Exa search API.
const DefaultExaBaseURL = "https://api.exa.ai"

// ExaSearchClient issues neural search requests against an Exa-compatible
// endpoint. The zero HTTP client falls back to a 30 second timeout.
type ExaSearchClient struct {
	BaseURL         string
	APIKey          string
	ResultsPerQuery int
	HTTPClient      *http.Client
}

// NewExaSearchClient builds a search client from the provider config,
// reading the API key from the configured environment variable lookup.
func NewExaSearchClient(cfg SearchProvider, apiKey string) *ExaSearchClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultExaBaseURL
	}
	resultsPerQuery := cfg.ResultsPerQuery
	if resultsPerQuery <= 0 {
		resultsPerQuery = 3
	}
	timeout := time.Duration(cfg.TimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExaSearchClient{
		BaseURL:         baseURL,
		APIKey:          apiKey,
		ResultsPerQuery: resultsPerQuery,
		HTTPClient:      &http.Client{Timeout: timeout},
	}
}

type exaSearchRequest struct {
	Query              string `json:"query"`
	NumResults         int    `json:"numResults"`
	StartPublishedDate string `json:"startPublishedDate,omitempty"`
	UseAutoprompt      bool   `json:"useAutoprompt"`
}

type exaSearchResponse struct {
	Results []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Text          string `json:"text"`
		PublishedDate string `json:"publishedDate"`
	} `json:"results"`
}

// Search issues a single query, bounded to the configured result count and
// filtered server-side to items published on or after windowStart.
func (c *ExaSearchClient) Search(ctx context.Context, query string, windowStart time.Time) ([]*model.RawSearchHit, error) {
	body, err := json.Marshal(exaSearchRequest{
		Query:              query,
		NumResults:         c.ResultsPerQuery,
		StartPublishedDate: windowStart.UTC().Format("2006-01-02"),
		UseAutoprompt:      false,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("search request for %q failed with status %d: %s", query, resp.StatusCode, payload)
	}

	var parsed exaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hits := make([]*model.RawSearchHit, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		published := r.PublishedDate
		if published == "" {
			published = model.NowISO()
		}
		hits = append(hits, &model.RawSearchHit{
			Title:         r.Title,
			Text:          r.Text,
			URL:           r.URL,
			PublishedDate: published,
		})
	}
	return hits, nil
}

// SearchAll fans the queries out concurrently, one request per query, and
// joins the results. The returned slice preserves query-submission order:
// each goroutine writes into its own index, never an append in completion
// order. A failed query logs a warning and contributes an empty hit list;
// it never aborts its siblings or the batch.
func (c *ExaSearchClient) SearchAll(ctx context.Context, queries []string, windowStart time.Time) []model.QueryHits {
	out := make([]model.QueryHits, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			hits, err := c.Search(ctx, query, windowStart)
			if err != nil {
				slog.WarnContext(ctx, "search query failed", "query", query, "error", err)
				hits = nil
			}
			out[i] = model.QueryHits{Query: query, Hits: hits}
		}(i, query)
	}
	wg.Wait()

	return out
}
