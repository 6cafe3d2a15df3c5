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

// Package risk implements the pure logic of the contextual risk analysis:
// query generation, hit scoring, and finding aggregation. Nothing in this
// package performs I/O, which keeps every function deterministic and
// directly testable.
package risk

import "github.com/brandsentry/go-brand-compliance/internal/core/model"

// riskKeywords classifies a hit's risk level. The sets are tested in fixed
// priority order critical, high, medium; the first set with any match wins.
// A hit matching none of them defaults to low.
var riskKeywords = []struct {
	level    model.Severity
	keywords []string
}{
	{
		level: model.SeverityCritical,
		keywords: []string{
			"lawsuit", "boycott", "crisis", "illegal", "fraud", "corruption",
			"criminal", "bankruptcy", "shutdown", "banned", "prosecution",
		},
	},
	{
		level: model.SeverityHigh,
		keywords: []string{
			"backlash", "criticism", "protest", "negative", "accusation",
			"allegation", "investigation", "resignation", "fired",
			"terminated", "recall", "withdrawal",
		},
	},
	{
		level: model.SeverityMedium,
		keywords: []string{
			"concern", "issue", "problem", "debate", "discussion", "question",
			"challenge", "complaint", "review",
		},
	},
}

// businessImpactIndicators filters out "stir" and clickbait content: a hit
// must mention at least one of these terms to become a finding, no matter
// how relevant or severe it otherwise looks.
var businessImpactIndicators = []string{
	"revenue", "sales", "profit", "loss", "stock", "market", "shareholder", "investor",
	"customer", "client", "user", "subscriber", "audience", "viewer", "follower",
	"regulatory", "compliance", "legal", "court", "settlement", "fine", "penalty",
	"partnership", "sponsor", "advertiser", "brand", "reputation", "pr", "public relations",
	"employee", "staff", "workforce", "hiring", "layoff", "termination",
}
