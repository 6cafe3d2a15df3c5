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

package cloud_test

import (
	"testing"

	"github.com/zeebo/assert"

	"github.com/brandsentry/go-brand-compliance/internal/cloud"
)

// TestTrimCodeFences verifies markdown fences around a model response are
// stripped, with and without a language tag.
func TestTrimCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cloud.TrimCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cloud.TrimCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cloud.TrimCodeFences(`{"a":1}`))
}

// TestExtractJSONObject verifies the extractor finds the first balanced
// object even when the model wraps it in prose, and that braces inside
// string values do not confuse the scan.
func TestExtractJSONObject(t *testing.T) {
	in := `Here is the analysis you asked for:
{"mainTopics": ["a {nested} brace", "b"], "tone": "casual"}
Let me know if you need anything else.`

	out, err := cloud.ExtractJSONObject(in)
	assert.NoError(t, err)
	assert.Equal(t, `{"mainTopics": ["a {nested} brace", "b"], "tone": "casual"}`, out)
}

func TestExtractJSONObjectNested(t *testing.T) {
	in := `{"outer": {"inner": {"deep": true}}}`
	out, err := cloud.ExtractJSONObject(in)
	assert.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestExtractJSONObjectMissing(t *testing.T) {
	_, err := cloud.ExtractJSONObject("no json here")
	assert.Error(t, err)
}

func TestExtractJSONObjectUnbalanced(t *testing.T) {
	_, err := cloud.ExtractJSONObject(`{"a": 1`)
	assert.Error(t, err)
}

// TestExtractJSONArray verifies array extraction through fences and prose,
// including escaped quotes inside string values.
func TestExtractJSONArray(t *testing.T) {
	in := "```json\n[{\"issue\": \"reads \\\"off brand\\\"\"}]\n```"
	out, err := cloud.ExtractJSONArray(in)
	assert.NoError(t, err)
	assert.Equal(t, `[{"issue": "reads \"off brand\""}]`, out)
}
