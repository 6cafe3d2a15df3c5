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

// Package test provides helpers and sample data for the test suite: a
// cached test configuration, a boilerplate error check, and builders for
// the domain values the pipeline tests exercise.
package test

import (
	"log"
	"os"
	"testing"

	"github.com/brandsentry/go-brand-compliance/internal/cloud"
	"github.com/brandsentry/go-brand-compliance/internal/core/model"
)

// StateManager caches the test configuration so it is loaded once per run.
type StateManager struct {
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the test when err is non-nil. Convenience to cut
// boilerplate in test bodies.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// SetupOS points the configuration loader at the test configuration files
// (configs/.env.toml overlaid with configs/.env.test.toml).
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is the singleton accessor for the test configuration.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// GetTestSummary returns a populated video summary of the kind the
// summarization model produces for a promotional clip.
func GetTestSummary() *model.VideoSummary {
	return &model.VideoSummary{
		MainTopics:        []string{"Product launch", "Sustainability", "Pricing"},
		KeyMessages:       []string{"New product available now", "Eco-friendly packaging"},
		VisualElements:    []string{"Brand logo", "Green color palette"},
		TargetAudience:    "Environmentally conscious consumers",
		ContentTheme:      "promotional",
		ProductsMentioned: []string{"EcoBottle"},
		Tone:              "professional",
		CulturalElements:  []string{"Earth Day"},
	}
}

// GetTestRequest returns a compliance request with an inline video payload.
func GetTestRequest() *model.ComplianceRequest {
	return &model.ComplianceRequest{
		VideoDataURI:               "data:video/mp4;base64,AAAA",
		BrandGuidelines:            "Logo must appear top-right. Primary color #1E40AF.",
		BrandName:                  "Acme",
		EnableSensitiveTopicsCheck: true,
	}
}

// GetTestVideo returns a resolved inline video input.
func GetTestVideo() *model.VideoInput {
	return &model.VideoInput{
		Data:     []byte{0x00, 0x00, 0x00, 0x18},
		MIMEType: "video/mp4",
	}
}

// GetTestHit returns a raw search hit that survives scoring against
// GetTestSummary for the brand "Acme": it mentions a critical keyword, a
// main topic, and a business impact indicator.
func GetTestHit(url string) *model.RawSearchHit {
	return &model.RawSearchHit{
		Title:         "Acme faces lawsuit over product launch claims",
		URL:           url,
		Text:          "The company's revenue took a hit after customers alleged the sustainability claims were misleading.",
		PublishedDate: "2025-06-01T00:00:00.000Z",
	}
}
