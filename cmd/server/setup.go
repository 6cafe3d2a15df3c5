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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"github.com/brandsentry/go-brand-compliance/internal/cloud"
	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"github.com/brandsentry/go-brand-compliance/internal/core/services"
	"github.com/brandsentry/go-brand-compliance/internal/core/workflow"
)

// state manages the application's dependencies.
var state = &StateManager{}

// StateManager holds the shared components for the application.
type StateManager struct {
	config   *cloud.Config
	cloud    *cloud.ServiceClients
	pipeline *workflow.ComplianceWorkflow
	uploads  *UploadStore
}

// GetConfig loads the application configuration, layering the runtime
// overlay file over the base .env.toml. A local .env file, when present,
// supplies the API keys the config references by env var name.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("skipping .env file: %v\n", err)
		}
		if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
			if err := os.Setenv(cloud.EnvConfigFilePrefix, "configs"); err != nil {
				log.Fatalf("failed to setup env: %v\n", err)
			}
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState initializes the external clients, the pipeline services, and
// the upload store.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = cloudClients

	summaryService, err := services.NewSummaryService(
		cloudClients.AgentModels["summary"], config.PromptTemplates.SummaryPrompt)
	if err != nil {
		panic(err)
	}
	complianceService, err := services.NewComplianceService(
		cloudClients.AgentModels["compliance"], config.PromptTemplates.CompliancePrompt)
	if err != nil {
		panic(err)
	}
	riskService := &services.RiskService{
		Searcher:    cloudClients.SearchClient,
		WindowDays:  config.Search.WindowDays,
		MaxFindings: config.Search.MaxFindings,
	}

	state.pipeline = workflow.NewComplianceWorkflow(summaryService, complianceService, riskService)
	state.uploads = NewUploadStore(config.Application.ScratchDir)
}

// UploadStore keeps uploaded videos on the local scratch directory, keyed
// by an opaque handle a later compliance request refers to.
type UploadStore struct {
	dir string

	mu      sync.RWMutex
	entries map[string]UploadEntry
}

// UploadEntry records one stored upload.
type UploadEntry struct {
	Path        string
	ContentType string
}

func NewUploadStore(dir string) *UploadStore {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "brand-compliance-uploads")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("failed to create scratch dir %s: %v\n", dir, err)
	}
	return &UploadStore{dir: dir, entries: make(map[string]UploadEntry)}
}

// Put writes the video bytes to the scratch directory under the given
// handle and registers the entry.
func (s *UploadStore) Put(id string, data []byte, contentType string) error {
	path := filepath.Join(s.dir, id)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}
	s.mu.Lock()
	s.entries[id] = UploadEntry{Path: path, ContentType: contentType}
	s.mu.Unlock()
	return nil
}

// Get loads a stored upload back as a resolved video input.
func (s *UploadStore) Get(id string) (*model.VideoInput, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown upload id %q", id)
	}
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %q: %w", id, err)
	}
	return &model.VideoInput{Data: data, MIMEType: entry.ContentType}, nil
}

// resolveVideo turns whichever video source the request carries into the
// input format the pipeline consumes. Exactly one source must be set.
func resolveVideo(req *model.ComplianceRequest) (*model.VideoInput, error) {
	switch {
	case req.VideoDataURI != "":
		return model.NewVideoInputFromDataURI(req.VideoDataURI, req.ContentType)
	case req.VideoURL != "":
		return model.NewVideoInputFromURI(req.VideoURL, req.ContentType), nil
	case req.UploadID != "":
		return state.uploads.Get(req.UploadID)
	default:
		return nil, errors.New("one of videoDataUri, videoUrl, or uploadId is required")
	}
}
