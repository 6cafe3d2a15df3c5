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

// Package workflow assembles the compliance analysis pipeline from its
// commands and exposes the two ways of running it: Run returns the final
// report, Stream additionally pushes progress events to the caller as each
// stage executes. Both share one chain, so their behavior cannot drift.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brandsentry/go-brand-compliance/internal/core/commands"
	"github.com/brandsentry/go-brand-compliance/internal/core/cor"
	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"github.com/brandsentry/go-brand-compliance/internal/core/services"
)

// ComplianceWorkflow runs the full brand compliance analysis for a video:
// summarization, technical guideline checks, and the optional sensitive
// topics search, compiled into a single ComplianceReport.
type ComplianceWorkflow struct {
	summarizer services.Summarizer
	checker    services.ComplianceChecker
	finder     services.RiskFinder
}

func NewComplianceWorkflow(
	summarizer services.Summarizer,
	checker services.ComplianceChecker,
	finder services.RiskFinder,
) *ComplianceWorkflow {
	return &ComplianceWorkflow{
		summarizer: summarizer,
		checker:    checker,
		finder:     finder,
	}
}

// Run executes the pipeline and returns the compiled report.
func (w *ComplianceWorkflow) Run(
	ctx context.Context,
	req *model.ComplianceRequest,
	video *model.VideoInput,
) (*model.ComplianceReport, error) {
	return w.run(ctx, req, video, nil)
}

// Stream executes the pipeline, delivering progress events to emit as each
// stage runs. The emitter is called synchronously from the pipeline
// goroutine; a fatal failure produces a terminal event with zero progress
// before the error is returned.
func (w *ComplianceWorkflow) Stream(
	ctx context.Context,
	req *model.ComplianceRequest,
	video *model.VideoInput,
	emit commands.ProgressFunc,
) (*model.ComplianceReport, error) {
	return w.run(ctx, req, video, emit)
}

func (w *ComplianceWorkflow) run(
	ctx context.Context,
	req *model.ComplianceRequest,
	video *model.VideoInput,
	emit commands.ProgressFunc,
) (*model.ComplianceReport, error) {
	chCtx := cor.NewBaseContext()
	chCtx.SetContext(ctx)
	if emit != nil {
		chCtx.Add(commands.CtxProgressEmitter, emit)
	}

	if err := validate(req, video); err != nil {
		return nil, fail(chCtx, err)
	}

	chCtx.Add(commands.CtxComplianceRequest, req)
	chCtx.Add(commands.CtxVideoInput, video)
	chCtx.Add(commands.CtxStartTime, time.Now())

	w.buildChain(req.EnableSensitiveTopicsCheck).Execute(chCtx)

	if chCtx.HasErrors() {
		return nil, fail(chCtx, collectErrors(chCtx))
	}
	report, ok := chCtx.Get(commands.CtxReport).(*model.ComplianceReport)
	if !ok || report == nil {
		return nil, fail(chCtx, errors.New("pipeline finished without producing a report"))
	}
	return report, nil
}

// buildChain sequences the pipeline's commands. The contextual risk stage
// is only present when the request opts in to the sensitive topics check.
func (w *ComplianceWorkflow) buildChain(withSensitiveTopics bool) cor.Chain {
	chain := cor.NewBaseChain("compliance-analysis").
		AddCommand(commands.NewVideoAnalysis(w.summarizer)).
		AddCommand(commands.NewTechnicalCompliance(w.checker))
	if withSensitiveTopics {
		chain.AddCommand(commands.NewContextualRisk(w.finder))
	}
	chain.AddCommand(commands.NewReportAssembly())
	return chain
}

func validate(req *model.ComplianceRequest, video *model.VideoInput) error {
	switch {
	case req == nil:
		return errors.New("compliance request is required")
	case req.BrandGuidelines == "":
		return errors.New("brand guidelines are required")
	case video == nil || (len(video.Data) == 0 && video.FileURI == ""):
		return errors.New("a video source is required")
	default:
		return nil
	}
}

// fail emits the terminal error event and hands the error back for return.
func fail(chCtx cor.Context, err error) error {
	commands.EmitProgress(chCtx, commands.StepError, 0,
		fmt.Sprintf("Analysis failed: %v", err), nil)
	return err
}

func collectErrors(chCtx cor.Context) error {
	errs := make([]error, 0, len(chCtx.GetErrors()))
	for name, err := range chCtx.GetErrors() {
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	return errors.Join(errs...)
}
