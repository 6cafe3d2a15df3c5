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

// Package commands provides the concrete Command implementations that make
// up the compliance analysis pipeline. This file defines the context keys
// the commands share and the progress-event plumbing: commands push
// ProgressUpdate values to an emitter the workflow planted in the chain
// context, which drives both the streaming and non-streaming entry points
// from the same state machine.
package commands

import (
	"github.com/brandsentry/go-brand-compliance/internal/core/cor"
	"github.com/brandsentry/go-brand-compliance/internal/core/model"
)

// Context keys shared across the pipeline's commands.
const (
	CtxComplianceRequest = "__compliance_request__"
	CtxVideoInput        = "__video_input__"
	CtxVideoSummary      = "__video_summary__"
	CtxTechnicalIssues   = "__technical_issues__"
	CtxContextualRisks   = "__contextual_risks__"
	CtxStartTime         = "__start_time__"
	CtxReport            = "__compliance_report__"
	CtxProgressEmitter   = "__progress_emitter__"
)

// Pipeline step names and their progress percentages. Progress is
// monotonically non-decreasing within a run; the terminal error event is
// the one exception and reports zero.
const (
	StepVideoAnalysis       = "video-analysis"
	StepTechnicalCompliance = "technical-compliance"
	StepSensitiveTopics     = "sensitive-topics"
	StepCompiling           = "compiling"
	StepComplete            = "complete"
	StepError               = "error"

	ProgressAnalysisStart   = 20
	ProgressAnalysisDone    = 40
	ProgressComplianceDone  = 60
	ProgressRiskSearchStart = 70
	ProgressRiskSearchDone  = 90
	ProgressCompiling       = 95
	ProgressComplete        = 100
)

// ProgressFunc consumes progress events as a pipeline run executes.
type ProgressFunc func(update model.ProgressUpdate)

// EmitProgress sends a progress event to the emitter registered in the
// chain context. A run without an emitter (the non-streaming entry point)
// is a silent no-op.
func EmitProgress(c cor.Context, step string, progress int, message string, partial any) {
	emit, ok := c.Get(CtxProgressEmitter).(ProgressFunc)
	if !ok || emit == nil {
		return
	}
	emit(model.ProgressUpdate{
		Step:           step,
		Progress:       progress,
		Message:        message,
		PartialResults: partial,
	})
}

// requestFrom pulls the typed compliance request out of the chain context.
func requestFrom(c cor.Context, key string) *model.ComplianceRequest {
	req, _ := c.Get(key).(*model.ComplianceRequest)
	return req
}
