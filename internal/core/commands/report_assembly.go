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

package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brandsentry/go-brand-compliance/internal/core/cor"
	"github.com/brandsentry/go-brand-compliance/internal/core/model"
)

// ReportAssembly folds the outputs of the preceding commands into the
// final ComplianceReport and emits the terminal progress event.
type ReportAssembly struct {
	cor.BaseCommand
}

func NewReportAssembly() *ReportAssembly {
	out := &ReportAssembly{
		BaseCommand: *cor.NewBaseCommand("report-assembly"),
	}
	out.InputParamName = CtxVideoSummary
	out.OutputParamName = CtxReport
	return out
}

func (a *ReportAssembly) Execute(context cor.Context) {
	ctx, span := a.GetTracer().Start(context.GetContext(), a.GetName())
	defer span.End()

	EmitProgress(context, StepCompiling, ProgressCompiling,
		"Compiling compliance report...", nil)

	summary, _ := context.Get(CtxVideoSummary).(*model.VideoSummary)
	technical, _ := context.Get(CtxTechnicalIssues).([]*model.ComplianceIssue)
	contextual, _ := context.Get(CtxContextualRisks).([]*model.ComplianceIssue)

	var elapsed int64
	if start, ok := context.Get(CtxStartTime).(time.Time); ok {
		elapsed = time.Since(start).Milliseconds()
	}

	report := &model.ComplianceReport{
		ID:              uuid.NewString(),
		TechnicalIssues: technical,
		ContextualRisks: contextual,
		VideoSummary:    summary,
		TotalIssues:     len(technical) + len(contextual),
		ProcessingTime:  elapsed,
	}

	context.Add(a.GetOutputParam(), report)
	context.Add(cor.CtxOut, report)
	EmitProgress(context, StepComplete, ProgressComplete,
		fmt.Sprintf("Analysis complete! Found %d total issues.", report.TotalIssues),
		map[string]any{"report": report})
	a.GetSuccessCounter().Add(ctx, 1)
}
