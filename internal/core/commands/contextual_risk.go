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
	"log/slog"

	"github.com/brandsentry/go-brand-compliance/internal/core/cor"
	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"github.com/brandsentry/go-brand-compliance/internal/core/services"
)

// ContextualRisk searches recent coverage for sensitive topics tied to the
// brand and the themes found during video analysis. The workflow only adds
// this command when the request opts in. Search failures degrade to the
// "no risks found" placeholder rather than failing the run: the placeholder
// keeps the report section present so a consumer can tell the check ran.
type ContextualRisk struct {
	cor.BaseCommand
	finder services.RiskFinder
}

func NewContextualRisk(finder services.RiskFinder) *ContextualRisk {
	out := &ContextualRisk{
		BaseCommand: *cor.NewBaseCommand("contextual-risk"),
		finder:      finder,
	}
	out.InputParamName = CtxVideoSummary
	out.OutputParamName = CtxContextualRisks
	return out
}

func (r *ContextualRisk) Execute(context cor.Context) {
	ctx, span := r.GetTracer().Start(context.GetContext(), r.GetName())
	defer span.End()

	EmitProgress(context, StepSensitiveTopics, ProgressRiskSearchStart,
		"Searching for sensitive topics and recent news coverage...", nil)

	req := requestFrom(context, CtxComplianceRequest)
	summary, _ := context.Get(r.GetInputParam()).(*model.VideoSummary)

	message := "Sensitive topics check complete."
	findings, err := r.finder.FindRisks(ctx, req.BrandName, summary)
	if err != nil {
		r.GetErrorCounter().Add(ctx, 1)
		slog.WarnContext(ctx, "sensitive topics search degraded", "error", err)
		findings = nil
		message = "Sensitive topics check completed with limited results."
	} else {
		r.GetSuccessCounter().Add(ctx, 1)
	}

	risks := model.FindingsToIssues(findings)
	if len(risks) == 0 {
		risks = []*model.ComplianceIssue{model.NoRiskPlaceholder()}
	}

	context.Add(r.GetOutputParam(), risks)
	context.Add(cor.CtxOut, risks)
	EmitProgress(context, StepSensitiveTopics, ProgressRiskSearchDone, message,
		map[string]any{"contextualRisks": risks})
}
