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
	"strings"

	"github.com/brandsentry/go-brand-compliance/internal/core/cor"
	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"github.com/brandsentry/go-brand-compliance/internal/core/services"
)

// TechnicalCompliance checks the video against the brand guidelines.
// Failures never stop the chain: a quota error substitutes the quota
// warning issue, anything else substitutes an empty issue list.
type TechnicalCompliance struct {
	cor.BaseCommand
	checker services.ComplianceChecker
}

func NewTechnicalCompliance(checker services.ComplianceChecker) *TechnicalCompliance {
	out := &TechnicalCompliance{
		BaseCommand: *cor.NewBaseCommand("technical-compliance"),
		checker:     checker,
	}
	out.InputParamName = CtxVideoInput
	out.OutputParamName = CtxTechnicalIssues
	return out
}

func (t *TechnicalCompliance) Execute(context cor.Context) {
	ctx, span := t.GetTracer().Start(context.GetContext(), t.GetName())
	defer span.End()

	req := requestFrom(context, CtxComplianceRequest)
	video, _ := context.Get(t.GetInputParam()).(*model.VideoInput)

	issues, err := t.checker.Check(ctx, video, req.BrandGuidelines)
	message := "Technical compliance check complete."
	if err != nil {
		t.GetErrorCounter().Add(ctx, 1)
		if strings.Contains(err.Error(), "quota") {
			slog.WarnContext(ctx, "compliance check hit model quota", "error", err)
			issues = model.QuotaFallbackIssues()
			message = "Technical compliance check completed with limited results due to API quota."
		} else {
			slog.WarnContext(ctx, "compliance check failed, continuing without technical issues", "error", err)
			issues = []*model.ComplianceIssue{}
			message = "Technical compliance check completed with limited results."
		}
	} else {
		t.GetSuccessCounter().Add(ctx, 1)
	}

	context.Add(t.GetOutputParam(), issues)
	context.Add(cor.CtxOut, issues)
	EmitProgress(context, StepTechnicalCompliance, ProgressComplianceDone, message,
		map[string]any{"technicalIssues": issues})
}
