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

// VideoAnalysis runs the summarization model over the input video and
// stores the resulting summary for the downstream commands. Summarization
// failures are absorbed: the summarizer guarantees a usable fallback
// summary, so this command degrades instead of stopping the chain.
type VideoAnalysis struct {
	cor.BaseCommand
	summarizer services.Summarizer
}

func NewVideoAnalysis(summarizer services.Summarizer) *VideoAnalysis {
	out := &VideoAnalysis{
		BaseCommand: *cor.NewBaseCommand("video-analysis"),
		summarizer:  summarizer,
	}
	out.InputParamName = CtxVideoInput
	out.OutputParamName = CtxVideoSummary
	return out
}

func (v *VideoAnalysis) Execute(context cor.Context) {
	ctx, span := v.GetTracer().Start(context.GetContext(), v.GetName())
	defer span.End()

	EmitProgress(context, StepVideoAnalysis, ProgressAnalysisStart,
		"Analyzing video content and extracting key themes...", nil)

	video, _ := context.Get(v.GetInputParam()).(*model.VideoInput)
	summary, err := v.summarizer.Summarize(ctx, video)

	message := "Video analysis complete. Key themes identified."
	if err != nil {
		slog.WarnContext(ctx, "video summarization degraded to fallback", "error", err)
		message = "Video analysis completed with limited results due to API constraints."
	}

	context.Add(v.GetOutputParam(), summary)
	context.Add(cor.CtxOut, summary)
	EmitProgress(context, StepVideoAnalysis, ProgressAnalysisDone, message,
		map[string]any{"videoSummary": summary})
	v.GetSuccessCounter().Add(ctx, 1)
}
