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

package workflow_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandsentry/go-brand-compliance/internal/core/commands"
	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"github.com/brandsentry/go-brand-compliance/internal/core/workflow"
	test "github.com/brandsentry/go-brand-compliance/internal/testutil"
)

type fakeSummarizer struct {
	summary *model.VideoSummary
	err     error
}

func (f *fakeSummarizer) Summarize(context.Context, *model.VideoInput) (*model.VideoSummary, error) {
	if f.err != nil {
		return model.FallbackSummary(), f.err
	}
	return f.summary, nil
}

type fakeChecker struct {
	issues []*model.ComplianceIssue
	err    error
}

func (f *fakeChecker) Check(context.Context, *model.VideoInput, string) ([]*model.ComplianceIssue, error) {
	return f.issues, f.err
}

type fakeFinder struct {
	findings []*model.Finding
	err      error
	called   bool
}

func (f *fakeFinder) FindRisks(context.Context, string, *model.VideoSummary) ([]*model.Finding, error) {
	f.called = true
	return f.findings, f.err
}

func technicalIssue() *model.ComplianceIssue {
	return &model.ComplianceIssue{
		Timestamp:    3.2,
		Issue:        "Wrong logo color",
		SuggestedFix: "Use #1E40AF",
		Severity:     model.SeverityHigh,
		Category:     model.CategoryBranding,
	}
}

func riskFinding() *model.Finding {
	return &model.Finding{
		TopicName:      "Acme lawsuit coverage",
		Description:    "Recent litigation news",
		URL:            "https://example.com/lawsuit",
		PublishedDate:  "2025-06-01T00:00:00.000Z",
		RiskLevel:      model.SeverityCritical,
		Recommendation: "Consider reviewing content",
		RelevanceScore: 0.5,
	}
}

// TestRunFullPipeline verifies the report assembled from a healthy run:
// technical issues and contextual risks both present, totals consistent,
// identifiers and timings filled in.
func TestRunFullPipeline(t *testing.T) {
	wf := workflow.NewComplianceWorkflow(
		&fakeSummarizer{summary: test.GetTestSummary()},
		&fakeChecker{issues: []*model.ComplianceIssue{technicalIssue()}},
		&fakeFinder{findings: []*model.Finding{riskFinding()}},
	)

	report, err := wf.Run(context.Background(), test.GetTestRequest(), test.GetTestVideo())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, test.GetTestSummary(), report.VideoSummary)
	assert.Len(t, report.TechnicalIssues, 1)
	assert.Len(t, report.ContextualRisks, 1)
	assert.Equal(t, 2, report.TotalIssues)
	assert.GreaterOrEqual(t, report.ProcessingTime, int64(0))

	risk := report.ContextualRisks[0]
	assert.Equal(t, model.CategoryContextualRisk, risk.Category)
	assert.Equal(t, model.SeverityCritical, risk.Severity)
	assert.Equal(t, "https://example.com/lawsuit", risk.SourceURL)
	assert.Contains(t, risk.Issue, "Contextual Risk: Acme lawsuit coverage")
	assert.Equal(t, float64(0), risk.Timestamp)
}

// TestStreamProgressSequence verifies the progress contract: steps in
// fixed order with non-decreasing percentages, ending at 100.
func TestStreamProgressSequence(t *testing.T) {
	wf := workflow.NewComplianceWorkflow(
		&fakeSummarizer{summary: test.GetTestSummary()},
		&fakeChecker{},
		&fakeFinder{},
	)

	var updates []model.ProgressUpdate
	report, err := wf.Stream(context.Background(), test.GetTestRequest(), test.GetTestVideo(),
		func(u model.ProgressUpdate) { updates = append(updates, u) })
	require.NoError(t, err)
	require.NotNil(t, report)

	steps := make([]string, 0, len(updates))
	last := -1
	for _, u := range updates {
		steps = append(steps, u.Step)
		assert.GreaterOrEqual(t, u.Progress, last, "progress must not decrease")
		last = u.Progress
	}
	assert.Equal(t, []string{
		commands.StepVideoAnalysis,
		commands.StepVideoAnalysis,
		commands.StepTechnicalCompliance,
		commands.StepSensitiveTopics,
		commands.StepSensitiveTopics,
		commands.StepCompiling,
		commands.StepComplete,
	}, steps)
	assert.Equal(t, 100, updates[len(updates)-1].Progress)
	assert.Contains(t, updates[len(updates)-1].Message, "Analysis complete!")
}

// TestQuotaErrorSubstitutesWarning verifies the quota branch of the
// technical compliance stage: one medium technical warning, run continues.
func TestQuotaErrorSubstitutesWarning(t *testing.T) {
	wf := workflow.NewComplianceWorkflow(
		&fakeSummarizer{summary: test.GetTestSummary()},
		&fakeChecker{err: errors.New("429 quota exceeded")},
		&fakeFinder{},
	)

	report, err := wf.Run(context.Background(), test.GetTestRequest(), test.GetTestVideo())
	require.NoError(t, err)

	require.Len(t, report.TechnicalIssues, 1)
	issue := report.TechnicalIssues[0]
	assert.Equal(t, model.SeverityMedium, issue.Severity)
	assert.Equal(t, model.CategoryTechnical, issue.Category)
	assert.True(t, strings.Contains(issue.Issue, "API quota exceeded"))
}

// TestOtherCheckerErrorYieldsNoTechnicalIssues verifies non-quota checker
// failures are swallowed into an empty technical issue list.
func TestOtherCheckerErrorYieldsNoTechnicalIssues(t *testing.T) {
	wf := workflow.NewComplianceWorkflow(
		&fakeSummarizer{summary: test.GetTestSummary()},
		&fakeChecker{err: errors.New("connection reset")},
		&fakeFinder{findings: []*model.Finding{riskFinding()}},
	)

	report, err := wf.Run(context.Background(), test.GetTestRequest(), test.GetTestVideo())
	require.NoError(t, err)

	assert.Empty(t, report.TechnicalIssues)
	assert.Equal(t, 1, report.TotalIssues)
}

// TestSummarizerFailureDegrades verifies a summarization failure swaps in
// the fallback summary, reports the degraded message, and keeps going.
func TestSummarizerFailureDegrades(t *testing.T) {
	wf := workflow.NewComplianceWorkflow(
		&fakeSummarizer{err: errors.New("model unavailable")},
		&fakeChecker{},
		&fakeFinder{},
	)

	var messages []string
	report, err := wf.Stream(context.Background(), test.GetTestRequest(), test.GetTestVideo(),
		func(u model.ProgressUpdate) { messages = append(messages, u.Message) })
	require.NoError(t, err)

	assert.Equal(t, model.FallbackSummary(), report.VideoSummary)
	joined := strings.Join(messages, "\n")
	assert.Contains(t, joined, "limited results due to API constraints")
}

// TestEmptyRiskSearchSynthesizesPlaceholder verifies the contextual risk
// list is never empty once the check ran: no qualifying findings produce
// the low-severity placeholder.
func TestEmptyRiskSearchSynthesizesPlaceholder(t *testing.T) {
	wf := workflow.NewComplianceWorkflow(
		&fakeSummarizer{summary: test.GetTestSummary()},
		&fakeChecker{},
		&fakeFinder{},
	)

	report, err := wf.Run(context.Background(), test.GetTestRequest(), test.GetTestVideo())
	require.NoError(t, err)

	require.Len(t, report.ContextualRisks, 1)
	placeholder := report.ContextualRisks[0]
	assert.Equal(t, model.SeverityLow, placeholder.Severity)
	assert.Equal(t, model.CategoryContextualRisk, placeholder.Category)
	assert.Contains(t, placeholder.Issue, "No high or critical risk")
}

// TestRiskSearchFailureSynthesizesPlaceholder verifies the failure path of
// the sensitive topics stage also degrades to the placeholder.
func TestRiskSearchFailureSynthesizesPlaceholder(t *testing.T) {
	wf := workflow.NewComplianceWorkflow(
		&fakeSummarizer{summary: test.GetTestSummary()},
		&fakeChecker{},
		&fakeFinder{err: errors.New("search provider down")},
	)

	report, err := wf.Run(context.Background(), test.GetTestRequest(), test.GetTestVideo())
	require.NoError(t, err)

	require.Len(t, report.ContextualRisks, 1)
	assert.Equal(t, model.SeverityLow, report.ContextualRisks[0].Severity)
}

// TestSensitiveTopicsDisabled verifies the contextual stage is skipped
// entirely when the request does not opt in.
func TestSensitiveTopicsDisabled(t *testing.T) {
	finder := &fakeFinder{findings: []*model.Finding{riskFinding()}}
	wf := workflow.NewComplianceWorkflow(
		&fakeSummarizer{summary: test.GetTestSummary()},
		&fakeChecker{issues: []*model.ComplianceIssue{technicalIssue()}},
		finder,
	)

	req := test.GetTestRequest()
	req.EnableSensitiveTopicsCheck = false

	var steps []string
	report, err := wf.Stream(context.Background(), req, test.GetTestVideo(),
		func(u model.ProgressUpdate) { steps = append(steps, u.Step) })
	require.NoError(t, err)

	assert.False(t, finder.called)
	assert.Empty(t, report.ContextualRisks)
	assert.Equal(t, 1, report.TotalIssues)
	assert.NotContains(t, steps, commands.StepSensitiveTopics)
}

// TestValidationFailureEmitsErrorEvent verifies invalid input fails fast
// with the terminal error event at zero progress.
func TestValidationFailureEmitsErrorEvent(t *testing.T) {
	wf := workflow.NewComplianceWorkflow(&fakeSummarizer{}, &fakeChecker{}, &fakeFinder{})

	req := test.GetTestRequest()
	req.BrandGuidelines = ""

	var updates []model.ProgressUpdate
	report, err := wf.Stream(context.Background(), req, test.GetTestVideo(),
		func(u model.ProgressUpdate) { updates = append(updates, u) })

	assert.Error(t, err)
	assert.Nil(t, report)
	require.Len(t, updates, 1)
	assert.Equal(t, commands.StepError, updates[0].Step)
	assert.Equal(t, 0, updates[0].Progress)
}

// TestMissingVideoFails verifies a request with no usable video source is
// rejected before any stage runs.
func TestMissingVideoFails(t *testing.T) {
	wf := workflow.NewComplianceWorkflow(&fakeSummarizer{}, &fakeChecker{}, &fakeFinder{})

	report, err := wf.Run(context.Background(), test.GetTestRequest(), &model.VideoInput{})
	assert.Error(t, err)
	assert.Nil(t, report)
}
