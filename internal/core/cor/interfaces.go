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

// Package cor (Chain of Responsibility) provides the building blocks for
// workflows: commands as atomic units of work, chains that sequence them,
// and a shared context that carries state, errors, and tracing information
// through a single workflow execution.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the keys a chain uses to pipe data between commands:
// after each command runs, the value it stored under CtxOut becomes the
// next command's CtxIn.
const (
	CtxIn  = "__IN__"
	CtxOut = "__OUT__"
)

// Context is the shared state object passed through a chain of commands.
// It acts as a property bag for a single workflow execution, carrying data,
// errors, and the request-scoped Go context between commands.
type Context interface {
	// SetContext sets the standard Go context, used for cancellation and
	// OpenTelemetry trace propagation.
	SetContext(ctx context.Context)

	// GetContext retrieves the standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair. It returns the Context for chaining.
	Add(key string, value any) Context

	// Get retrieves a value by key, or nil when absent.
	Get(key string) any

	// Remove deletes a key-value pair.
	Remove(key string)

	// AddError records an error produced by a command. The key should be
	// the command's name.
	AddError(key string, err error)

	// GetErrors returns all errors collected during the workflow.
	GetErrors() map[string]error

	// HasErrors reports whether any command has recorded an error.
	HasErrors() bool
}

// Executable is anything with a core execution step that reads its inputs
// from and writes its outputs to a Context.
type Executable interface {
	Execute(context Context)
}

// Command is an atomic, testable unit of work and the fundamental building
// block of a workflow.
type Command interface {
	Executable

	// GetName returns the command's unique name, used for logging and
	// telemetry.
	GetName() string

	// GetInputParam returns the context key this command reads its primary
	// input from.
	GetInputParam() string

	// GetOutputParam returns the context key this command stores its
	// primary output under.
	GetOutputParam() string

	// IsExecutable is the precondition check run before Execute.
	IsExecutable(context Context) bool

	// GetTracer returns the command's OpenTelemetry tracer.
	GetTracer() trace.Tracer

	// GetMeter returns the command's OpenTelemetry meter.
	GetMeter() metric.Meter

	// GetSuccessCounter returns the counter incremented on success.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter returns the counter incremented on failure.
	GetErrorCounter() metric.Int64Counter
}

// Chain is a sequence of commands. A Chain is itself a Command, so chains
// can be nested (composite pattern).
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps executing after
	// a command records an error. The default is to stop.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
