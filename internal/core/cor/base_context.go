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

package cor

import "context"

// BaseContext is the default Context implementation. It is owned by a
// single workflow execution and is not safe for concurrent mutation;
// commands that fan work out must join their goroutines before writing
// results back.
type BaseContext struct {
	data    map[string]any
	errors  map[string]error
	context context.Context
}

// NewBaseContext creates an empty workflow context.
func NewBaseContext() Context {
	return &BaseContext{
		data:   make(map[string]any),
		errors: make(map[string]error),
	}
}

// SetContext sets the underlying Go context. Chains use this to scope each
// command to its own trace span.
func (c *BaseContext) SetContext(ctx context.Context) {
	c.context = ctx
}

// GetContext retrieves the underlying Go context.
func (c *BaseContext) GetContext() context.Context {
	return c.context
}

// Add stores a key-value pair.
func (c *BaseContext) Add(key string, value any) Context {
	c.data[key] = value
	return c
}

// Get retrieves a value by key, or nil when absent.
func (c *BaseContext) Get(key string) any {
	return c.data[key]
}

// Remove deletes a key-value pair.
func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

// AddError records an error keyed by the command that produced it.
func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

// GetErrors returns all recorded errors.
func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

// HasErrors reports whether any error has been recorded.
func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}
