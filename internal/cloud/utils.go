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

// Package cloud provides clients for external services. This file holds
// the hierarchical TOML configuration loader and the tolerant-parse helpers
// for extracting JSON payloads from generative model responses, which tend
// to arrive wrapped in prose or markdown fences.
package cloud

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Configuration loading constants. The loader reads a base file and then an
// environment-specific override, e.g. configs/.env.toml followed by
// configs/.env.local.toml.
const (
	ConfigFileBaseName  = ".env"
	ConfigFileExtension = ".toml"
	ConfigSeparator     = "."
	EnvConfigFilePrefix = "BRAND_CONFIG_PREFIX" // Env var naming the config directory.
	EnvConfigRuntime    = "BRAND_RUNTIME"       // Env var naming the runtime (local, test, prod).
)

func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig populates baseConfig from the base TOML file and then
// overlays the environment-specific file, so runtime-specific values win.
func LoadConfig(baseConfig interface{}) {
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "local"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		if _, err := toml.DecodeFile(baseConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	if fileExists(envConfigFileName) {
		if _, err := toml.DecodeFile(envConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode environment configuration file: %s with error: %s", envConfigFileName, err)
		}
	}
}

// TrimCodeFences strips a leading ```json (or bare ```) fence and a
// trailing ``` from a model response.
func TrimCodeFences(in string) string {
	out := strings.TrimSpace(in)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}

// ExtractJSONObject returns the first balanced JSON object embedded in the
// input, tolerating surrounding prose. Braces inside JSON strings are
// ignored by tracking string and escape state during the scan.
func ExtractJSONObject(in string) (string, error) {
	return extractBalanced(TrimCodeFences(in), '{', '}')
}

// ExtractJSONArray returns the first balanced JSON array embedded in the
// input, tolerating surrounding prose.
func ExtractJSONArray(in string) (string, error) {
	return extractBalanced(TrimCodeFences(in), '[', ']')
}

func extractBalanced(in string, open byte, close byte) (string, error) {
	start := strings.IndexByte(in, open)
	if start < 0 {
		return "", fmt.Errorf("no %q found in response", string(open))
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(in); i++ {
		ch := in[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return in[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced %q in response", string(open))
}
