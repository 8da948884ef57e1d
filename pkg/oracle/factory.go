// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package oracle

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/config"
)

// 🔑 key variables consulted per provider, first non-empty wins
var keyVariables = map[string][]string{
	config.ProviderOpenAI: {"OPENAI_API_KEY"},
	config.ProviderGemini: {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// 🏭 New builds the Client for cfg.Provider. getenv defaults to os.Getenv.
// A missing key is not an error here; it surfaces from Client.Ready.
func New(ctx context.Context, cfg config.OracleArgs, getenv func(string) string) (Client, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	key, keyEnv := lookupKey(cfg, getenv)
	zerolog.Ctx(ctx).Debug().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Str("key_env", keyEnv).
		Bool("key_set", key != "").
		Msg("creating oracle client")

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAIClient(key, keyEnv, cfg.BaseURL, http.DefaultClient), nil
	case config.ProviderOllama:
		return NewOllamaClient(cfg.BaseURL, http.DefaultClient)
	case config.ProviderGemini:
		return NewGeminiClient(key, keyEnv, cfg.BaseURL), nil
	default:
		return nil, &ConfigError{Provider: cfg.Provider, Err: errors.New("unknown provider")}
	}
}

// 🔧 OptionsFromConfig maps validated oracle settings onto RequesterOptions
func OptionsFromConfig(cfg config.OracleArgs) RequesterOptions {
	return RequesterOptions{
		Model:          cfg.Model,
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		MaxRetries:     cfg.MaxRetries,
		BackoffUnit:    cfg.Backoff(),
		AttemptTimeout: cfg.AttemptTimeout(),
	}
}

func lookupKey(cfg config.OracleArgs, getenv func(string) string) (string, string) {
	if cfg.APIKeyEnv != "" {
		return getenv(cfg.APIKeyEnv), cfg.APIKeyEnv
	}
	vars := keyVariables[cfg.Provider]
	for _, v := range vars {
		if key := getenv(v); key != "" {
			return key, v
		}
	}
	if len(vars) > 0 {
		return "", vars[0]
	}
	return "", ""
}
