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
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
	genai "google.golang.org/genai"
)

// ♊ GeminiClient is a thin wrapper around the official genai client.
// The underlying client is built on first use so a missing key surfaces
// through Ready instead of the constructor.
type GeminiClient struct {
	apiKey  string
	keyEnv  string
	baseURL string

	once sync.Once
	cli  *genai.Client
	err  error
}

// 🏭 NewGeminiClient creates a client. baseURL overrides the API endpoint.
func NewGeminiClient(apiKey, keyEnv, baseURL string) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, keyEnv: keyEnv, baseURL: baseURL}
}

func (g *GeminiClient) Name() string { return "Gemini API" }

func (g *GeminiClient) Ready() error {
	if g.apiKey == "" {
		return &ConfigError{Provider: "gemini", Variable: g.keyEnv, Err: ErrMissingCredential}
	}
	return nil
}

func (g *GeminiClient) client(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		cfg := &genai.ClientConfig{APIKey: g.apiKey, Backend: genai.BackendGeminiAPI}
		if g.baseURL != "" {
			cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
		}
		g.cli, g.err = genai.NewClient(ctx, cfg)
	})
	return g.cli, g.err
}

// 📤 Complete performs one GenerateContent call
func (g *GeminiClient) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	cli, err := g.client(ctx)
	if err != nil {
		return nil, &ConfigError{Provider: "gemini", Err: err}
	}

	temperature := float32(p.Temperature)
	resp, err := cli.Models.GenerateContent(ctx, p.Model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: p.User}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: p.System}}},
			Temperature:       &temperature,
			MaxOutputTokens:   int32(p.MaxTokens),
		},
	)
	if err != nil {
		return nil, errors.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	completion := &Completion{Text: text.String()}
	if md := resp.UsageMetadata; md != nil {
		completion.HasUsage = true
		completion.Usage = Usage{
			InputTokens:  int(md.PromptTokenCount),
			OutputTokens: int(md.CandidatesTokenCount),
		}
	}
	return completion, nil
}
