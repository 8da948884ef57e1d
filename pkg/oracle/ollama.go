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
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"
	"gitlab.com/tozd/go/errors"
)

// 🦙 OllamaClient talks to a local Ollama server
type OllamaClient struct {
	api *ollama.Client
}

// 🏭 NewOllamaClient creates a client for baseURL, or from OLLAMA_HOST when
// baseURL is empty
func NewOllamaClient(baseURL string, httpClient *http.Client) (*OllamaClient, error) {
	if baseURL == "" {
		client, err := ollama.ClientFromEnvironment()
		if err != nil {
			return nil, errors.Errorf("creating ollama client: %w", err)
		}
		return &OllamaClient{api: client}, nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Errorf("parsing ollama base url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OllamaClient{api: ollama.NewClient(u, httpClient)}, nil
}

func (c *OllamaClient) Name() string { return "Ollama" }

// Ready always succeeds; a local server needs no credential
func (c *OllamaClient) Ready() error { return nil }

// 📤 Complete performs one non-streaming chat
func (c *OllamaClient) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	stream := false
	req := &ollama.ChatRequest{
		Model: p.Model,
		Messages: []ollama.Message{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": p.Temperature,
			"num_predict": p.MaxTokens,
		},
	}

	var (
		text     strings.Builder
		answered bool
		usage    Usage
	)
	err := c.api.Chat(ctx, req, func(resp ollama.ChatResponse) error {
		answered = true
		text.WriteString(resp.Message.Content)
		if resp.Done {
			usage = Usage{InputTokens: resp.PromptEvalCount, OutputTokens: resp.EvalCount}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("ollama chat failed: %w", err)
	}
	if !answered {
		return nil, ErrEmptyResponse
	}

	return &Completion{Text: text.String(), Usage: usage, HasUsage: true}, nil
}
