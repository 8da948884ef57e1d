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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrMissingCredential means the provider needs an API key that is not set
	ErrMissingCredential = errors.New("missing API credential")

	// ErrEmptyResponse means the service answered without any choice or candidate
	ErrEmptyResponse = errors.New("response contained no choices")
)

// 📨 Prompt is one request to a Client
type Prompt struct {
	System      string
	User        string
	Model       string
	Temperature float64
	MaxTokens   int
}

// 🔢 Usage counts tokens billed for a request
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// 📬 Completion is a single successful answer from a Client
type Completion struct {
	Text     string
	Usage    Usage
	HasUsage bool // false when the service reported no token counts
}

// 🔮 Client talks to one code-generation service
type Client interface {
	// Name identifies the provider in logs
	Name() string

	// Ready reports configuration problems that would make every attempt
	// fail, such as a missing API key
	Ready() error

	// Complete performs exactly one attempt
	Complete(ctx context.Context, p Prompt) (*Completion, error)
}

// 📦 Response is the result of a successful Request
type Response struct {
	Text     string
	Usage    Usage
	HasUsage bool
	Attempts int
}

// ⚙️ ConfigError reports a problem that retrying cannot fix
type ConfigError struct {
	Provider string
	Variable string // environment variable that was consulted, if any
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("%s: %v (set %s)", e.Provider, e.Err, e.Variable)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// 🔁 RetryExhaustedError is returned when every attempt failed
type RetryExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("no response after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Last
}
