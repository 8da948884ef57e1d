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
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/log"
	"github.com/walteh/autocode/pkg/protocol"
)

// 💤 Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// 🔧 RequesterOptions configures the retry loop and the prompt parameters
type RequesterOptions struct {
	Model          string
	Temperature    float64
	MaxTokens      int
	MaxRetries     int           // total attempts, at least 1
	BackoffUnit    time.Duration // sleep after failed attempt k is 2^k units
	AttemptTimeout time.Duration // zero means no per-attempt limit
	Sleep          Sleeper       // defaults to SleepContext
}

// 📡 Requester sends one instruction and codebase to a Client, retrying
// failed attempts with exponential backoff
type Requester struct {
	client Client
	opts   RequesterOptions
	logger *log.Logger
}

// 🏭 NewRequester creates a new Requester
func NewRequester(client Client, logger *log.Logger, opts RequesterOptions) *Requester {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.Sleep == nil {
		opts.Sleep = SleepContext
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Requester{client: client, opts: opts, logger: logger}
}

// 📤 Request sends the instruction and rendered codebase.
//
// Attempts run 1..MaxRetries. After failed attempt k, unless it was the
// last, the requester sleeps 2^k × BackoffUnit. A *ConfigError (for example
// ErrMissingCredential) is returned before the first attempt and is never
// retried. When every attempt fails the result is a *RetryExhaustedError.
func (r *Requester) Request(ctx context.Context, instruction, payload string) (*Response, error) {
	if err := r.client.Ready(); err != nil {
		return nil, asConfigError(r.client.Name(), err)
	}

	prompt := Prompt{
		System:      protocol.SystemDirective,
		User:        protocol.BuildUserMessage(instruction, payload),
		Model:       r.opts.Model,
		Temperature: r.opts.Temperature,
		MaxTokens:   r.opts.MaxTokens,
	}

	r.logger.Debugf("Preparing to send the following user message to %s:", r.client.Name())
	r.logger.Debug(prompt.User)

	attempts := r.opts.MaxRetries
	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		r.logger.Infof("Attempting to call %s (Attempt %d/%d)", r.client.Name(), attempt, attempts)

		completion, err := r.attempt(ctx, prompt)
		if err == nil {
			r.logger.Successf("Received response from %s.", r.client.Name())
			r.logger.Debugf("%s response:", r.client.Name())
			r.logger.Debug(completion.Text)
			return &Response{
				Text:     completion.Text,
				Usage:    completion.Usage,
				HasUsage: completion.HasUsage,
				Attempts: attempt,
			}, nil
		}

		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Errorf("requesting %s: %w", r.client.Name(), ctxErr)
		}

		last = err
		r.logger.Errorf("Error during API call: %v", err)

		if attempt == attempts {
			break
		}

		wait := time.Duration(1<<attempt) * r.opts.BackoffUnit
		r.logger.Infof("Waiting for %s before retrying...", wait)
		if err := r.opts.Sleep(ctx, wait); err != nil {
			return nil, errors.Errorf("waiting to retry: %w", err)
		}
	}

	return nil, &RetryExhaustedError{Attempts: attempts, Last: last}
}

func (r *Requester) attempt(ctx context.Context, p Prompt) (*Completion, error) {
	if r.opts.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.AttemptTimeout)
		defer cancel()
	}

	completion, err := r.client.Complete(ctx, p)
	if err != nil {
		return nil, err
	}
	if completion == nil {
		return nil, ErrEmptyResponse
	}
	return completion, nil
}

func asConfigError(provider string, err error) error {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return err
	}
	return &ConfigError{Provider: provider, Err: err}
}
