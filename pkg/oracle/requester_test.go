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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/log"
)

// scriptedClient answers each attempt from a script of results
type scriptedClient struct {
	ready   error
	results []result
	prompts []Prompt
}

type result struct {
	completion *Completion
	err        error
}

func (c *scriptedClient) Name() string { return "scripted" }
func (c *scriptedClient) Ready() error { return c.ready }

func (c *scriptedClient) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	c.prompts = append(c.prompts, p)
	if len(c.prompts) > len(c.results) {
		return nil, errors.New("script exhausted")
	}
	r := c.results[len(c.prompts)-1]
	return r.completion, r.err
}

// recordingSleeper records requested waits without sleeping
type recordingSleeper struct {
	waits []time.Duration
}

func (s *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return nil
}

func ok(text string) result {
	return result{completion: &Completion{Text: text, Usage: Usage{InputTokens: 10, OutputTokens: 5}, HasUsage: true}}
}

func fail(msg string) result {
	return result{err: errors.New(msg)}
}

func TestRequester(t *testing.T) {
	unit := 100 * time.Millisecond

	tests := []struct {
		name         string
		maxRetries   int
		client       *scriptedClient
		wantText     string
		wantAttempts int
		wantWaits    []time.Duration
		wantErr      func(t *testing.T, err error)
	}{
		{
			name:         "first_attempt_succeeds",
			maxRetries:   3,
			client:       &scriptedClient{results: []result{ok("done")}},
			wantText:     "done",
			wantAttempts: 1,
			wantWaits:    nil,
		},
		{
			name:         "fail_fail_succeed",
			maxRetries:   3,
			client:       &scriptedClient{results: []result{fail("timeout"), fail("502"), ok("third time")}},
			wantText:     "third time",
			wantAttempts: 3,
			wantWaits:    []time.Duration{2 * unit, 4 * unit},
		},
		{
			name:         "empty_response_is_retried",
			maxRetries:   2,
			client:       &scriptedClient{results: []result{{err: ErrEmptyResponse}, ok("x")}},
			wantText:     "x",
			wantAttempts: 2,
			wantWaits:    []time.Duration{2 * unit},
		},
		{
			name:         "nil_completion_is_retried",
			maxRetries:   2,
			client:       &scriptedClient{results: []result{{}, ok("x")}},
			wantText:     "x",
			wantAttempts: 2,
			wantWaits:    []time.Duration{2 * unit},
		},
		{
			name:       "exhausted",
			maxRetries: 3,
			client:     &scriptedClient{results: []result{fail("one"), fail("two"), fail("three")}},
			wantWaits:  []time.Duration{2 * unit, 4 * unit},
			wantErr: func(t *testing.T, err error) {
				var exhausted *RetryExhaustedError
				require.True(t, errors.As(err, &exhausted), "error should be a RetryExhaustedError")
				assert.Equal(t, 3, exhausted.Attempts)
				assert.Equal(t, "three", exhausted.Last.Error())
			},
		},
		{
			name:       "single_attempt_never_sleeps",
			maxRetries: 1,
			client:     &scriptedClient{results: []result{fail("nope")}},
			wantWaits:  nil,
			wantErr: func(t *testing.T, err error) {
				var exhausted *RetryExhaustedError
				require.True(t, errors.As(err, &exhausted))
				assert.Equal(t, 1, exhausted.Attempts)
			},
		},
		{
			name:       "missing_credential_before_first_attempt",
			maxRetries: 3,
			client: &scriptedClient{
				ready:   &ConfigError{Provider: "openai", Variable: "OPENAI_API_KEY", Err: ErrMissingCredential},
				results: []result{ok("unreachable")},
			},
			wantWaits: nil,
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMissingCredential)
				assert.Contains(t, err.Error(), "OPENAI_API_KEY")
			},
		},
		{
			name:       "config_error_during_attempt_is_not_retried",
			maxRetries: 3,
			client: &scriptedClient{results: []result{
				{err: &ConfigError{Provider: "gemini", Err: errors.New("bad endpoint")}},
				ok("unreachable"),
			}},
			wantWaits: nil,
			wantErr: func(t *testing.T, err error) {
				var cfgErr *ConfigError
				assert.True(t, errors.As(err, &cfgErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sleeper := &recordingSleeper{}
			r := NewRequester(tt.client, log.Nop(), RequesterOptions{
				Model:       "test-model",
				Temperature: 0.2,
				MaxTokens:   3000,
				MaxRetries:  tt.maxRetries,
				BackoffUnit: unit,
				Sleep:       sleeper.sleep,
			})

			resp, err := r.Request(context.Background(), "Rename x", "### File: a.py\n```python\nx = 1\n```\n\n")
			assert.Equal(t, tt.wantWaits, sleeper.waits, "backoff waits should match")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, resp)
				tt.wantErr(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantText, resp.Text)
			assert.Equal(t, tt.wantAttempts, resp.Attempts)
			assert.Equal(t, Usage{InputTokens: 10, OutputTokens: 5}, resp.Usage)
		})
	}
}

func TestRequesterPrompt(t *testing.T) {
	client := &scriptedClient{results: []result{ok("")}}
	r := NewRequester(client, log.Nop(), RequesterOptions{Model: "gpt-4o-mini", Temperature: 0.2, MaxTokens: 3000})

	_, err := r.Request(context.Background(), "Add docstrings", "PAYLOAD")
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)

	p := client.prompts[0]
	assert.Equal(t, "gpt-4o-mini", p.Model)
	assert.InDelta(t, 0.2, p.Temperature, 1e-9)
	assert.Equal(t, 3000, p.MaxTokens)
	assert.Contains(t, p.System, "print the entire file")
	assert.True(t, strings.HasPrefix(p.User, "Add docstrings\n\nHere is the existing codebase:\n\nPAYLOAD"))
}

func TestRequesterSleepCanceled(t *testing.T) {
	client := &scriptedClient{results: []result{fail("one"), ok("two")}}

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRequester(client, log.Nop(), RequesterOptions{
		MaxRetries:  2,
		BackoffUnit: time.Hour,
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return SleepContext(ctx, d)
		},
	})

	_, err := r.Request(ctx, "x", "y")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, client.prompts, 1, "no attempt should follow a canceled wait")
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, SleepContext(context.Background(), 0))
	assert.NoError(t, SleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}

func TestErrorMessages(t *testing.T) {
	cfgErr := &ConfigError{Provider: "openai", Variable: "OPENAI_API_KEY", Err: ErrMissingCredential}
	assert.Equal(t, "openai: missing API credential (set OPENAI_API_KEY)", cfgErr.Error())

	exhausted := &RetryExhaustedError{Attempts: 3, Last: errors.New("status 500")}
	assert.Equal(t, "no response after 3 attempts: status 500", exhausted.Error())
}
