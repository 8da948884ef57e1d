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
package operation

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/config"
	"github.com/walteh/autocode/pkg/instruction"
	"github.com/walteh/autocode/pkg/log"
	"github.com/walteh/autocode/pkg/oracle"
)

// 🔮 fakeClient answers with the scripted replies in order
type fakeClient struct {
	replies []fakeReply
	prompts []oracle.Prompt
}

type fakeReply struct {
	text  string
	usage *oracle.Usage
	err   error
}

func (c *fakeClient) Name() string { return "fake" }
func (c *fakeClient) Ready() error { return nil }

func (c *fakeClient) Complete(ctx context.Context, p oracle.Prompt) (*oracle.Completion, error) {
	c.prompts = append(c.prompts, p)
	r := c.replies[len(c.prompts)-1]
	if r.err != nil {
		return nil, r.err
	}
	completion := &oracle.Completion{Text: r.text}
	if r.usage != nil {
		completion.Usage = *r.usage
		completion.HasUsage = true
	}
	return completion, nil
}

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func testConfig(t *testing.T, root string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Root = root
	require.NoError(t, cfg.Validate())
	return cfg
}

const scriptedResponse = "Here you go.\n\n" +
	"### File: a.py\n```python\nprint('b')\n```\n\n" +
	"### DELETE: old.py\n\n" +
	"### File: b.log\n```\nhacked\n```\n"

func TestTransformOperation(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":   "print('a')\n",
		"old.py": "unused\n",
		"b.log":  "log line\n",
	})

	client := &fakeClient{replies: []fakeReply{{text: scriptedResponse, usage: &oracle.Usage{InputTokens: 1000, OutputTokens: 500}}}}
	console := &bytes.Buffer{}

	op := NewTransformOperation(Options{
		Config:      testConfig(t, root),
		Logger:      log.New(console, false),
		Client:      client,
		Sleep:       noSleep,
		Instruction: instruction.Source{Text: "print b instead of a"},
	})

	require.NoError(t, NewRunner(log.Nop()).Run(context.Background(), op))

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt.User, "print b instead of a")
	assert.Contains(t, prompt.User, "### File: a.py\n```python\nprint('a')\n")
	assert.NotContains(t, prompt.User, "log line", "excluded files should not be sent")
	assert.Equal(t, "gpt-4o-mini", prompt.Model)
	assert.Equal(t, 3000, prompt.MaxTokens)

	assert.Equal(t, "print('b')\n", readFile(t, root, "a.py"))
	assert.Equal(t, "log line\n", readFile(t, root, "b.log"), "unsent file must not be written")
	assert.False(t, exists(root, "old.py"))

	sum := op.Summary()
	assert.Equal(t, 2, sum.Selected)
	assert.Equal(t, 2, sum.Loaded)
	assert.Equal(t, []string{"a.py"}, sum.Modified)
	assert.Equal(t, []string{"old.py"}, sum.Deleted)
	assert.Equal(t, []string{"b.log"}, sum.Skipped)
	assert.Equal(t, 1, sum.Attempts)
	assert.True(t, sum.HasUsage)
	assert.InDelta(t, 0.0075, sum.Cost, 1e-9)

	assert.Contains(t, console.String(), "Estimated cost of this prompt: $")
	assert.Contains(t, console.String(), "run summary")
}

func TestTransformOperationNothingToDo(t *testing.T) {
	tests := []struct {
		name        string
		tree        map[string]string
		instruction string
		wantSel     int
	}{
		{
			name:        "no_files_selected",
			tree:        map[string]string{"only.log": "x\n"},
			instruction: "anything",
			wantSel:     0,
		},
		{
			name:        "no_readable_files",
			tree:        map[string]string{"blob.py": "\xff\xfe\x00"},
			instruction: "anything",
			wantSel:     1,
		},
		{
			name:        "blank_instruction",
			tree:        map[string]string{"a.py": "a\n"},
			instruction: "",
			wantSel:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.tree)
			client := &fakeClient{}

			op := NewTransformOperation(Options{
				Config:      testConfig(t, root),
				Logger:      log.Nop(),
				Client:      client,
				Instruction: instruction.Source{Text: tt.instruction, Stdin: bytes.NewReader(nil), Out: io.Discard},
			})

			require.NoError(t, op.Execute(context.Background()))
			assert.Empty(t, client.prompts, "oracle should not be called")
			assert.Equal(t, tt.wantSel, op.Summary().Selected)
		})
	}
}

func TestTransformOperationRetryExhausted(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "a\n"})

	boom := errors.New("service unavailable")
	client := &fakeClient{replies: []fakeReply{{err: boom}, {err: boom}, {err: boom}}}

	op := NewTransformOperation(Options{
		Config:      testConfig(t, root),
		Logger:      log.Nop(),
		Client:      client,
		Sleep:       noSleep,
		Instruction: instruction.Source{Text: "change"},
	})

	err := op.Execute(context.Background())
	require.Error(t, err)

	var exhausted *oracle.RetryExhaustedError
	require.True(t, errors.As(err, &exhausted), "error should be a RetryExhaustedError")
	assert.Equal(t, 3, exhausted.Attempts)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, client.prompts, 3)
	assert.Equal(t, "a\n", readFile(t, root, "a.py"))
}

func TestTransformOperationMissingCredential(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "a\n"})

	op := NewTransformOperation(Options{
		Config:      testConfig(t, root),
		Logger:      log.Nop(),
		Getenv:      func(string) string { return "" },
		Sleep:       noSleep,
		Instruction: instruction.Source{Text: "change"},
	})

	err := op.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, oracle.ErrMissingCredential)

	var cfgErr *oracle.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "OPENAI_API_KEY", cfgErr.Variable)
}

func TestTransformOperationDryRun(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "print('a')\n", "old.py": "x\n"})

	cfg := testConfig(t, root)
	cfg.DryRun = true

	op := NewTransformOperation(Options{
		Config:      cfg,
		Logger:      log.Nop(),
		Client:      &fakeClient{replies: []fakeReply{{text: scriptedResponse}}},
		Instruction: instruction.Source{Text: "change"},
	})

	require.NoError(t, op.Execute(context.Background()))

	assert.Equal(t, "print('a')\n", readFile(t, root, "a.py"))
	assert.True(t, exists(root, "old.py"))
	assert.True(t, op.Summary().DryRun)
	assert.Equal(t, []string{"a.py"}, op.Summary().Modified)
	assert.False(t, op.Summary().HasUsage)
}
