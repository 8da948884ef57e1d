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
// Package instruction reads the free-text change request for a run.
package instruction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"
)

// PromptText is shown before reading interactively from a terminal
const PromptText = "Enter your instructions for code changes. When done, press Enter on an empty line:"

// StdinPath names standard input when given as an instruction file
const StdinPath = "-"

// 📝 Source says where the instruction comes from. Text wins when TextSet
// or non-empty, then File; otherwise Stdin is read interactively.
type Source struct {
	Text    string    // literal instruction
	TextSet bool      // Text was given explicitly, even if blank
	File    string    // path to read, "-" for all of Stdin
	Stdin   io.Reader // defaults to os.Stdin
	Out     io.Writer // receives the prompt, defaults to os.Stdout
}

// 📥 Read returns the instruction with surrounding whitespace trimmed.
// An empty result is not an error; callers decide what nothing means.
func Read(ctx context.Context, src Source) (string, error) {
	if src.Stdin == nil {
		src.Stdin = os.Stdin
	}
	if src.Out == nil {
		src.Out = os.Stdout
	}

	switch {
	case src.TextSet || strings.TrimSpace(src.Text) != "":
		return strings.TrimSpace(src.Text), nil
	case src.File == StdinPath:
		data, err := io.ReadAll(src.Stdin)
		if err != nil {
			return "", errors.Errorf("reading instruction from stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case src.File != "":
		data, err := os.ReadFile(src.File)
		if err != nil {
			return "", errors.Errorf("reading instruction file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if isTerminal(src.Stdin) {
		fmt.Fprintln(src.Out, PromptText)
	}
	return readLines(ctx, src.Stdin)
}

// readLines collects lines until the first blank one or EOF
func readLines(ctx context.Context, r io.Reader) (string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Errorf("reading instruction: %w", err)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
