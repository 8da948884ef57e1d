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
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/cmd/autocode/opts"
	"github.com/walteh/autocode/pkg/log"
	"github.com/walteh/autocode/pkg/oracle"
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code: 0 on success,
// including runs that end early with nothing to do, 1 otherwise
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o := &opts.RootOpts{Stdin: stdin, Stdout: stdout, Stderr: stderr}

	cmd := newRootCmd(o)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)

	logger := o.Logger
	if logger == nil {
		logger = log.New(stderr, false)
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			fmt.Fprintf(stderr, "closing log files: %v\n", cerr)
		}
	}()

	if err != nil {
		logger.Critical(err, headline(err))
		return 1
	}
	return 0
}

// headline summarizes err in one line for the console
func headline(err error) string {
	var exhausted *oracle.RetryExhaustedError
	var cfgErr *oracle.ConfigError
	switch {
	case errors.As(err, &exhausted):
		return fmt.Sprintf("Failed to get a response after %d attempts.", exhausted.Attempts)
	case errors.Is(err, oracle.ErrMissingCredential):
		return "Missing API credential."
	case errors.As(err, &cfgErr):
		return "Invalid oracle configuration."
	default:
		return "Command failed."
	}
}
