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
package opts

import (
	"io"

	"github.com/walteh/autocode/pkg/config"
	"github.com/walteh/autocode/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flags
	ConfigFile      string
	Root            string
	Mode            string
	Debug           bool
	Provider        string
	Model           string
	MaxRetries      int
	MaxTokens       int
	Temperature     float64
	Instruction     string
	InstructionSet  bool // --instruction was passed, even if blank
	InstructionFile string
	DryRun          bool

	// Streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Getenv looks up credentials after .env has been loaded
	Getenv func(string) string

	// Set up before any command runs
	Config     *config.Config
	ConfigPath string // empty when running on defaults
	Logger     *log.Logger
}
