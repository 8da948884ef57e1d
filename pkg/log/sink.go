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

package log

import (
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 📦 Sink is a destination for structured records with a minimum level
type Sink struct {
	Writer io.Writer
	Level  zerolog.Level
}

// 🗂️ FileOptions configures the two append-only log files
type FileOptions struct {
	BasicFile   string // coarse log, info and above
	VerboseFile string // fine log, debug and above
	MaxSizeMB   int    // rotate after this many megabytes
	MaxBackups  int    // rotated files to keep
}

// 🏭 FileSinks opens the basic and verbose log files. Empty paths are skipped.
func FileSinks(opts FileOptions) []Sink {
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 15
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 3
	}

	var sinks []Sink
	if opts.BasicFile != "" {
		sinks = append(sinks, Sink{Writer: rotating(opts.BasicFile, opts), Level: zerolog.InfoLevel})
	}
	if opts.VerboseFile != "" {
		sinks = append(sinks, Sink{Writer: rotating(opts.VerboseFile, opts), Level: zerolog.DebugLevel})
	}
	return sinks
}

func rotating(path string, opts FileOptions) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     28,
	}
}

// levelFilter drops records below min before they reach w
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}
