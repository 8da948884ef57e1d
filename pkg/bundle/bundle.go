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

package bundle

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/log"
)

// 📚 Loader reads selected files into a FileSet
type Loader struct {
	logger *log.Logger
}

// 🏭 NewLoader creates a new Loader
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Nop()
	}
	return &Loader{logger: logger}
}

// 📥 Load reads every path (relative to root, slash form) in order.
// Missing, unreadable and non-UTF-8 files are dropped with a logged error.
func (l *Loader) Load(ctx context.Context, root string, paths []string) (*FileSet, error) {
	files := NewFileSet()
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(p)))
		switch {
		case errors.Is(err, os.ErrNotExist):
			l.logger.Errorf("File %s not found.", p)
			continue
		case err != nil:
			l.logger.Errorf("Error reading %s: %v", p, err)
			continue
		case !utf8.Valid(data):
			l.logger.Errorf("File %s is a binary file or contains invalid characters. Skipping.", p)
			continue
		}

		files.Add(p, string(data))
		l.logger.Debugf("Read content from %s", p)
	}
	return files, nil
}

// 🧩 Assemble renders the file set as fenced blocks separated by blank lines:
//
//	### File: <path>
//	```<lang>
//	<content>
//	```
func Assemble(files *FileSet) string {
	var b strings.Builder
	for _, p := range files.Paths() {
		content, _ := files.Get(p)
		b.WriteString("### File: ")
		b.WriteString(p)
		b.WriteString("\n```")
		b.WriteString(Language(p))
		b.WriteString("\n")
		b.WriteString(content)
		b.WriteString("\n```\n\n")
	}
	return b.String()
}
