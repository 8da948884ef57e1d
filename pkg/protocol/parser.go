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

package protocol

import (
	"strings"

	"github.com/walteh/autocode/pkg/relpath"
)

// 🧭 NormalizePath canonicalizes a path named by the oracle
func NormalizePath(p string) string {
	return relpath.Normalize(p)
}

// 🔍 Parse extracts edit blocks and delete directives from a response.
//
// An edit block is a "### File: <path>" line, an opening fence on the very
// next line (three backticks and an optional word tag), then content up to
// the first line that is exactly three backticks. Lines inside a block are
// never scanned again, so a "### DELETE:" inside file content is just text.
// A header without a valid block is skipped and scanning resumes on the line
// after it. Parse never fails; unrecognized text is ignored.
func Parse(text string) (*EditSet, *DeleteSet) {
	edits := NewEditSet()
	deletes := NewDeleteSet()

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		switch {
		case strings.HasPrefix(line, fileHeader):
			closing, content, ok := readBlock(lines, i+1)
			if !ok {
				continue
			}
			if p := NormalizePath(line[len(fileHeader):]); p != "" {
				edits.Put(p, content)
			}
			i = closing

		case strings.HasPrefix(line, deleteHeader):
			if p := NormalizePath(line[len(deleteHeader):]); p != "" {
				deletes.Add(p)
			}
		}
	}

	return edits, deletes
}

// readBlock reads a fenced block whose opening fence is lines[open]. It
// returns the index of the closing fence and the content with a single
// trailing newline enforced.
func readBlock(lines []string, open int) (int, string, bool) {
	if open >= len(lines) || !isOpeningFence(lines[open]) {
		return 0, "", false
	}
	for j := open + 1; j < len(lines); j++ {
		if strings.TrimRight(lines[j], " \t\r") != fence {
			continue
		}
		return j, EnsureTrailingNewline(strings.Join(lines[open+1:j], "\n")), true
	}
	return 0, "", false
}

func isOpeningFence(line string) bool {
	line = strings.TrimRight(line, " \t\r")
	if !strings.HasPrefix(line, fence) {
		return false
	}
	for _, r := range line[len(fence):] {
		if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// 📏 EnsureTrailingNewline appends "\n" unless content already ends with one
func EnsureTrailingNewline(content string) string {
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
