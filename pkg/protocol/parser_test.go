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
	"testing"

	"github.com/stretchr/testify/assert"
)

type parsed struct {
	edits   map[string]string
	order   []string
	deletes []string
}

func flatten(e *EditSet, d *DeleteSet) parsed {
	p := parsed{edits: map[string]string{}, order: e.Paths(), deletes: d.Paths()}
	for _, path := range e.Paths() {
		p.edits[path], _ = e.Get(path)
	}
	return p
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantEdits   map[string]string
		wantOrder   []string
		wantDeletes []string
	}{
		{
			name:        "empty_response",
			response:    "",
			wantEdits:   map[string]string{},
			wantDeletes: []string{},
		},
		{
			name:        "prose_only",
			response:    "I could not find anything to change.",
			wantEdits:   map[string]string{},
			wantDeletes: []string{},
		},
		{
			name:        "single_edit",
			response:    "Here you go:\n\n### File: a.py\n```python\nprint(1)\n```\n",
			wantEdits:   map[string]string{"a.py": "print(1)\n"},
			wantOrder:   []string{"a.py"},
			wantDeletes: []string{},
		},
		{
			name:        "edit_without_language_tag",
			response:    "### File: Makefile\n```\nall:\n\techo hi\n```",
			wantEdits:   map[string]string{"Makefile": "all:\n\techo hi\n"},
			wantOrder:   []string{"Makefile"},
			wantDeletes: []string{},
		},
		{
			name:        "content_trailing_newline_not_duplicated",
			response:    "### File: a.py\n```python\nx = 1\n\n```\n",
			wantEdits:   map[string]string{"a.py": "x = 1\n"},
			wantOrder:   []string{"a.py"},
			wantDeletes: []string{},
		},
		{
			name:        "empty_content",
			response:    "### File: empty.txt\n```\n```\n",
			wantEdits:   map[string]string{"empty.txt": "\n"},
			wantOrder:   []string{"empty.txt"},
			wantDeletes: []string{},
		},
		{
			name: "edits_and_deletes",
			response: "### DELETE: old/legacy.py\n" +
				"### File: src/app.py\n```python\nimport os\n```\n\n" +
				"### DELETE: ./tmp/\n" +
				"### File: src/util.py\n```python\ndef f(): pass\n```\n",
			wantEdits: map[string]string{
				"src/app.py":  "import os\n",
				"src/util.py": "def f(): pass\n",
			},
			wantOrder:   []string{"src/app.py", "src/util.py"},
			wantDeletes: []string{"old/legacy.py", "tmp"},
		},
		{
			name: "last_match_wins",
			response: "### File: a.py\n```python\nfirst\n```\n" +
				"### File: b.py\n```python\nb\n```\n" +
				"### File: ./a.py\n```python\nsecond\n```\n",
			wantEdits:   map[string]string{"a.py": "second\n", "b.py": "b\n"},
			wantOrder:   []string{"a.py", "b.py"},
			wantDeletes: []string{},
		},
		{
			name:        "deletes_deduplicated",
			response:    "### DELETE: x.py\n### DELETE: ./x.py\n### DELETE: y.py\n### DELETE: x.py\n",
			wantEdits:   map[string]string{},
			wantDeletes: []string{"x.py", "y.py"},
		},
		{
			name:        "delete_inside_edit_block_is_content",
			response:    "### File: README.md\n```markdown\nTo remove a file write:\n### DELETE: secret.txt\n```\n",
			wantEdits:   map[string]string{"README.md": "To remove a file write:\n### DELETE: secret.txt\n"},
			wantOrder:   []string{"README.md"},
			wantDeletes: []string{},
		},
		{
			name:        "header_without_fence_is_skipped",
			response:    "### File: a.py\nno fence here\n### File: b.py\n```\nb\n```\n",
			wantEdits:   map[string]string{"b.py": "b\n"},
			wantOrder:   []string{"b.py"},
			wantDeletes: []string{},
		},
		{
			name:        "unterminated_block_is_skipped",
			response:    "### File: a.py\n```python\nnever closed\n### DELETE: c.py\n",
			wantEdits:   map[string]string{},
			wantDeletes: []string{"c.py"},
		},
		{
			name:        "fence_with_invalid_tag_is_skipped",
			response:    "### File: a.py\n```c++\nint x;\n```\n",
			wantEdits:   map[string]string{},
			wantDeletes: []string{},
		},
		{
			name:        "closing_fence_with_trailing_space",
			response:    "### File: a.go\r\n```go\r\npackage a\r\n```   \r\n",
			wantEdits:   map[string]string{"a.go": "package a\n"},
			wantOrder:   []string{"a.go"},
			wantDeletes: []string{},
		},
		{
			name:        "windows_paths_normalized",
			response:    "### File: src\\lib\\a.py\n```\nx\n```\n### DELETE:  .\\build\\out.bin \n",
			wantEdits:   map[string]string{"src/lib/a.py": "x\n"},
			wantOrder:   []string{"src/lib/a.py"},
			wantDeletes: []string{"build/out.bin"},
		},
		{
			name:        "empty_and_root_paths_ignored",
			response:    "### DELETE: \n### DELETE: .\n### File: ./\n```\nx\n```\n",
			wantEdits:   map[string]string{},
			wantDeletes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flatten(Parse(tt.response))

			assert.Equal(t, tt.wantEdits, got.edits, "edits should match")
			if tt.wantOrder == nil {
				tt.wantOrder = []string{}
			}
			assert.Equal(t, tt.wantOrder, got.order, "edit order should match")
			assert.Equal(t, tt.wantDeletes, got.deletes, "deletes should match")
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	response := "### File: a.py\n```python\nx\n```\n### DELETE: b.py\n### File: a.py\n```\ny\n```\n"

	first := flatten(Parse(response))
	second := flatten(Parse(response))
	assert.Equal(t, first, second)
}

func TestParseRoundTrip(t *testing.T) {
	bodies := []string{
		"single line",
		"already terminated\n",
		"multi\nline\n\ncontent",
		"  indented\n\ttabbed\n",
		"### not a header because it is inside",
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			response := "### File: dir/file.txt\n```text\n" + body + "\n```\n"

			edits, deletes := Parse(response)
			got, ok := edits.Get("dir/file.txt")

			assert.True(t, ok)
			assert.Equal(t, EnsureTrailingNewline(body), got)
			assert.Equal(t, 0, deletes.Len())
		})
	}
}

func TestEnsureTrailingNewline(t *testing.T) {
	assert.Equal(t, "a\n", EnsureTrailingNewline("a"))
	assert.Equal(t, "a\n", EnsureTrailingNewline("a\n"))
	assert.Equal(t, "a\n\n", EnsureTrailingNewline("a\n\n"))
	assert.Equal(t, "\n", EnsureTrailingNewline(""))
}
