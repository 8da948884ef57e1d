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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/autocode/pkg/config"
	"github.com/walteh/autocode/pkg/log"
)

func TestFilesOperation(t *testing.T) {
	tests := []struct {
		name   string
		tree   map[string]string
		mutate func(cfg *config.Config)
		want   []string
	}{
		{
			name: "blacklist_defaults",
			tree: map[string]string{"a.py": "a\n", "b.log": "b\n", "node_modules/x.js": "x\n"},
			want: []string{"a.py"},
		},
		{
			name: "whitelist_src",
			tree: map[string]string{"a.py": "a\n", "src/app.py": "b\n", "src/lib/util.py": "c\n"},
			mutate: func(cfg *config.Config) {
				cfg.Selection.Mode = "whitelist"
			},
			want: []string{"src/app.py", "src/lib/util.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.tree)

			cfg := config.Default()
			cfg.Root = root
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			require.NoError(t, cfg.Validate())

			out := &bytes.Buffer{}
			op := NewFilesOperation(Options{Config: cfg, Logger: log.Nop(), Out: out})

			require.NoError(t, op.Execute(context.Background()))
			assert.Equal(t, tt.want, op.Paths())

			want := ""
			for _, p := range tt.want {
				want += p + "\n"
			}
			assert.Equal(t, want, out.String())
		})
	}
}

func TestFilesOperationMissingRoot(t *testing.T) {
	cfg := config.Default()
	cfg.Root = t.TempDir() + "/nope"
	require.NoError(t, cfg.Validate())

	op := NewFilesOperation(Options{Config: cfg, Logger: log.Nop(), Out: &bytes.Buffer{}})
	assert.Error(t, op.Execute(context.Background()))
}
