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
	"path"
	"strings"
)

var languages = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".tsx":   "tsx",
	".scss":  "scss",
	".css":   "css",
	".html":  "html",
	".jsx":   "jsx",
	".json":  "json",
	".md":    "markdown",
	".go":    "go",
	".sh":    "bash",
	".bash":  "bash",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".hcl":   "hcl",
	".tf":    "hcl",
	".rb":    "ruby",
	".rs":    "rust",
	".java":  "java",
	".kt":    "kotlin",
	".swift": "swift",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".php":   "php",
	".sql":   "sql",
	".xml":   "xml",
	".vue":   "vue",
	".proto": "protobuf",
}

// 🏷️ Language returns the fence tag for path's extension, or "" if unknown.
// Matching is case-insensitive and only the last extension counts.
func Language(p string) string {
	return languages[strings.ToLower(path.Ext(p))]
}
