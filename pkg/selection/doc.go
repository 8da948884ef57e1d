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

// Package selection decides which files under a root take part in a run.
//
// 🎯 Two mutually exclusive modes:
//
//   - blacklist: every file except those inside excluded directories, named as
//     excluded files, ending in an excluded extension (case-insensitive),
//     matching an exclude pattern, or ignored by .gitignore when enabled
//   - whitelist: only files inside an included directory (any depth) or named
//     explicitly as included files
//
// 🌲 The walk prunes directories before descending, so excluded trees such as
// node_modules are never read. Paths are returned relative to the root in
// slash form and in lexical order.
//
// 📝 Example:
//
//	filter := selection.New(logger)
//	paths, err := filter.Select(ctx, ".", selection.Rules{
//		Mode:              selection.ModeBlacklist,
//		ExcludeDirs:       []string{"node_modules", ".git"},
//		ExcludeExtensions: []string{".log"},
//	})
package selection
