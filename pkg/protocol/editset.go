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

// ✏️ EditSet maps a normalized path to its full replacement content.
// The last edit for a path wins but keeps the position of the first.
type EditSet struct {
	order   []string
	content map[string]string
}

// 🏭 NewEditSet creates an empty EditSet
func NewEditSet() *EditSet {
	return &EditSet{content: map[string]string{}}
}

// Put records content for path, replacing any earlier edit
func (e *EditSet) Put(path, content string) {
	if _, ok := e.content[path]; !ok {
		e.order = append(e.order, path)
	}
	e.content[path] = content
}

// Get returns the replacement content for path
func (e *EditSet) Get(path string) (string, bool) {
	c, ok := e.content[path]
	return c, ok
}

// Paths returns the edited paths in first-seen order
func (e *EditSet) Paths() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Len returns the number of edited paths
func (e *EditSet) Len() int {
	return len(e.order)
}

// 🗑️ DeleteSet is a deduplicated, insertion-ordered set of paths to remove
type DeleteSet struct {
	order []string
	seen  map[string]bool
}

// 🏭 NewDeleteSet creates an empty DeleteSet
func NewDeleteSet() *DeleteSet {
	return &DeleteSet{seen: map[string]bool{}}
}

// Add records path; repeats are ignored
func (d *DeleteSet) Add(path string) {
	if d.seen[path] {
		return
	}
	d.seen[path] = true
	d.order = append(d.order, path)
}

// Has reports whether path is marked for deletion
func (d *DeleteSet) Has(path string) bool {
	return d.seen[path]
}

// Paths returns the paths in first-seen order
func (d *DeleteSet) Paths() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of paths
func (d *DeleteSet) Len() int {
	return len(d.order)
}
