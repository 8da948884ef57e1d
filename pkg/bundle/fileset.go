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

// 📦 FileSet is an ordered mapping of relative path to file content.
// Iteration follows insertion order; re-adding a path replaces its content
// in place.
type FileSet struct {
	order   []string
	content map[string]string
}

// 🏭 NewFileSet creates an empty FileSet
func NewFileSet() *FileSet {
	return &FileSet{content: map[string]string{}}
}

// Add stores content for path
func (s *FileSet) Add(path, content string) {
	if _, ok := s.content[path]; !ok {
		s.order = append(s.order, path)
	}
	s.content[path] = content
}

// Get returns the content for path
func (s *FileSet) Get(path string) (string, bool) {
	c, ok := s.content[path]
	return c, ok
}

// Has reports whether path is part of the set
func (s *FileSet) Has(path string) bool {
	_, ok := s.content[path]
	return ok
}

// Paths returns the paths in insertion order
func (s *FileSet) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of files
func (s *FileSet) Len() int {
	return len(s.order)
}

// Bytes returns the total content size
func (s *FileSet) Bytes() int {
	n := 0
	for _, c := range s.content {
		n += len(c)
	}
	return n
}
