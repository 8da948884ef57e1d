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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/log"
	"github.com/walteh/autocode/pkg/relpath"
)

// 📊 FileStatus represents the outcome of an operation on a path
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File did not exist and was written
	StatusModified             // File existed and its content changed
	StatusUnchanged            // File existed with identical content
	StatusDeleted              // File or directory was removed
	StatusSkipped              // Operation was refused or had nothing to act on
	StatusFailed               // Operation was attempted and failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusDeleted:
		return "deleted"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🗂️ Kind describes what, if anything, exists at a path
type Kind int

const (
	KindMissing Kind = iota
	KindFile
	KindDir
	KindOther // sockets, devices and the like
)

// 📄 FileInfo contains metadata about a file operation
type FileInfo struct {
	Path     string     // Relative path to the file
	Status   FileStatus // Outcome
	Action   string     // write or delete
	Detail   string     // Short free-form description
	Size     int64      // Bytes written
	IsDir    bool       // Whether this is a directory
	Checksum string     // Content hash after the operation
	Error    error      // Any error associated with this file
}

// 💾 FileManager handles all file system operations under a root
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	DeleteFile(ctx context.Context, path string) error
	RemoveDir(ctx context.Context, path string) error
	Stat(ctx context.Context, path string) (Kind, error)
}

// 📈 StatusReporter tracks file status and reports progress
type StatusReporter interface {
	TrackFile(ctx context.Context, info FileInfo)
	GetFileInfo(ctx context.Context, path string) (FileInfo, error)
	ListFiles(ctx context.Context) []FileInfo

	StartOperation(ctx context.Context, name string, total int)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

// 🔧 Manager implements both FileManager and StatusReporter
type Manager struct {
	baseDir   string        // Root all relative paths resolve against
	logger    *log.Logger   // Logger for status updates
	formatter FileFormatter // Formatter for status messages

	mu    sync.RWMutex
	files map[string]FileInfo

	operation string
	total     int
	processed int
}

// 🏭 New creates a new status manager rooted at baseDir
func New(baseDir string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Nop()
	}
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// WithFormatter replaces the formatter used for status messages
func (m *Manager) WithFormatter(f FileFormatter) *Manager {
	m.formatter = f
	return m
}

// 🔒 resolve returns the absolute path for a relative path, refusing paths
// that leave the root
func (m *Manager) resolve(path string) (string, error) {
	return relpath.Resolve(m.baseDir, relpath.Normalize(path))
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// FileManager interface implementation

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	absPath, err := m.resolve(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// 💾 WriteFileAtomic writes content to a temp file next to path and renames
// it into place. Parent directories are created and an existing file keeps
// its permissions.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath, err := m.resolve(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func (m *Manager) DeleteFile(ctx context.Context, path string) error {
	absPath, err := m.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	return nil
}

func (m *Manager) RemoveDir(ctx context.Context, path string) error {
	absPath, err := m.resolve(path)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(absPath); err != nil {
		return errors.Errorf("removing directory: %w", err)
	}
	return nil
}

// Stat reports what exists at path without following a final symlink
func (m *Manager) Stat(ctx context.Context, path string) (Kind, error) {
	absPath, err := m.resolve(path)
	if err != nil {
		return KindMissing, err
	}
	info, err := os.Lstat(absPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return KindMissing, nil
	case err != nil:
		return KindMissing, errors.Errorf("checking file existence: %w", err)
	case info.Mode().IsRegular():
		return KindFile, nil
	case info.IsDir():
		return KindDir, nil
	default:
		return KindOther, nil
	}
}

// StatusReporter interface implementation

// 📝 TrackFile records the outcome for a path and echoes it
func (m *Manager) TrackFile(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[info.Path] = info

	m.logger.LogFileOperation(log.FileOperation{
		Path:      info.Path,
		Action:    info.Action,
		Detail:    info.Detail,
		IsNew:     info.Status == StatusNew,
		IsRemoved: info.Status == StatusDeleted,
		IsSkipped: info.Status == StatusSkipped || info.Status == StatusUnchanged,
		Err:       info.Error,
	})

	msg := m.formatter.FormatFileOperation(info)
	if info.Error != nil {
		msg = m.formatter.FormatError(info.Error)
	}
	m.logger.Zerolog().Debug().Str("path", info.Path).Str("status", info.Status.String()).Msg(msg)
}

func (m *Manager) GetFileInfo(ctx context.Context, path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// ListFiles returns every tracked outcome sorted by path
func (m *Manager) ListFiles(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Counts tallies tracked outcomes by status
func (m *Manager) Counts() map[FileStatus]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[FileStatus]int)
	for _, info := range m.files {
		counts[info.Status]++
	}
	return counts
}

func (m *Manager) StartOperation(ctx context.Context, name string, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.operation = name
	m.total = total
	m.processed = 0
	m.logger.Zerolog().Info().Str("operation", name).Int("total", total).Msg(m.formatter.FormatProgress(0, total))
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	m.logger.Zerolog().Debug().
		Str("operation", m.operation).
		Int("processed", processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(processed, m.total))
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Zerolog().Info().
		Str("operation", m.operation).
		Int("processed", m.total).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(m.total, m.total))
}
