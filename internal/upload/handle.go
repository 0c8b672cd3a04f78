// Package upload defines the video handle and the uploader collaborator
// that reports progress to the wizard.
package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// DefaultMaxSize is the largest accepted video, in bytes.
const DefaultMaxSize int64 = 100 * 1024 * 1024

// AcceptedExtensions lists the video containers the uploader takes.
var AcceptedExtensions = []string{".mp4", ".mov", ".avi", ".webm"}

var (
	ErrUnsupportedFormat = errors.New("unsupported video format")
	ErrTooLarge          = errors.New("video exceeds size limit")
	ErrNotAFile          = errors.New("not a regular file")
)

// Handle is an open reference to a selected video. It must be released
// explicitly once the video is discarded.
type Handle struct {
	ID   string
	Name string
	Path string
	Size int64

	mu   sync.Mutex
	file *os.File
}

// Open validates and opens a video file. maxSize <= 0 means DefaultMaxSize.
func Open(path string, maxSize int64) (*Handle, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	name := filepath.Base(path)
	if !accepted(filepath.Ext(name)) {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, name, strings.Join(AcceptedExtensions, ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening video: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("inspecting video: %w", err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, name)
	}
	if info.Size() > maxSize {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %.1f MB > %.0f MB", ErrTooLarge, megabytes(info.Size()), megabytes(maxSize))
	}

	return &Handle{
		ID:   newID(name),
		Name: name,
		Path: path,
		Size: info.Size(),
		file: f,
	}, nil
}

// newID builds "<slug-of-stem>-<8 hex>" so ids stay readable in logs.
func newID(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	s := slug.Make(stem)
	if s == "" {
		s = "video"
	}
	return s + "-" + uuid.NewString()[:8]
}

func accepted(ext string) bool {
	ext = strings.ToLower(ext)
	for _, a := range AcceptedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

func megabytes(n int64) float64 {
	return float64(n) / (1024 * 1024)
}

// SizeMB returns the size formatted the way the upload list shows it.
func (h *Handle) SizeMB() string {
	return fmt.Sprintf("%.1f MB", megabytes(h.Size))
}

// Released reports whether Release has been called.
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.file == nil
}

// Release closes the underlying file. Calling it more than once is a no-op.
func (h *Handle) Release() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}
