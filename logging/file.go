package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileWriter appends log lines to a file and rotates it by size, keeping maxFiles
// rotated copies next to it.
type FileWriter struct {
	mu          sync.Mutex
	dir         string
	filename    string
	maxSize     int64
	maxFiles    int
	currentFile *os.File
	currentSize int64
	now         func() time.Time
}

// NewFileWriter opens (or creates) dir/filename.
func NewFileWriter(dir, filename string, maxSizeMB, maxFiles int) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}
	fw := &FileWriter{
		dir:      dir,
		filename: filename,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		maxFiles: maxFiles,
		now:      time.Now,
	}
	if err := fw.openFile(); err != nil {
		return nil, err
	}
	return fw, nil
}

// Path is the live log file.
func (fw *FileWriter) Path() string {
	return filepath.Join(fw.dir, fw.filename)
}

func (fw *FileWriter) openFile() error {
	f, err := os.OpenFile(fw.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	fw.currentFile = f
	fw.currentSize = info.Size()
	return nil
}

func (fw *FileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.currentSize > 0 && fw.currentSize+int64(len(p)) > fw.maxSize {
		if err := fw.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := fw.currentFile.Write(p)
	fw.currentSize += int64(n)
	return n, err
}

// Sync satisfies zapcore.WriteSyncer.
func (fw *FileWriter) Sync() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.currentFile.Sync()
}

// rotate must be called with mu held.
func (fw *FileWriter) rotate() error {
	if err := fw.currentFile.Close(); err != nil {
		return fmt.Errorf("close current file: %w", err)
	}
	rotated := fmt.Sprintf("%s.%s", fw.Path(), fw.now().UTC().Format("20060102-150405.000000000"))
	if err := os.Rename(fw.Path(), rotated); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rename log file: %w", err)
	}
	fw.prune()
	return fw.openFile()
}

func (fw *FileWriter) prune() {
	matches, err := filepath.Glob(fw.Path() + ".*")
	if err != nil || len(matches) <= fw.maxFiles {
		return
	}
	// Rotation suffixes are timestamps, so lexical order is age order.
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-fw.maxFiles] {
		_ = os.Remove(path)
	}
}

// Close closes the file writer.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.currentFile != nil {
		return fw.currentFile.Close()
	}
	return nil
}
