package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/futbolrp/transferbot/transferbot/logger"
)

// jsonFile is the shared base for every store: one JSON document per
// concern, written whole-file on every mutation. The mutex is the
// per-store serialization point, so two near-simultaneous commands
// cannot drop each other's writes.
type jsonFile struct {
	path string
	mu   sync.Mutex
}

func newJSONFile(dir, name string) *jsonFile {
	return &jsonFile{path: filepath.Join(dir, name)}
}

func (f *jsonFile) read(v any) error {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		// A corrupt document aborts the triggering command; there is
		// no recovery path for a hand-edited file.
		return fmt.Errorf("failed to decode %s: %w", f.path, err)
	}
	return nil
}

func (f *jsonFile) write(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

// update runs one full read-modify-write cycle under the file lock.
// fn mutates the decoded document in place; a false return skips the
// write-back for read-only paths that still need the lock.
func update[T any](f *jsonFile, empty func() T, fn func(doc T) (bool, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	start := time.Now()
	doc := empty()
	if err := f.read(&doc); err != nil {
		logger.LogStore("read "+filepath.Base(f.path), time.Since(start), err)
		return err
	}

	changed, err := fn(doc)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	err = f.write(doc)
	logger.LogStore("write "+filepath.Base(f.path), time.Since(start), err)
	return err
}

// view is update without the write-back.
func view[T any](f *jsonFile, empty func() T, fn func(doc T) error) error {
	return update(f, empty, func(doc T) (bool, error) {
		return false, fn(doc)
	})
}
