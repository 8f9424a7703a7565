package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File persists the pair as a single JSON document on disk, the durable
// client-storage analog for CLI and daemon deployments. Writes go through
// a temp file and rename so a crashed write never leaves a half-written
// pair behind.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store backed by the given file path. The parent
// directory must exist; the file itself is created on first Save with
// mode 0600.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("tokenstore: file path required")
	}
	return &File{path: path}, nil
}

// Load implements [Store]. A missing file means no session.
func (f *File) Load(ctx context.Context) (Pair, error) {
	if err := ctx.Err(); err != nil {
		return Pair{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Pair{}, nil
		}
		return Pair{}, fmt.Errorf("tokenstore: read %s: %w", f.path, err)
	}

	var pair Pair
	if err := json.Unmarshal(data, &pair); err != nil {
		// Corrupt state fails closed to "no session" rather than
		// surfacing a decode error to every inspection call.
		return Pair{}, nil
	}
	return pair, nil
}

// Save implements [Store].
func (f *File) Save(ctx context.Context, pair Pair) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("tokenstore: encode pair: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".tokens-*")
	if err != nil {
		return fmt.Errorf("tokenstore: temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("tokenstore: write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("tokenstore: chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("tokenstore: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("tokenstore: rename to %s: %w", f.path, err)
	}
	return nil
}

// Clear implements [Store]. A missing file is already clear.
func (f *File) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: remove %s: %w", f.path, err)
	}
	return nil
}
