package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"caseodds/models"
)

// withTempFile writes through fn into a temp file next to path. If fn or any
// write fails the temp file is removed and path is left untouched; otherwise
// the temp file is renamed over path.
func withTempFile(path string, fn func(f *os.File) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating directory %s: %v", models.ErrCacheIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file in %s: %v", models.ErrCacheIO, dir, err)
	}

	defer func() {
		if err != nil {
			// Rollback on error
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fn(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", models.ErrCacheIO, tmp.Name(), err)
	}

	// Commit
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", models.ErrCacheIO, path, err)
	}
	return nil
}

// writeJSONFile atomically writes v as 2-space indented JSON
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	return withTempFile(path, func(f *os.File) error {
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("%w: writing %s: %v", models.ErrCacheIO, path, err)
		}
		return nil
	})
}
