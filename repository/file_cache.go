package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"caseodds/models"
	log "github.com/sirupsen/logrus"
)

// FileCache stores upstream JSON documents on disk and decides whether they
// are fresh enough to reuse.
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileCache creates a cache rooted at dir. Files older than ttl are stale.
func NewFileCache(dir string, ttl time.Duration) *FileCache {
	return &FileCache{
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}
}

// Path returns the on-disk location of a cache entry
func (c *FileCache) Path(name string) string {
	return filepath.Join(c.dir, name)
}

// Age returns how long ago the entry was last written
func (c *FileCache) Age(name string) (time.Duration, error) {
	info, err := os.Stat(c.Path(name))
	if err != nil {
		return 0, err
	}
	return c.now().Sub(info.ModTime()), nil
}

// IsFresh reports whether the entry exists and is no older than the TTL.
// A missing entry is stale, not an error.
func (c *FileCache) IsFresh(name string) (bool, error) {
	age, err := c.Age(name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: checking %s: %v", models.ErrCacheIO, c.Path(name), err)
	}

	fresh := age <= c.ttl
	log.WithFields(log.Fields{
		"file":  c.Path(name),
		"age":   age.Round(time.Second).String(),
		"ttl":   c.ttl.String(),
		"fresh": fresh,
	}).Debug("Checked cache freshness")

	return fresh, nil
}

// Load reads a cache entry
func (c *FileCache) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(c.Path(name))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", models.ErrCacheIO, c.Path(name), err)
	}
	return data, nil
}

// Store pretty-prints raw JSON and atomically replaces the cache entry
func (c *FileCache) Store(name string, raw []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return fmt.Errorf("%w: %s is not valid JSON: %v", models.ErrParseFailed, name, err)
	}
	pretty.WriteByte('\n')

	return writeFile(c.Path(name), pretty.Bytes())
}
