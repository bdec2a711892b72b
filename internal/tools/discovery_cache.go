package tools

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// CacheFileName is the discovery cache file, relative to the install root.
const CacheFileName = ".uv-path"

// Cache persists the last verified executable path as a single line of text.
// The stored value is a hint: callers always re-verify it before use.
type Cache struct {
	fs   billy.Filesystem
	name string
}

// NewCache returns a cache stored at path on the real filesystem.
func NewCache(path string) *Cache {
	return NewCacheFS(osfs.New(filepath.Dir(path)), filepath.Base(path))
}

// NewCacheFS returns a cache stored as name inside fs.
func NewCacheFS(fs billy.Filesystem, name string) *Cache {
	return &Cache{fs: fs, name: name}
}

// Location returns the cache file path as seen by the backing filesystem.
func (c *Cache) Location() string {
	return c.fs.Join(c.fs.Root(), c.name)
}

// Load returns the cached path. A missing, unreadable or blank file yields
// ok == false.
func (c *Cache) Load() (string, bool) {
	if c == nil {
		return "", false
	}
	data, err := util.ReadFile(c.fs, c.name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", false
	}
	return value, true
}

// Save replaces the cache contents with path.
func (c *Cache) Save(path string) error {
	if err := util.WriteFile(c.fs, c.name, []byte(strings.TrimSpace(path)), 0o644); err != nil {
		return fmt.Errorf("write discovery cache: %w", err)
	}
	return nil
}
