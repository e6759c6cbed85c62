// Package assets handles game asset loading and caching.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
)

// ErrNotFound is returned when an asset or the asset directory is missing.
var ErrNotFound = errors.New("asset not found")

// Manager loads files relative to a resolved asset directory.
type Manager struct {
	dir   string
	fsys  fs.FS
	cache *Cache
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:   dir,
		fsys:  os.DirFS(dir),
		cache: NewCache(),
	}
}

// NewManagerFS creates a manager over an arbitrary file system.
func NewManagerFS(fsys fs.FS) *Manager {
	return &Manager{fsys: fsys, cache: NewCache()}
}

// Dir returns the root directory, or "" for an fs.FS-backed manager.
func (m *Manager) Dir() string {
	return m.dir
}

// Load reads a file. Paths use forward slashes, e.g. "shaders/lighting.frag".
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	data, err := fs.ReadFile(m.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m.cache.Set(path, data)
	return data, nil
}

// LoadText reads a file as a string.
func (m *Manager) LoadText(path string) (string, error) {
	data, err := m.Load(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadImage decodes a PNG, BMP or TGA file. BMP and TGA images get the
// magenta color key applied, since neither usually carries alpha.
func (m *Manager) LoadImage(name string) (image.Image, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}

	var img image.Image
	var format string
	if strings.EqualFold(path.Ext(name), ".tga") {
		img, err = decodeTGA(data)
		format = "tga"
	} else {
		img, format, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	if format == "bmp" || format == "tga" {
		img = applyColorKey(img)
	}
	return img, nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// SourceDirEnv names the development source tree whose assets directory
// is preferred over the one shipped next to the executable.
const SourceDirEnv = "LANTERN_SOURCE_DIR"

// candidates lists asset directories in resolution order.
func candidates(explicit string, getenv func(string) string, executable func() (string, error)) []string {
	if explicit != "" {
		return []string{explicit}
	}
	var dirs []string
	if src := getenv(SourceDirEnv); src != "" {
		dirs = append(dirs, filepath.Join(src, "assets"))
	}
	if exe, err := executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), "assets"))
	}
	return dirs
}

// ResolveDir picks the asset directory: explicit if set, then
// $LANTERN_SOURCE_DIR/assets, then "assets" next to the executable.
// Builds without a file system fall back to a bundled relative path.
func ResolveDir(explicit string) (string, error) {
	dir, err := resolve(candidates(explicit, os.Getenv, os.Executable))
	if err != nil && explicit == "" && bundledDir != "" {
		return bundledDir, nil
	}
	return dir, err
}

func resolve(dirs []string) (string, error) {
	for _, d := range dirs {
		if isDir(d) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: asset directory not found (tried %v)", ErrNotFound, dirs)
}
