package index

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mandex/mandex/internal/errors"
)

// schemaVersion tags cache keys with the on-disk format version. Bumping it
// invalidates all prior entries as a miss instead of a misread.
const schemaVersion = "v1"

// memCacheSize bounds the in-process index cache. A session rarely touches
// more than one manual, so a handful of slots is plenty.
const memCacheSize = 8

// FileCache persists built indexes in a directory, one JSON file per
// distinct source-text content hash. A small LRU layer keeps parsed
// indexes in memory so repeated Ensure calls in one process skip disk.
type FileCache struct {
	dir string
	mem *lru.Cache[string, *Index]
}

// NewFileCache creates a cache rooted at dir. The directory is created
// lazily on the first store.
func NewFileCache(dir string) *FileCache {
	mem, _ := lru.New[string, *Index](memCacheSize)
	return &FileCache{
		dir: dir,
		mem: mem,
	}
}

// Key derives the cache key for source text: the hex SHA-256 of the full
// content joined with the schema version tag.
func (c *FileCache) Key(source string) string {
	hash := sha256.Sum256([]byte(source))
	return hex.EncodeToString(hash[:]) + "-" + schemaVersion
}

// entryPath returns the cache file path for a key.
func (c *FileCache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Load looks up a persisted index for the source text. A missing file and
// a corrupt one are both reported as a miss, never as a hard failure.
func (c *FileCache) Load(source string) (*Index, bool) {
	key := c.Key(source)

	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("cache_corrupt",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, false
	}
	for _, e := range entries {
		if e.Mnemonic == "" || e.Page < 1 {
			slog.Warn("cache_corrupt", slog.String("key", key), slog.String("error", "invalid entry"))
			return nil, false
		}
	}

	return New(entries), true
}

// Store serializes the index under the source text's key using an atomic
// temp-file-and-rename write, so a crash never corrupts a previously valid
// entry. Returns a CacheWriteFailed error on failure; callers continue with
// the in-memory index.
func (c *FileCache) Store(source string, ix *Index) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeCacheWriteFailed, err)
	}

	lock := newBuildLock(c.dir)
	acquired, err := lock.TryLock()
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheWriteFailed, err)
	}
	if !acquired {
		// Another process is storing the same deterministic content.
		return nil
	}
	defer func() { _ = lock.Unlock() }()

	data, err := json.MarshalIndent(ix.Entries(), "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheWriteFailed, err)
	}

	path := c.entryPath(c.Key(source))
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeCacheWriteFailed, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeCacheWriteFailed, err)
	}

	return nil
}

// Ensure returns the index for the source text at path, building it on a
// cache miss or when force is set. A failed cache write degrades to
// rebuild-every-time with a warning; only SourceUnavailable aborts.
func (c *FileCache) Ensure(b *Builder, path string, force bool) (*Index, error) {
	source, err := ReadSource(path)
	if err != nil {
		return nil, err
	}

	key := c.Key(source)
	if !force {
		if ix, ok := c.mem.Get(key); ok {
			return ix, nil
		}
		if ix, ok := c.Load(source); ok {
			c.mem.Add(key, ix)
			return ix, nil
		}
	}

	ix := b.Build(source)
	if err := c.Store(source, ix); err != nil {
		slog.Warn("cache_write_failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	c.mem.Add(key, ix)

	slog.Debug("index_built",
		slog.String("key", key),
		slog.Int("entries", ix.Len()),
		slog.Bool("forced", force))
	return ix, nil
}
