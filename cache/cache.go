// Package cache implements an optional, content-addressed on-disk cache of
// lowered output, keyed by the SHA-256 digest of the source bytes. A
// schema-versioned payload is serialized with msgpack and written under a
// cache directory named by the caller.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// schema is bumped whenever Entry's encoded shape changes, so stale
// on-disk entries from a previous build are ignored rather than
// misinterpreted.
const schema uint16 = 1

// Entry is the on-disk payload: the digest it was computed for (redundant
// with the filename, but kept so a renamed or copied cache file is still
// self-describing) and the printed output bytes.
type Entry struct {
	Schema uint16
	Digest string
	Output []byte
}

// Digest returns the hex-encoded SHA-256 digest of src, used both as the
// cache key and as Entry.Digest.
func Digest(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// Cache reads and writes Entry values under dir, one file per digest.
type Cache struct {
	dir string
}

// Open returns a Cache rooted at dir. dir is created on first Put, not
// eagerly, so a --cache-dir flag that is never exercised (every input
// misses once and the run fails before any Put) leaves no directory behind.
func Open(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) path(digest string) string {
	return filepath.Join(c.dir, digest+".cache")
}

// Get looks up digest. A miss, including a missing file, a schema
// mismatch, or a corrupt payload, returns ok == false and a nil error;
// the cache is an optimization, and any failure to use it is always safe to
// treat as a miss and fall through to the normal pipeline.
func (c *Cache) Get(digest string) (output []byte, ok bool, err error) {
	raw, err := os.ReadFile(c.path(digest))
	if err != nil {
		return nil, false, nil
	}
	var e Entry
	if err := msgpack.Unmarshal(raw, &e); err != nil {
		return nil, false, nil
	}
	if e.Schema != schema || e.Digest != digest {
		return nil, false, nil
	}
	return e.Output, true, nil
}

// Put writes output under digest, creating the cache directory if needed.
func (c *Cache) Put(digest string, output []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return errors.Wrap(err, "cache: create cache dir")
	}
	raw, err := msgpack.Marshal(&Entry{Schema: schema, Digest: digest, Output: output})
	if err != nil {
		return errors.Wrap(err, "cache: encode entry")
	}
	if err := os.WriteFile(c.path(digest), raw, 0o644); err != nil {
		return errors.Wrap(err, "cache: write entry")
	}
	return nil
}
