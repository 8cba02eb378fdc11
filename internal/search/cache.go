package search

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"

	"github.com/Aman-CERP/docrank/internal/store"
)

// SessionCache keeps fitted sessions keyed by the BLAKE3 hash of the index
// file's bytes plus the scoring options. A rewritten index hashes
// differently, so a stale session is never served.
type SessionCache struct {
	cache *lru.Cache[string, *Session]
}

// NewSessionCache creates a cache holding at most size sessions.
func NewSessionCache(size int) (*SessionCache, error) {
	cache, err := lru.New[string, *Session](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return &SessionCache{cache: cache}, nil
}

// Open returns a cached session for the current content of path, or opens
// and caches a new one.
func (c *SessionCache) Open(path string, opts Options) (*Session, bool, error) {
	opts = opts.withDefaults()

	key, err := cacheKey(path, opts)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Uncacheable; Open reports the missing index.
			s, openErr := Open(path, opts)
			return s, false, openErr
		}
		return nil, false, err
	}

	if s, ok := c.cache.Get(key); ok {
		return s, true, nil
	}

	s, err := Open(path, opts)
	if err != nil {
		return nil, false, err
	}
	c.cache.Add(key, s)
	return s, false, nil
}

// Len returns the number of cached sessions.
func (c *SessionCache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached session.
func (c *SessionCache) Purge() {
	c.cache.Purge()
}

// cacheKey hashes the index file together with everything that changes a
// fitted session.
func cacheKey(path string, opts Options) (string, error) {
	digest, err := HashFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to hash index: %w", err)
	}

	format := opts.Format
	if format == "" || format == store.FormatAuto {
		format = store.DetectFormat(path)
	}

	return digest + "|" + string(format) +
		"|" + strconv.FormatFloat(opts.K1, 'g', -1, 64) +
		"|" + strconv.FormatFloat(opts.B, 'g', -1, 64) +
		"|" + strconv.Itoa(opts.PreviewChars), nil
}

// HashFile returns the hex BLAKE3-256 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
