// Package cache is an in-process result cache for document-processing
// responses. Entries are keyed by file identity (path, mtime, size) plus a
// canonical serialization of the request parameters, evicted
// least-recently-used, expired by TTL, and invalidated lazily when the
// underlying file changes.
package cache

import (
	"container/list"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/tessio/llm-pdf-reader/internal/common"
	"github.com/tessio/llm-pdf-reader/models"
)

// Fingerprint identifies one version of a file by modification time and
// byte size.
type Fingerprint struct {
	ModTime time.Time
	Size    int64
}

// Stat reads the fingerprint of a file on disk.
func Stat(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, &models.ResourceError{Path: path, Op: "stat", Err: err}
	}
	return Fingerprint{ModTime: info.ModTime(), Size: info.Size()}, nil
}

// Key identifies a cached result: which file version was processed, by which
// operation, with which parameters. Key computation is pure; params must
// already be in canonical (sorted) form, as produced by
// models.RequestOptions.CanonicalParams.
type Key struct {
	Path       string
	ModTime    time.Time
	Size       int64
	Operation  string
	ParamsHash string
}

// NewKey builds a key from a file fingerprint and canonical parameters.
func NewKey(path string, fp Fingerprint, operation string, params []string) Key {
	return Key{
		Path:       path,
		ModTime:    fp.ModTime,
		Size:       fp.Size,
		Operation:  operation,
		ParamsHash: common.ContentHash([]byte(strings.Join(params, "\n"))),
	}
}

// slot is the map key: everything except the fingerprint, so that a new
// version of the same file lands on the old entry and replaces it rather
// than leaking a stale sibling.
func (k Key) slot() string {
	return common.ContentHash([]byte(k.Path + "\x00" + k.Operation + "\x00" + k.ParamsHash))
}

// Stats are monotonically accumulated counters since cache creation.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Evictions   int64 `json:"evictions"`
	CurrentSize int   `json:"current_size"`
}

type entry struct {
	key        Key
	payload    *models.DocumentResult
	createdAt  time.Time
	lastAccess time.Time
	elem       *list.Element
}

// Cache is safe for concurrent use. All recency updates and eviction
// decisions happen under one mutex, so two concurrent inserts can never
// double-evict or leave the cache over capacity.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	entries    map[string]*entry
	order      *list.List // front = most recently used
	now        func() time.Time
	stats      Stats
}

// New creates a cache holding at most maxEntries entries, each valid for at
// most ttl after creation.
func New(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[string]*entry),
		order:      list.New(),
		now:        time.Now,
	}
}

// Get returns the stored payload for key and refreshes its recency, but only
// if the entry exists, is within TTL, and the key's fingerprint still
// matches the one captured at store time. Any mismatch is a plain miss; the
// stale entry is removed on the spot. Get never returns an error.
func (c *Cache) Get(key Key) (*models.DocumentResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.slot()]
	if !ok {
		c.stats.Misses++
		return nil, false
	}

	now := c.now()
	if now.Sub(e.createdAt) > c.ttl {
		c.remove(e)
		c.stats.Misses++
		return nil, false
	}
	if !e.key.ModTime.Equal(key.ModTime) || e.key.Size != key.Size {
		// The file changed since the result was stored.
		c.remove(e)
		c.stats.Misses++
		return nil, false
	}

	e.lastAccess = now
	c.order.MoveToFront(e.elem)
	c.stats.Hits++
	return e.payload, true
}

// Put inserts or overwrites the entry for key. Capacity pressure never makes
// Put fail: the least-recently-used entries are evicted until the new entry
// fits. Only an invalid payload is an error, reported as a CacheWriteError.
func (c *Cache) Put(key Key, payload *models.DocumentResult) error {
	if payload == nil {
		return &models.CacheWriteError{Msg: "nil payload"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if e, ok := c.entries[key.slot()]; ok {
		e.key = key
		e.payload = payload
		e.createdAt = now
		e.lastAccess = now
		c.order.MoveToFront(e.elem)
		return nil
	}

	for c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	e := &entry{key: key, payload: payload, createdAt: now, lastAccess: now}
	e.elem = c.order.PushFront(e)
	c.entries[key.slot()] = e
	return nil
}

// Stats returns a snapshot of the counters. Read-only, no side effects.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.CurrentSize = len(c.entries)
	return s
}

// Clear removes all entries. Counters are kept; they accumulate for the
// lifetime of the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.order.Init()
}

// evictOldest drops the back of the recency list. Entries that have never
// been re-accessed keep insertion order there, so ties on access time fall
// back to earliest creation.
func (c *Cache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.remove(elem.Value.(*entry))
	c.stats.Evictions++
}

func (c *Cache) remove(e *entry) {
	c.order.Remove(e.elem)
	delete(c.entries, e.key.slot())
}
