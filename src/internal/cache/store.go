// Package cache implements the three-tier Artifact Store: a bloom-filter
// membership test in front of a bounded in-memory LRU, backed by an embedded
// on-disk KV store. Grounded on the teacher's internal/cache.CAS (content-
// addressed blob store, sharded-directory layout) generalized into the spec's
// explicit get/put/clear/hit_rate contract over an opaque key->bytes space
// shared by the resolver ("metadata:" keys) and installer ("artifact:" keys).
package cache

import (
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	bolt "go.etcd.io/bbolt"

	"pytoy/src/internal/pkgerrors"
)

const artifactsBucket = "artifacts"

// DefaultMemoryEntries matches the spec's MEMORY_CACHE_ENTRIES default.
const DefaultMemoryEntries = 1000

// Store is the Artifact Store: L0 bloom membership filter, L1 bounded LRU, L2
// bbolt-backed disk store.
type Store struct {
	root string

	mu     sync.RWMutex
	hits   uint64
	misses uint64

	filter *memberFilter
	l1     *lru.Cache[string, []byte]
	db     *bolt.DB
}

// Open builds a Store rooted at dir, creating it if absent. A failure to open
// the L2 disk store is fatal, per the spec's failure-mode contract; a missing or
// unreadable bloom snapshot is not (the filter is rebuilt from the db's keys).
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, pkgerrors.Wrap(err, "create cache dir")
	}

	db, err := bolt.Open(filepath.Join(dir, "artifacts.db"), 0644, nil)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "%v: open artifact store", pkgerrors.ErrCache)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(artifactsBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, pkgerrors.Wrapf(err, "%v: init artifact bucket", pkgerrors.ErrCache)
	}

	l1, err := lru.New[string, []byte](DefaultMemoryEntries)
	if err != nil {
		_ = db.Close()
		return nil, pkgerrors.Wrap(err, "init L1 cache")
	}

	filter := newMemberFilter(filepath.Join(dir, "bloom.bin"))
	if err := filter.loadOrRebuild(db); err != nil {
		_ = db.Close()
		return nil, pkgerrors.Wrap(err, "init L0 membership filter")
	}

	return &Store{root: dir, filter: filter, l1: l1, db: db}, nil
}

// Close releases the L2 store's file handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get consults the membership filter first; a negative is an immediate miss. A
// positive checks L1, then L2; an L2 hit promotes the value into L1.
func (s *Store) Get(key string) ([]byte, bool, error) {
	if !s.filter.test(key) {
		s.recordMiss()
		return nil, false, nil
	}

	if v, ok := s.l1.Get(key); ok {
		s.recordHit()
		return v, true, nil
	}

	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(artifactsBucket))
		v := b.Get([]byte(key))
		if v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, pkgerrors.Wrapf(err, "%v: read %s", pkgerrors.ErrCache, key)
	}
	if value == nil {
		s.recordMiss()
		return nil, false, nil
	}

	s.l1.Add(key, value)
	s.recordHit()
	return value, true, nil
}

// Put inserts key into the membership filter, L1, and L2. An L2 write failure
// surfaces as an error; L1 and the filter may already hold the value (best-
// effort durability, per the spec).
func (s *Store) Put(key string, value []byte) error {
	s.filter.add(key)
	s.l1.Add(key, value)

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(artifactsBucket))
		return b.Put([]byte(key), value)
	})
	if err != nil {
		return pkgerrors.Wrapf(err, "%v: write %s", pkgerrors.ErrCache, key)
	}
	_ = s.filter.persist()
	return nil
}

// Clear resets all three tiers and the hit/miss counters.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.hits, s.misses = 0, 0
	s.mu.Unlock()

	s.l1.Purge()
	s.filter.reset()

	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(artifactsBucket)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(artifactsBucket))
		return err
	})
	if err != nil {
		return pkgerrors.Wrapf(err, "%v: clear artifact store", pkgerrors.ErrCache)
	}
	return nil
}

// HitRate returns hits / (hits + misses), or 0 if there have been no accesses.
func (s *Store) HitRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := s.hits + s.misses
	if total == 0 {
		return 0
	}
	return float64(s.hits) / float64(total)
}

func (s *Store) recordHit() {
	s.mu.Lock()
	s.hits++
	s.mu.Unlock()
}

func (s *Store) recordMiss() {
	s.mu.Lock()
	s.misses++
	s.mu.Unlock()
}
