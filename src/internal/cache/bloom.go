package cache

import (
	"os"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	bolt "go.etcd.io/bbolt"
)

// estimatedElements and falsePositiveRate match the spec's L0 sizing: ~10,000
// elements at a false-positive rate no worse than 1%.
const (
	estimatedElements = 10000
	falsePositiveRate = 0.01
)

// memberFilter wraps a bloom.BloomFilter with a sync.RWMutex (the filter itself
// isn't safe for concurrent use) and a snapshot path so L0 state survives
// process restarts.
type memberFilter struct {
	path string

	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

func newMemberFilter(path string) *memberFilter {
	return &memberFilter{
		path:   path,
		filter: bloom.NewWithEstimates(estimatedElements, falsePositiveRate),
	}
}

// loadOrRebuild reads the persisted bit-set if present; otherwise it rebuilds
// the filter from the db's existing key set. A corrupt or missing snapshot is
// not an error; only a failure to read the db's keys is returned.
func (m *memberFilter) loadOrRebuild(db *bolt.DB) error {
	f, err := os.Open(m.path)
	if err == nil {
		defer f.Close()
		loaded := bloom.NewWithEstimates(estimatedElements, falsePositiveRate)
		if _, err := loaded.ReadFrom(f); err == nil {
			m.mu.Lock()
			m.filter = loaded
			m.mu.Unlock()
			return nil
		}
	}

	return db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(artifactsBucket))
		if b == nil {
			return nil
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		return b.ForEach(func(k, _ []byte) error {
			m.filter.Add(k)
			return nil
		})
	})
}

func (m *memberFilter) test(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter.Test([]byte(key))
}

func (m *memberFilter) add(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter.Add([]byte(key))
}

func (m *memberFilter) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = bloom.NewWithEstimates(estimatedElements, falsePositiveRate)
	_ = os.Remove(m.path)
}

// persist writes the filter's bit-set to disk. Failures are non-fatal: the
// filter still works in-memory for this process.
func (m *memberFilter) persist() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, err := os.Create(m.path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = m.filter.WriteTo(f)
	return err
}
