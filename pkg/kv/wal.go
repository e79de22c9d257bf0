// pkg/kv/wal.go
package kv

import (
	"fmt"
	"sync"

	"github.com/vadiminshakov/gowal"
)

// WalStore keeps the namespace in an append-only log on disk. On open the
// log is replayed into memory; reads are served from memory and writes go
// through to the log. A zero-length value in the log is a tombstone.
type WalStore struct {
	mu   sync.RWMutex
	wal  *gowal.Wal
	data map[string]string
}

// NewWalStore opens (or creates) the log under dir and replays it.
func NewWalStore(dir string) (*WalStore, error) {
	w, err := gowal.NewWAL(gowal.Config{
		Dir:              dir,
		Prefix:           "seg_",
		SegmentThreshold: 1000,
		MaxSegments:      64,
		IsInSyncDiskMode: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open wal store: %w", err)
	}

	s := &WalStore{wal: w, data: make(map[string]string)}
	for m := range w.Iterator() {
		if len(m.Value) == 0 {
			delete(s.data, m.Key)
			continue
		}
		s.data[m.Key] = string(m.Value)
	}
	return s, nil
}

func (s *WalStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *WalStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.wal.Write(s.wal.CurrentIndex()+1, key, []byte(value)); err != nil {
		return fmt.Errorf("failed to append key %q: %w", key, err)
	}
	s.data[key] = value
	return nil
}

func (s *WalStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	if err := s.wal.Write(s.wal.CurrentIndex()+1, key, nil); err != nil {
		return fmt.Errorf("failed to append tombstone for key %q: %w", key, err)
	}
	delete(s.data, key)
	return nil
}

// Close flushes and closes the underlying log.
func (s *WalStore) Close() error {
	return s.wal.Close()
}
