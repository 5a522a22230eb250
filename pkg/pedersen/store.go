package pedersen

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/allsmog/dlogproto/pkg/protoerr"
)

// commitmentStore holds received commitments by id, guarded by a single
// mutex. Adapted from the teacher's MemoryStore map-plus-RWMutex idiom,
// narrowed down to the single map this package needs.
type commitmentStore struct {
	mu sync.RWMutex
	c  map[int64][]byte
}

func newCommitmentStore() *commitmentStore {
	return &commitmentStore{c: make(map[int64][]byte)}
}

func (s *commitmentStore) put(id int64, c []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c[id] = c
}

func (s *commitmentStore) get(id int64) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.c[id]
	if !ok {
		return nil, fmt.Errorf("%w: no commitment stored for id %d", protoerr.ErrBadInput, id)
	}
	return c, nil
}

// committerRecord bundles a committer's own (r, x) for a given id so
// GenerateDecommitmentMessage can recover them later.
type committerRecord struct {
	R *big.Int
	X *big.Int
}

type committerStore struct {
	mu sync.RWMutex
	m  map[int64]committerRecord
}

func newCommitterStore() *committerStore {
	return &committerStore{m: make(map[int64]committerRecord)}
}

func (s *committerStore) put(id int64, rec committerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = rec
}

func (s *committerStore) get(id int64) (committerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.m[id]
	if !ok {
		return committerRecord{}, fmt.Errorf("%w: no commitment generated for id %d", protoerr.ErrBadInput, id)
	}
	return rec, nil
}
