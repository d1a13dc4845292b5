// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package randomx

import (
	"container/list"
	"sync"
)

// EpochCache holds at most `bound` derived RandomX key states, evicting the
// least recently used entry once a new one is requested beyond that bound.
// The resource model calls for a bound of 2 (current and previous epoch):
// construction is blocking and, in fast mode, allocates the full RandomX
// dataset (on the order of 2 GB), so normal epoch rollover should only pay
// that cost once per epoch, not once per verified header.
type EpochCache struct {
	mu       sync.Mutex
	bound    int
	fastMode bool
	ll       *list.List // front = most recently used
	items    map[int64]*list.Element
	seed     []byte // RandomXSeedPrefix, threaded through to SeedHash
}

type epochCacheEntry struct {
	epoch   int64
	cache   *Cache
	dataset *Dataset // nil unless fast mode
}

// NewEpochCache returns a light-mode EpochCache bounded to at most `bound`
// entries. Light mode derives only the RandomX cache per epoch; hashing is
// slower but memory stays in the tens of megabytes.
func NewEpochCache(bound int, seedPrefix []byte) *EpochCache {
	return newEpochCache(bound, seedPrefix, false)
}

// NewFastEpochCache returns an EpochCache that additionally derives the
// full RandomX dataset for every epoch it holds, trading roughly 2 GB of
// memory per entry for mining-grade hash throughput. Constrained
// environments should stay with NewEpochCache.
func NewFastEpochCache(bound int, seedPrefix []byte) *EpochCache {
	return newEpochCache(bound, seedPrefix, true)
}

func newEpochCache(bound int, seedPrefix []byte, fastMode bool) *EpochCache {
	if bound < 1 {
		bound = 1
	}
	return &EpochCache{
		bound:    bound,
		fastMode: fastMode,
		ll:       list.New(),
		items:    make(map[int64]*list.Element),
		seed:     seedPrefix,
	}
}

// Get returns the RandomX Cache for the given epoch, constructing it via
// NewCache/SeedHash on a miss. The returned Cache must not be closed by the
// caller: EpochCache owns its lifetime and closes evicted entries itself.
func (ec *EpochCache) Get(epoch int64) (*Cache, error) {
	entry, err := ec.get(epoch)
	if err != nil {
		return nil, err
	}
	return entry.cache, nil
}

// NewVM constructs a RandomX VM keyed for the given epoch, backed by the
// epoch's cached key state (and, in fast mode, its dataset). The caller
// owns the VM and must Close it; the underlying cache/dataset stay owned by
// the EpochCache.
func (ec *EpochCache) NewVM(epoch int64) (*VM, error) {
	entry, err := ec.get(epoch)
	if err != nil {
		return nil, err
	}
	return NewVM(entry.cache, entry.dataset)
}

func (ec *EpochCache) get(epoch int64) (*epochCacheEntry, error) {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	if elem, ok := ec.items[epoch]; ok {
		ec.ll.MoveToFront(elem)
		return elem.Value.(*epochCacheEntry), nil
	}

	seed := SeedHash(epoch, ec.seed)
	log.Debugf("Deriving RandomX cache for epoch %d (seed %v)", epoch, seed)
	cache, err := NewCache(seed[:])
	if err != nil {
		return nil, err
	}

	entry := &epochCacheEntry{epoch: epoch, cache: cache}
	if ec.fastMode {
		dataset, err := NewDataset(cache)
		if err != nil {
			cache.Close()
			return nil, err
		}
		entry.dataset = dataset
	}

	elem := ec.ll.PushFront(entry)
	ec.items[epoch] = elem

	for ec.ll.Len() > ec.bound {
		oldest := ec.ll.Back()
		if oldest == nil {
			break
		}
		evicted := oldest.Value.(*epochCacheEntry)
		ec.ll.Remove(oldest)
		delete(ec.items, evicted.epoch)
		if evicted.dataset != nil {
			evicted.dataset.Close()
		}
		evicted.cache.Close()
		log.Debugf("Evicted RandomX cache for epoch %d", evicted.epoch)
	}

	return entry, nil
}

// Len returns the number of cache entries currently held.
func (ec *EpochCache) Len() int {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.ll.Len()
}
