// Package shard maps store keys onto a fixed set of lock stripes.
package shard

import (
	"hash/fnv"
	"sort"
	"sync"
)

// MaxStripes is the upper bound on the number of stripes.
const MaxStripes = 256

// Index computes the stripe a key belongs to.
// With numStripes=1, every key goes to stripe 0.
func Index(key string, numStripes int) int {
	if numStripes <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(numStripes))
}

// Locks is a fixed set of mutexes shared by everyone serializing work on the
// same keys. Two keys may share a stripe; that only costs throughput.
type Locks struct {
	stripes []sync.Mutex
}

// NewLocks creates n stripes, clamped to [1, MaxStripes].
func NewLocks(n int) *Locks {
	if n < 1 {
		n = 1
	}
	if n > MaxStripes {
		n = MaxStripes
	}
	return &Locks{stripes: make([]sync.Mutex, n)}
}

// Len returns the number of stripes.
func (l *Locks) Len() int {
	return len(l.stripes)
}

// Lock acquires the stripes of all given keys and returns the function that
// releases them. Stripes are taken in ascending index order, each at most once,
// so concurrent callers locking overlapping key sets cannot deadlock.
func (l *Locks) Lock(keys ...string) (unlock func()) {
	idx := l.indices(keys)
	for _, i := range idx {
		l.stripes[i].Lock()
	}
	return func() {
		for j := len(idx) - 1; j >= 0; j-- {
			l.stripes[idx[j]].Unlock()
		}
	}
}

func (l *Locks) indices(keys []string) []int {
	seen := make(map[int]struct{}, len(keys))
	idx := make([]int, 0, len(keys))
	for _, k := range keys {
		i := Index(k, len(l.stripes))
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}
