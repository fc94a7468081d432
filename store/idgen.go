package store

import (
	"sync/atomic"
	"time"
)

// IDGenerator hands out strictly increasing positive ids.
//
// It is seeded from the wall clock so ids rarely repeat across restarts of a
// test process; uniqueness is only guaranteed within one generator. Share one
// generator between all access objects of the same store.
type IDGenerator struct {
	last atomic.Int64
}

// NewIDGenerator creates a generator seeded with the current Unix time in milliseconds.
func NewIDGenerator() *IDGenerator {
	return NewIDGeneratorFrom(time.Now().UnixMilli())
}

// NewIDGeneratorFrom creates a generator whose first id is seed+1.
// Negative seeds are treated as 0.
func NewIDGeneratorFrom(seed int64) *IDGenerator {
	if seed < 0 {
		seed = 0
	}
	g := &IDGenerator{}
	g.last.Store(seed)
	return g
}

// Next returns the next id.
func (g *IDGenerator) Next() int64 {
	return g.last.Add(1)
}
