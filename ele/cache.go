// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"sync"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/shape"
)

// cacheKey identifies one (element type, polynomial order) pair.
type cacheKey struct {
	t     shape.Type
	order int
}

// Cache is the two-level operator table of spec.md §3/§4.4/§9: built
// lazily on first observation of a (type, order) pair, then read-only
// shared state for the remainder of the run. Owned by the Solver and
// borrowed by every Element's kernels.
type Cache struct {
	mu    sync.Mutex
	ptSet basis.PointSet
	table map[cacheKey]*Operators
}

// NewCache creates an empty operator cache using the given solution-point
// distribution (Legendre or Lobatto, spec.md §6 spts_type_quad).
func NewCache(ptSet basis.PointSet) *Cache {
	return &Cache{ptSet: ptSet, table: make(map[cacheKey]*Operators)}
}

// Get returns the operator bundle for (t, order), building it on first use.
func (o *Cache) Get(t shape.Type, order int) *Operators {
	key := cacheKey{t, order}
	o.mu.Lock()
	defer o.mu.Unlock()
	if ops, ok := o.table[key]; ok {
		return ops
	}
	ops := BuildOperators(t, order, o.ptSet)
	o.table[key] = ops
	return ops
}

// Len returns how many (type,order) pairs have been built so far; mainly
// useful for diagnostics/tests.
func (o *Cache) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.table)
}
