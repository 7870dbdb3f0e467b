//
// Copyright 2023 The Tsroll Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stream

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/tsroll/tsroll/misc"
)

// Registry is a bounded, name-keyed collection of Metrics with LRU
// eviction, so that an embedding application tracking many metrics
// keeps its memory bounded. Eviction drops a metric's in-memory data;
// a later GetOrCreate under the same name starts it over empty.
//
// Unlike the rest of the engine the Registry is safe for concurrent
// use, since it is the natural sharing point between an ingestion
// loop and a reporting loop.
type Registry struct {
	sync.Mutex
	cache     *lru.Cache
	hits      int
	misses    int
	evictions int
}

// NewRegistry returns a Registry holding at most cap metrics.
func NewRegistry(cap int) (*Registry, error) {
	r := &Registry{}
	c, err := lru.NewWithEvict(cap, func(key, value interface{}) {
		r.evictions++
	})
	if err != nil {
		return nil, err
	}
	r.cache = c
	return r, nil
}

// GetOrCreate returns the metric registered under name, creating it
// with the given tags if it is not present. Tags are only applied on
// creation.
func (r *Registry) GetOrCreate(name string, tags ...Tag) *Metric {
	r.Lock()
	defer r.Unlock()

	name = misc.SanitizeName(name)
	if v, ok := r.cache.Get(name); ok {
		r.hits++
		return v.(*Metric)
	}
	r.misses++
	m := NewMetric(name, tags...)
	r.cache.Add(name, m)
	return m
}

// Get returns the metric registered under name, if present.
func (r *Registry) Get(name string) (*Metric, bool) {
	r.Lock()
	defer r.Unlock()

	v, ok := r.cache.Get(misc.SanitizeName(name))
	if !ok {
		r.misses++
		return nil, false
	}
	r.hits++
	return v.(*Metric), true
}

// Len returns the number of metrics currently held.
func (r *Registry) Len() int {
	r.Lock()
	defer r.Unlock()
	return r.cache.Len()
}

// Stats returns cumulative hit, miss and eviction counts.
func (r *Registry) Stats() (hits, misses, evictions int) {
	r.Lock()
	defer r.Unlock()
	return r.hits, r.misses, r.evictions
}
