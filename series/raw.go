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

package series

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
)

// ErrOutOfOrder is returned by Push/PushSample when the timestamp
// precedes the last element already in the series. Out-of-order data
// would corrupt the binary search and the windowing scan, so it is
// rejected outright rather than re-sorted.
var ErrOutOfOrder = errors.New("timestamp precedes last element in series")

// RawSeries is an append-only buffer of timestamped samples in
// non-decreasing timestamp order. It grows only by append; there is
// no deletion or compaction (retention is the embedder's concern).
//
// A RawSeries is not safe for concurrent use. It must be owned by a
// single logical accumulator, or the embedding application must
// provide its own synchronization.
type RawSeries struct {
	elements []Element
}

// NewRawSeries returns a new empty raw series.
func NewRawSeries() *RawSeries {
	return &RawSeries{}
}

// Push appends a real observed value. The timestamp must be at or
// after the last element's timestamp, otherwise ErrOutOfOrder.
func (s *RawSeries) Push(ts TimeStamp, value float64) error {
	return s.PushSample(ts, Point(value))
}

// PushSample appends a sample of any kind. The timestamp must be at
// or after the last element's timestamp, otherwise ErrOutOfOrder.
// Note that equal timestamps are accepted but their windowing
// behavior is unspecified; producers should avoid them.
func (s *RawSeries) PushSample(ts TimeStamp, smp Sample) error {
	if n := len(s.elements); n > 0 && ts < s.elements[n-1].TS {
		return fmt.Errorf("push at %v: %w", ts, ErrOutOfOrder)
	}
	s.elements = append(s.elements, Element{TS: ts, Sample: smp})
	return nil
}

// Len returns the number of elements in the series.
func (s *RawSeries) Len() int { return len(s.elements) }

// IsEmpty returns true if the series has no elements.
func (s *RawSeries) IsEmpty() bool { return len(s.elements) == 0 }

// Get returns the element at the given index.
func (s *RawSeries) Get(index int) (Element, bool) {
	if index < 0 || index >= len(s.elements) {
		return Element{}, false
	}
	return s.elements[index], true
}

// LastVal returns the value of the last element, or 0 if the series
// is empty.
func (s *RawSeries) LastVal() float64 {
	if len(s.elements) == 0 {
		return 0
	}
	return s.elements[len(s.elements)-1].Sample.Val()
}

// LastTS returns the timestamp of the last element, or false if the
// series is empty.
func (s *RawSeries) LastTS() (TimeStamp, bool) {
	if len(s.elements) == 0 {
		return 0, false
	}
	return s.elements[len(s.elements)-1].TS, true
}

// AtOrAfter returns the first element with a timestamp at or after
// ts, or false if ts is past the last element. O(log n).
func (s *RawSeries) AtOrAfter(ts TimeStamp) (Element, bool) {
	i := sort.Search(len(s.elements), func(i int) bool {
		return s.elements[i].TS >= ts
	})
	if i == len(s.elements) {
		return Element{}, false
	}
	return s.elements[i], true
}

// Windows returns an iterator over epoch-aligned buckets of the given
// width, anchored at startTS. The interval must be positive. The
// iterator operates on a snapshot of the series taken here, so
// appends made while iterating do not affect it.
func (s *RawSeries) Windows(interval Interval, startTS TimeStamp) (*WindowIter, error) {
	return newWindowIter(s.elements, interval, startTS)
}

// Iter returns a restartable iterator over the series for display.
func (s *RawSeries) Iter() Iterator {
	return &rawIter{elems: s.elements, pos: -1}
}

func (s *RawSeries) String() string {
	var b bytes.Buffer
	for _, e := range s.elements {
		fmt.Fprintf(&b, "\n %s", e)
	}
	return b.String()
}
