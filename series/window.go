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

import "fmt"

// Window is one bucket's worth of a raw series: either empty (no raw
// samples fell in the bucket) or an inclusive index range into the
// snapshot the iterator was created with. A Window is a view, never
// an owner.
type Window struct {
	Start, End int
	Empty      bool
}

// WindowIter partitions a raw series into consecutive half-open
// buckets of a fixed width anchored at an epoch. Bucket k covers
// [startTS + k*interval, startTS + (k+1)*interval). The whole
// iteration is a single linear scan over the series: lastIndex only
// moves forward, so the total cost is O(n) regardless of how many
// buckets there are.
//
// Usage follows the usual scanner shape:
//
//	it, err := s.Windows(interval, startTS)
//	...
//	for it.Next() {
//		w := it.Window()
//		...
//	}
type WindowIter struct {
	elems      []Element // snapshot of the raw series
	interval   Interval
	startTS    TimeStamp
	numWindows int
	current    int // next bucket index to produce
	lastIndex  int // lowest raw index not yet consumed
	win        Window
	valid      bool
}

func newWindowIter(elems []Element, interval Interval, startTS TimeStamp) (*WindowIter, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("window interval must be positive, got %v", interval)
	}
	it := &WindowIter{
		elems:    elems,
		interval: interval,
		startTS:  startTS,
	}
	if len(elems) > 0 {
		lastTS := elems[len(elems)-1].TS
		if lastTS >= startTS {
			it.numWindows = int((lastTS.Millis()-startTS.Millis())/interval.Millis()) + 1
		}
	}
	return it, nil
}

// SetEndTS caps the iteration so that no bucket starting after endTS
// is produced. endTS is inclusive: the bucket whose start equals
// endTS is still produced.
func (it *WindowIter) SetEndTS(endTS TimeStamp) {
	max := 0
	if endTS >= it.startTS {
		max = int((endTS.Millis()-it.startTS.Millis())/it.interval.Millis()) + 1
	}
	if max < it.numWindows {
		it.numWindows = max
	}
}

// NumWindows returns the total number of buckets the iteration will
// produce: floor((lastTS-startTS)/interval)+1, or 0 if the series is
// empty or ends before startTS.
func (it *WindowIter) NumWindows() int { return it.numWindows }

// Next advances to the next bucket. Returns false when all buckets
// have been produced.
func (it *WindowIter) Next() bool {
	if it.current >= it.numWindows {
		it.valid = false
		return false
	}

	winStart := it.startTS.Millis() + int64(it.current)*it.interval.Millis()
	winEnd := winStart + it.interval.Millis()
	it.current++

	// Scan forward from lastIndex for the first element in
	// [winStart, winEnd). Elements before winStart belong to already
	// produced buckets (or precede the epoch) and are consumed so
	// they are never scanned again.
	start := -1
	for j := it.lastIndex; j < len(it.elems); j++ {
		ms := it.elems[j].TS.Millis()
		if ms < winStart {
			it.lastIndex = j + 1
			continue
		}
		if ms < winEnd {
			start = j
		}
		break
	}

	if start < 0 {
		it.win = Window{Empty: true}
		it.valid = true
		return true
	}

	// Extend the range to the last element before winEnd. If the
	// series runs out first this is necessarily the last bucket.
	end := start
	for j := start + 1; j < len(it.elems); j++ {
		if it.elems[j].TS.Millis() >= winEnd {
			break
		}
		end = j
	}

	it.lastIndex = end + 1
	it.win = Window{Start: start, End: end}
	it.valid = true
	return true
}

// Window returns the current bucket. Only valid after Next() returned
// true.
func (it *WindowIter) Window() Window { return it.win }

// BucketStart returns the start timestamp of the current bucket.
func (it *WindowIter) BucketStart() TimeStamp {
	return it.startTS.Add(Interval(int64(it.current-1) * it.interval.Millis()))
}

// Samples returns the elements of the current bucket, in timestamp
// order. Empty buckets yield an empty slice. The slice aliases the
// iterator's snapshot and must not be modified.
func (it *WindowIter) Samples() []Element {
	if !it.valid || it.win.Empty {
		return nil
	}
	return it.elems[it.win.Start : it.win.End+1]
}

// Aggregate reduces the current bucket with the given operator.
func (it *WindowIter) Aggregate(op ElementOp) Sample {
	return op(it.Samples())
}
