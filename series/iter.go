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

// Iterator presents any series as a lazy, finite sequence of
// timestamped samples for display. Rendering is Sample.String();
// date and timezone formatting beyond TimeStamp.Time() is up to the
// caller.
type Iterator interface {
	// Advance to the next sample. Returns false if no further
	// advancement is possible.
	Next() bool

	// The start time of the current sample's slot. If called before
	// Next(), or after Next() returned false, returns the zero
	// TimeStamp.
	CurrentTime() TimeStamp

	// The current sample. If called before Next(), or after Next()
	// returned false, returns Err.
	CurrentSample() Sample

	// Resets the internal cursor. After Close(), Next() starts from
	// the beginning.
	Close() error
}

type rawIter struct {
	elems []Element
	pos   int
}

func (it *rawIter) Next() bool {
	if it.pos+1 >= len(it.elems) {
		it.pos = len(it.elems)
		return false
	}
	it.pos++
	return true
}

func (it *rawIter) valid() bool {
	return it.pos >= 0 && it.pos < len(it.elems)
}

func (it *rawIter) CurrentTime() TimeStamp {
	if !it.valid() {
		return 0
	}
	return it.elems[it.pos].TS
}

func (it *rawIter) CurrentSample() Sample {
	if !it.valid() {
		return Err()
	}
	return it.elems[it.pos].Sample
}

func (it *rawIter) Close() error {
	it.pos = -1
	return nil
}

type alignedIter struct {
	s   *AlignedSeries
	pos int
}

func (it *alignedIter) Next() bool {
	if it.pos+1 >= it.s.Len() {
		it.pos = it.s.Len()
		return false
	}
	it.pos++
	return true
}

func (it *alignedIter) valid() bool {
	return it.pos >= 0 && it.pos < it.s.Len()
}

func (it *alignedIter) CurrentTime() TimeStamp {
	if !it.valid() {
		return 0
	}
	return it.s.BucketTS(it.pos)
}

func (it *alignedIter) CurrentSample() Sample {
	if !it.valid() {
		return Err()
	}
	smp, _ := it.s.Get(it.pos)
	return smp
}

func (it *alignedIter) Close() error {
	it.pos = -1
	return nil
}
