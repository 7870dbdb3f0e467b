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
	"fmt"
)

// AlignedSeries is a series with a fixed interval between samples,
// anchored at an epoch. The sample at position i represents the
// bucket [startTS + i*interval, startTS + (i+1)*interval).
//
// Like RawSeries, an AlignedSeries is not safe for concurrent use.
type AlignedSeries struct {
	startTS  TimeStamp
	interval Interval
	values   []Sample
}

// NewAlignedSeries returns an empty aligned series anchored at
// startTS. The interval must be positive; this is a documented caller
// obligation, checked only by the constructors that can fail.
func NewAlignedSeries(interval Interval, startTS TimeStamp) *AlignedSeries {
	return &AlignedSeries{interval: interval, startTS: startTS}
}

// FromRaw builds an aligned series in one pass over raw: each bucket
// of the given width is reduced with op, in bucket order. The number
// of buckets is determined by the last raw timestamp; an empty raw
// series (or one ending before startTS) produces an empty aligned
// series.
func FromRaw(raw *RawSeries, interval Interval, startTS TimeStamp, op ElementOp) (*AlignedSeries, error) {
	it, err := raw.Windows(interval, startTS)
	if err != nil {
		return nil, err
	}
	return aggregate(it, interval, startTS, op), nil
}

// FromRawBetween is FromRaw with an inclusive end cutoff: the build
// stops once a bucket's start time exceeds endTS. endTS must be at or
// after startTS, otherwise a configuration error is returned and no
// series is produced.
func FromRawBetween(raw *RawSeries, interval Interval, startTS, endTS TimeStamp, op ElementOp) (*AlignedSeries, error) {
	if endTS < startTS {
		return nil, fmt.Errorf("end timestamp %v precedes start timestamp %v", endTS, startTS)
	}
	it, err := raw.Windows(interval, startTS)
	if err != nil {
		return nil, err
	}
	it.SetEndTS(endTS)
	return aggregate(it, interval, startTS, op), nil
}

func aggregate(it *WindowIter, interval Interval, startTS TimeStamp, op ElementOp) *AlignedSeries {
	s := NewAlignedSeries(interval, startTS)
	s.values = make([]Sample, 0, it.NumWindows())
	for it.Next() {
		s.values = append(s.values, it.Aggregate(op))
	}
	return s
}

// StartTS returns the alignment epoch.
func (s *AlignedSeries) StartTS() TimeStamp { return s.startTS }

// Interval returns the bucket width.
func (s *AlignedSeries) Interval() Interval { return s.interval }

// Push appends a real value, filling the next bucket.
func (s *AlignedSeries) Push(value float64) {
	s.PushSample(Point(value))
}

// PushSample appends a sample, filling the next bucket.
func (s *AlignedSeries) PushSample(smp Sample) {
	s.values = append(s.values, smp)
}

// Len returns the number of buckets filled.
func (s *AlignedSeries) Len() int { return len(s.values) }

// IsEmpty returns true if no buckets are filled.
func (s *AlignedSeries) IsEmpty() bool { return len(s.values) == 0 }

// Get returns the sample at the given bucket index.
func (s *AlignedSeries) Get(index int) (Sample, bool) {
	if index < 0 || index >= len(s.values) {
		return Sample{}, false
	}
	return s.values[index], true
}

// BucketTS returns the start timestamp of bucket i.
func (s *AlignedSeries) BucketTS(i int) TimeStamp {
	return s.startTS.Add(Interval(int64(i) * s.interval.Millis()))
}

// SlidingAggregate slides a window of windowLen consecutive samples one
// step at a time over the series and reduces each with op, producing
// a new series with the same interval and epoch. The first
// windowLen-1 output positions are filled with Point(0) placeholders,
// since no full window exists there yet; this keeps the output
// index-aligned with the input. windowLen must be at least 1.
func (s *AlignedSeries) SlidingAggregate(windowLen int, op SampleOp) (*AlignedSeries, error) {
	if windowLen < 1 {
		return nil, fmt.Errorf("sliding window length must be at least 1, got %d", windowLen)
	}
	out := NewAlignedSeries(s.interval, s.startTS)
	for i := 0; i < windowLen-1; i++ {
		out.PushSample(Point(0))
	}
	for i := 0; i+windowLen <= len(s.values); i++ {
		out.PushSample(op(s.values[i : i+windowLen]))
	}
	return out, nil
}

// AtOrAfter returns the sample of the first bucket whose start time
// is at or after ts, together with that bucket's start time. A ts at
// or before the epoch returns the first bucket. A ts exactly on a
// bucket boundary returns that bucket; otherwise the next bucket
// (ceiling). Returns false past the last bucket.
func (s *AlignedSeries) AtOrAfter(ts TimeStamp) (Element, bool) {
	if ts <= s.startTS {
		if s.IsEmpty() {
			return Element{}, false
		}
		return Element{TS: s.startTS, Sample: s.values[0]}, true
	}

	off := ts.Sub(s.startTS).Millis()
	index := int(off / s.interval.Millis())
	if off%s.interval.Millis() != 0 {
		index++
	}
	if index >= len(s.values) {
		return Element{}, false
	}
	return Element{TS: s.BucketTS(index), Sample: s.values[index]}, true
}

// Iter returns a restartable iterator over the series for display.
func (s *AlignedSeries) Iter() Iterator {
	return &alignedIter{s: s, pos: -1}
}

func (s *AlignedSeries) String() string {
	var b bytes.Buffer
	for i, smp := range s.values {
		fmt.Fprintf(&b, "\n %s %s", s.BucketTS(i), smp)
	}
	return b.String()
}
