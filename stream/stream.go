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

// Package stream holds one metric's full retention tree: the live raw
// buffer(s) plus every maintained downsampled tier, e.g. raw -> 1m ->
// 5m -> 1h. A tier is an aligned series keyed by its interval and
// alignment epoch.
package stream

import (
	"fmt"
	"sort"

	"github.com/tsroll/tsroll/series"
)

// Stream is one metric's raw buffers and downsampled tiers. A Stream
// starts empty, accumulates raw pushes, and can then be aligned into
// any number of tiers. Alignment is re-runnable per key (last write
// wins) and never removes raw data.
//
// A Stream is not safe for concurrent use; it must be owned by a
// single logical accumulator.
type Stream struct {
	raw     []*series.RawSeries
	aligned map[series.Interval]map[series.TimeStamp]*series.AlignedSeries
}

// New returns an empty Stream.
func New() *Stream {
	return &Stream{
		aligned: make(map[series.Interval]map[series.TimeStamp]*series.AlignedSeries),
	}
}

// PushRaw appends a value to the most recently started raw buffer,
// creating the first buffer if none exists.
func (st *Stream) PushRaw(ts series.TimeStamp, value float64) error {
	return st.PushRawSample(ts, series.Point(value))
}

// PushRawSample appends a sample of any kind to the most recently
// started raw buffer, creating the first buffer if none exists.
func (st *Stream) PushRawSample(ts series.TimeStamp, smp series.Sample) error {
	if len(st.raw) == 0 {
		st.raw = append(st.raw, series.NewRawSeries())
	}
	return st.raw[len(st.raw)-1].PushSample(ts, smp)
}

// StartRaw begins a new raw buffer; subsequent pushes go to it. The
// previous buffers are kept and remain readable.
func (st *Stream) StartRaw() *series.RawSeries {
	rs := series.NewRawSeries()
	st.raw = append(st.raw, rs)
	return rs
}

// Raw returns the most recently started raw buffer, or nil if the
// stream has never been pushed to.
func (st *Stream) Raw() *series.RawSeries {
	if len(st.raw) == 0 {
		return nil
	}
	return st.raw[len(st.raw)-1]
}

// RawBuffers returns all raw buffers, oldest first. The slice must
// not be modified.
func (st *Stream) RawBuffers() []*series.RawSeries { return st.raw }

// NewInterval registers an empty aligned tier under the given
// interval and epoch. The interval must be positive.
func (st *Stream) NewInterval(interval series.Interval, startTS series.TimeStamp) error {
	if interval <= 0 {
		return fmt.Errorf("tier interval must be positive, got %v", interval)
	}
	st.store(series.NewAlignedSeries(interval, startTS))
	return nil
}

// Align downsamples the latest raw buffer into the (interval,
// startTS) tier. The raw data is sampled per bucket with youngest,
// then a sliding delta of width 2 is derived from the sampled series,
// and it is the delta series that is stored: this is the
// counter-to-rate downsampling step. Re-running Align for the same
// key overwrites the previous result.
func (st *Stream) Align(interval series.Interval, startTS series.TimeStamp) error {
	return st.align(interval, startTS, nil)
}

// AlignBetween is Align with an inclusive end cutoff; endTS must be
// at or after startTS.
func (st *Stream) AlignBetween(interval series.Interval, startTS, endTS series.TimeStamp) error {
	return st.align(interval, startTS, &endTS)
}

func (st *Stream) align(interval series.Interval, startTS series.TimeStamp, endTS *series.TimeStamp) error {
	raw := st.Raw()
	if raw == nil {
		return fmt.Errorf("stream has no raw data to align")
	}

	var (
		sampled *series.AlignedSeries
		err     error
	)
	if endTS != nil {
		sampled, err = series.FromRawBetween(raw, interval, startTS, *endTS, series.Youngest)
	} else {
		sampled, err = series.FromRaw(raw, interval, startTS, series.Youngest)
	}
	if err != nil {
		return err
	}

	delta, err := sampled.SlidingAggregate(2, series.DeltaSamples)
	if err != nil {
		return err
	}

	st.store(delta)
	return nil
}

func (st *Stream) store(s *series.AlignedSeries) {
	byStart := st.aligned[s.Interval()]
	if byStart == nil {
		byStart = make(map[series.TimeStamp]*series.AlignedSeries)
		st.aligned[s.Interval()] = byStart
	}
	byStart[s.StartTS()] = s
}

// Aligned returns the tier stored under the given interval and epoch.
func (st *Stream) Aligned(interval series.Interval, startTS series.TimeStamp) (*series.AlignedSeries, bool) {
	s, ok := st.aligned[interval][startTS]
	return s, ok
}

// Intervals returns the registered tier intervals in ascending order.
func (st *Stream) Intervals() []series.Interval {
	ivs := make([]series.Interval, 0, len(st.aligned))
	for iv := range st.aligned {
		ivs = append(ivs, iv)
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i] < ivs[j] })
	return ivs
}

// Starts returns the alignment epochs registered for an interval, in
// ascending order.
func (st *Stream) Starts(interval series.Interval) []series.TimeStamp {
	tss := make([]series.TimeStamp, 0, len(st.aligned[interval]))
	for ts := range st.aligned[interval] {
		tss = append(tss, ts)
	}
	sort.Slice(tss, func(i, j int) bool { return tss[i] < tss[j] })
	return tss
}
