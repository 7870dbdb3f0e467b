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
	"testing"
	"time"
)

// tenMinuteSeries has one sample every 10 seconds for 10 minutes,
// values counting up from 0.
func tenMinuteSeries(t *testing.T) (*RawSeries, TimeStamp) {
	t.Helper()
	epoch := TimeStampFromTime(time.Date(2023, 1, 1, 1, 0, 0, 0, time.UTC))
	s := NewRawSeries()
	for i := 0; i < 60; i++ {
		mustPush(t, s, epoch.Add(Interval(i*10000)), float64(i))
	}
	return s, epoch
}

func collectWindows(t *testing.T, s *RawSeries, iv Interval, start TimeStamp) []Window {
	t.Helper()
	it, err := s.Windows(iv, start)
	if err != nil {
		t.Fatalf("Windows(%v, %v): %v", iv, start, err)
	}
	var ws []Window
	for it.Next() {
		ws = append(ws, it.Window())
	}
	return ws
}

func checkWindowSizes(t *testing.T, ws []Window, count, size int) {
	t.Helper()
	if len(ws) != count {
		t.Fatalf("got %d windows, want %d", len(ws), count)
	}
	for i, w := range ws {
		if w.Empty {
			t.Errorf("window %d unexpectedly empty", i)
			continue
		}
		if w.End-w.Start != size-1 {
			t.Errorf("window %d covers %d elements, want %d", i, w.End-w.Start+1, size)
		}
	}
}

func TestWindowIter_Windowing(t *testing.T) {
	s, epoch := tenMinuteSeries(t)

	// 1 minute windows: 10 windows of 6 samples.
	checkWindowSizes(t, collectWindows(t, s, 60000, epoch), 10, 6)

	// 2 minute windows: 5 windows of 12 samples.
	checkWindowSizes(t, collectWindows(t, s, 120000, epoch), 5, 12)

	// 30 second windows: 20 windows of 3 samples.
	checkWindowSizes(t, collectWindows(t, s, 30000, epoch), 20, 3)

	// 2 second windows: with a 10 second cadence every 5th window has
	// one sample, the rest are empty.
	ws := collectWindows(t, s, 2000, epoch)
	if len(ws) != 296 { // (590000 / 2000) + 1
		t.Fatalf("got %d windows, want 296", len(ws))
	}
	for i, w := range ws {
		if i%5 == 0 {
			if w.Empty || w.End != w.Start {
				t.Errorf("window %d: want exactly one sample, got %+v", i, w)
			}
		} else if !w.Empty {
			t.Errorf("window %d: want empty, got %+v", i, w)
		}
	}
}

// Windows must be contiguous, non-overlapping and cover every raw
// index exactly once.
func TestWindowIter_Coverage(t *testing.T) {
	s := NewRawSeries()
	tss := []TimeStamp{0, 200, 350, 500, 1023, 3044, 4033, 9000}
	for i, ts := range tss {
		mustPush(t, s, ts, float64(i))
	}

	for _, iv := range []Interval{1, 7, 100, 250, 1000, 5000, 10000} {
		ws := collectWindows(t, s, iv, 0)

		last, _ := s.LastTS()
		wantCount := int(last.Millis()/iv.Millis()) + 1
		if len(ws) != wantCount {
			t.Errorf("interval %v: %d windows, want %d", iv, len(ws), wantCount)
		}

		next := 0
		for i, w := range ws {
			if w.Empty {
				continue
			}
			if w.Start != next {
				t.Errorf("interval %v window %d: starts at %d, want %d", iv, i, w.Start, next)
			}
			if w.End < w.Start {
				t.Errorf("interval %v window %d: end %d < start %d", iv, i, w.End, w.Start)
			}
			next = w.End + 1
		}
		if next != s.Len() {
			t.Errorf("interval %v: windows covered %d elements, want %d", iv, next, s.Len())
		}
	}
}

func TestWindowIter_Edges(t *testing.T) {
	// Empty series: no windows.
	it, err := NewRawSeries().Windows(100, 0)
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}
	if it.NumWindows() != 0 || it.Next() {
		t.Errorf("empty series should produce no windows")
	}

	s := NewRawSeries()
	mustPush(t, s, 500, 1)

	// Series ending before the epoch: no windows.
	it, err = s.Windows(100, 1000)
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}
	if it.NumWindows() != 0 || it.Next() {
		t.Errorf("series ending before epoch should produce no windows")
	}

	// Non-positive interval is a caller error.
	if _, err := s.Windows(0, 0); err == nil {
		t.Errorf("Windows with zero interval should fail")
	}
	if _, err := s.Windows(-5, 0); err == nil {
		t.Errorf("Windows with negative interval should fail")
	}
}

// Samples before the epoch are consumed without being yielded and
// must not stall the scan.
func TestWindowIter_PreEpochSamples(t *testing.T) {
	s := NewRawSeries()
	mustPush(t, s, 0, 0)
	mustPush(t, s, 50, 1)
	mustPush(t, s, 100, 2)
	mustPush(t, s, 150, 3)
	mustPush(t, s, 250, 4)

	ws := collectWindows(t, s, 100, 100)
	if len(ws) != 2 {
		t.Fatalf("got %d windows, want 2", len(ws))
	}
	if ws[0].Empty || ws[0].Start != 2 || ws[0].End != 3 {
		t.Errorf("window 0 = %+v, want indices 2..3", ws[0])
	}
	if ws[1].Empty || ws[1].Start != 4 || ws[1].End != 4 {
		t.Errorf("window 1 = %+v, want indices 4..4", ws[1])
	}
}

func TestWindowIter_SetEndTS(t *testing.T) {
	s := NewRawSeries()
	for i := 0; i <= 10; i++ {
		mustPush(t, s, TimeStamp(i*100), float64(i))
	}

	it, err := s.Windows(100, 0)
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}
	it.SetEndTS(450) // buckets starting at 0..400 remain
	n := 0
	for it.Next() {
		n++
	}
	if n != 5 {
		t.Errorf("got %d windows, want 5", n)
	}

	// The bucket starting exactly at the end cutoff is included.
	it, _ = s.Windows(100, 0)
	it.SetEndTS(400)
	n = 0
	for it.Next() {
		n++
	}
	if n != 5 {
		t.Errorf("got %d windows, want 5", n)
	}

	// A cutoff before the epoch leaves nothing.
	it, _ = s.Windows(100, 200)
	it.SetEndTS(100)
	if it.Next() {
		t.Errorf("cutoff before epoch should produce no windows")
	}
}

func TestWindowIter_SamplesAndAggregate(t *testing.T) {
	s, epoch := tenMinuteSeries(t)

	it, err := s.Windows(60000, epoch)
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}
	for i := 0; it.Next(); i++ {
		smps := it.Samples()
		if len(smps) != 6 {
			t.Fatalf("window %d: %d samples, want 6", i, len(smps))
		}
		if got := it.BucketStart(); got != epoch.Add(Interval(i*60000)) {
			t.Errorf("window %d: BucketStart() = %v", i, got)
		}
		// values count up, so youngest == last value of the minute
		want := Point(float64(i*6 + 5))
		if got := it.Aggregate(Youngest); !got.Equals(want) {
			t.Errorf("window %d: youngest = %v, want %v", i, got, want)
		}
	}
}

// The iterator snapshots the series at creation; appending while
// iterating must not change what it yields.
func TestWindowIter_SnapshotIsolation(t *testing.T) {
	s := NewRawSeries()
	for i := 0; i < 4; i++ {
		mustPush(t, s, TimeStamp(i*100), float64(i))
	}

	it, err := s.Windows(100, 0)
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}
	n := 0
	for it.Next() {
		mustPush(t, s, TimeStamp(1000+n*100), 99)
		n++
	}
	if n != 4 {
		t.Errorf("iterated %d windows, want the 4 present at creation", n)
	}
}
