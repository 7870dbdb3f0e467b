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
	"errors"
	"testing"
)

func mustPush(t *testing.T, s *RawSeries, ts TimeStamp, v float64) {
	t.Helper()
	if err := s.Push(ts, v); err != nil {
		t.Fatalf("Push(%v, %v): %v", ts, v, err)
	}
}

func TestRawSeries_AtOrAfter(t *testing.T) {
	s := NewRawSeries()
	for i := 0; i < 10; i++ {
		mustPush(t, s, TimeStamp(i), float64(i))
	}

	for i := 0; i < 10; i++ {
		e, ok := s.AtOrAfter(TimeStamp(i))
		if !ok {
			t.Fatalf("AtOrAfter(%d): no element", i)
		}
		if e.TS != TimeStamp(i) || !e.Sample.Equals(Point(float64(i))) {
			t.Errorf("AtOrAfter(%d) = %v, want (%d, Point(%d))", i, e, i, i)
		}
	}

	if _, ok := s.AtOrAfter(10); ok {
		t.Errorf("AtOrAfter(10) should return no element")
	}
}

func TestRawSeries_AtOrAfterIrregular(t *testing.T) {
	s := NewRawSeries()
	tss := []TimeStamp{0, 200, 350, 500, 1023, 3044, 4033, 9000}
	for i, ts := range tss {
		mustPush(t, s, ts, float64(i))
	}

	cases := []struct {
		in, ts TimeStamp
		val    float64
	}{
		{0, 0, 0},
		{1, 200, 1},
		{2, 200, 1},
		{201, 350, 2},
		{350, 350, 2},
		{351, 500, 3},
		{500, 500, 3},
		{501, 1023, 4},
		{9000, 9000, 7},
	}
	for _, c := range cases {
		e, ok := s.AtOrAfter(c.in)
		if !ok {
			t.Fatalf("AtOrAfter(%d): no element", c.in)
		}
		if e.TS != c.ts || !e.Sample.Equals(Point(c.val)) {
			t.Errorf("AtOrAfter(%d) = %v, want (%d, Point(%v))", c.in, e, c.ts, c.val)
		}
	}

	if _, ok := s.AtOrAfter(9001); ok {
		t.Errorf("AtOrAfter(9001) should return no element")
	}
}

func TestRawSeries_PushOutOfOrder(t *testing.T) {
	s := NewRawSeries()
	mustPush(t, s, 100, 1)

	if err := s.Push(99, 2); !errors.Is(err, ErrOutOfOrder) {
		t.Errorf("Push(99) after Push(100): err = %v, want ErrOutOfOrder", err)
	}
	if s.Len() != 1 {
		t.Errorf("rejected push must not append, Len() = %d", s.Len())
	}

	// Equal timestamps are accepted.
	if err := s.Push(100, 3); err != nil {
		t.Errorf("Push at equal timestamp: %v", err)
	}
}

func TestRawSeries_Accessors(t *testing.T) {
	s := NewRawSeries()
	if !s.IsEmpty() || s.Len() != 0 {
		t.Errorf("new series not empty")
	}
	if s.LastVal() != 0 {
		t.Errorf("LastVal of empty series = %v, want 0", s.LastVal())
	}
	if _, ok := s.LastTS(); ok {
		t.Errorf("LastTS of empty series should return false")
	}
	if _, ok := s.Get(0); ok {
		t.Errorf("Get(0) on empty series should return false")
	}

	mustPush(t, s, 5, 42)
	if err := s.PushSample(7, Zero()); err != nil {
		t.Fatalf("PushSample: %v", err)
	}

	if s.Len() != 2 || s.IsEmpty() {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if e, ok := s.Get(0); !ok || e.TS != 5 || !e.Sample.Equals(Point(42)) {
		t.Errorf("Get(0) = %v, %v", e, ok)
	}
	if s.LastVal() != 0 { // Zero carries value 0
		t.Errorf("LastVal() = %v, want 0", s.LastVal())
	}
	if ts, ok := s.LastTS(); !ok || ts != 7 {
		t.Errorf("LastTS() = %v, %v, want 7", ts, ok)
	}
}
