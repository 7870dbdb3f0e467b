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

// Package series provides the fundamental time series operations:
// raw (irregularly timed) sample buffers, windowing of a raw buffer
// into fixed-width epoch-aligned buckets, aggregation of buckets into
// single values, and the resulting fixed-interval (aligned) series.
//
// Throughout documentation and code the following terms are used:
//
// Raw series: an append-only buffer of timestamped samples at
// whatever cadence the producer delivers them. Timestamps must be
// non-decreasing.
//
// Window (or bucket): a half-open time interval of a fixed width,
// aligned to an epoch. Bucket k of width w anchored at epoch e covers
// [e + k*w, e + (k+1)*w).
//
// Aligned series: a series with a fixed interval between samples,
// anchored at an epoch. The sample at position i represents bucket i.
// Aligned series are usually produced by aggregating the windows of a
// raw series, which is how a metric is kept at progressively coarser
// resolutions (downsampling).
//
// All sample values are float64.
package series

import (
	"fmt"
	"time"
)

// TimeStamp is a point in time expressed as milliseconds since the
// Unix epoch. It is signed, so times before 1970 are representable.
type TimeStamp int64

// TimeStampFromTime converts a time.Time to a TimeStamp, truncating
// to millisecond precision.
func TimeStampFromTime(t time.Time) TimeStamp {
	return TimeStamp(t.UnixNano() / int64(time.Millisecond))
}

// Time returns the timestamp as a time.Time in UTC. Formatting and
// timezone conversion beyond this is up to the caller.
func (ts TimeStamp) Time() time.Time {
	return time.Unix(0, int64(ts)*int64(time.Millisecond)).UTC()
}

func (ts TimeStamp) Millis() int64 { return int64(ts) }

// Add returns the timestamp advanced by iv.
func (ts TimeStamp) Add(iv Interval) TimeStamp { return ts + TimeStamp(iv) }

// Sub returns the interval between ts and other (positive when ts is
// later).
func (ts TimeStamp) Sub(other TimeStamp) Interval { return Interval(ts - other) }

// Truncate rounds the timestamp down to a multiple of iv. This is how
// an alignment epoch is usually chosen from the first raw timestamp.
func (ts TimeStamp) Truncate(iv Interval) TimeStamp {
	if iv <= 0 {
		return ts
	}
	r := int64(ts) % int64(iv)
	if r < 0 {
		r += int64(iv)
	}
	return ts - TimeStamp(r)
}

func (ts TimeStamp) String() string {
	return ts.Time().Format("2006-01-02 15:04:05.000 MST")
}

// Interval is a span of time in milliseconds. An Interval used as a
// window width or alignment period must be strictly positive; zero or
// negative widths are a caller error and are rejected by the
// operations that take them.
type Interval int64

// IntervalFromDuration converts a time.Duration to an Interval,
// truncating to millisecond precision.
func IntervalFromDuration(d time.Duration) Interval {
	return Interval(d.Nanoseconds() / int64(time.Millisecond))
}

func (iv Interval) Duration() time.Duration {
	return time.Duration(int64(iv)) * time.Millisecond
}

func (iv Interval) Millis() int64 { return int64(iv) }

func (iv Interval) String() string {
	return fmt.Sprintf("%d.%03ds", int64(iv)/1000, abs64(int64(iv)%1000))
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
