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

// Package collector produces raw samples for a stream from an
// external source, such as OS CPU usage. It is the ingestion side of
// the engine: everything it knows about the core is that it pushes
// (timestamp, value) pairs with non-decreasing timestamps.
package collector

import (
	"fmt"
	"log"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/time/rate"

	"github.com/tsroll/tsroll/series"
	"github.com/tsroll/tsroll/stream"
)

// Clock is the wall-clock read used to stamp collected samples. It is
// an interface so tests can supply deterministic timestamps.
type Clock interface {
	Now() series.TimeStamp
}

type wallClock struct{}

func (wallClock) Now() series.TimeStamp { return series.TimeStampFromTime(time.Now()) }

// WallClock returns a Clock backed by time.Now.
func WallClock() Clock { return wallClock{} }

// Sampler produces one reading per call.
type Sampler interface {
	Sample() (float64, error)
}

// CPUSampler reads overall CPU busy percentage. The first call
// reports usage since boot, subsequent calls report usage since the
// previous call.
type CPUSampler struct{}

func NewCPUSampler() *CPUSampler { return &CPUSampler{} }

func (c *CPUSampler) Sample() (float64, error) {
	ps, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(ps) == 0 {
		return 0, fmt.Errorf("no cpu usage available")
	}
	return ps[0], nil
}

// Collector drives a Sampler on a fixed cadence and pushes the
// readings into a Stream. Sampling or push failures are counted and
// logged, but logging is rate limited so a persistently failing
// sampler cannot flood the log.
type Collector struct {
	str      *stream.Stream
	sampler  Sampler
	every    time.Duration
	clock    Clock
	logLimit *rate.Limiter
	errCount int
}

// New returns a Collector pushing into str one reading every interval.
func New(str *stream.Stream, sampler Sampler, every time.Duration) *Collector {
	return &Collector{
		str:      str,
		sampler:  sampler,
		every:    every,
		clock:    wallClock{},
		logLimit: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// Run collects n readings, sleeping the collection interval between
// consecutive ones. It returns the number of readings successfully
// pushed.
func (c *Collector) Run(n int) int {
	pushed := 0
	for i := 0; i < n; i++ {
		if i > 0 {
			time.Sleep(c.every)
		}
		v, err := c.sampler.Sample()
		if err != nil {
			c.fail("sample: %v", err)
			continue
		}
		if err := c.str.PushRaw(c.clock.Now(), v); err != nil {
			c.fail("push: %v", err)
			continue
		}
		pushed++
	}
	return pushed
}

// ErrCount returns the cumulative number of failed readings.
func (c *Collector) ErrCount() int { return c.errCount }

func (c *Collector) fail(format string, args ...interface{}) {
	c.errCount++
	if c.logLimit.Allow() {
		log.Printf("collector: "+format, args...)
	}
}
