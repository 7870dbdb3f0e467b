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

// Package daemon wires the demo together: it collects CPU usage into
// a metric, downsamples it into the configured tiers and prints every
// resulting series.
package daemon

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tsroll/tsroll/collector"
	"github.com/tsroll/tsroll/series"
	"github.com/tsroll/tsroll/stream"
)

// registryCap bounds how many metrics the demo registry retains. The
// demo only ever creates one, the bound matters for embedders reusing
// this wiring.
const registryCap = 64

// Run collects samples per cfg and writes every series to out.
func Run(cfg *Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.LogPath != "" {
		if err := logToFile(cfg.LogPath); err != nil {
			return err
		}
	}

	reg, err := stream.NewRegistry(registryCap)
	if err != nil {
		return err
	}
	host, _ := os.Hostname()
	m := reg.GetOrCreate(cfg.MetricName, stream.Tag{Name: "host", Value: host})

	return run(cfg, m, collector.NewCPUSampler(), out)
}

func run(cfg *Config, m *stream.Metric, sampler collector.Sampler, out io.Writer) error {
	coll := collector.New(m.Stream, sampler, cfg.SampleInterval.Duration())
	log.Printf("%s: collecting %d samples, one every %v", m, cfg.SampleCount, cfg.SampleInterval)
	if pushed := coll.Run(cfg.SampleCount); pushed == 0 {
		return fmt.Errorf("no samples collected (%d errors)", coll.ErrCount())
	}

	raw := m.Raw()
	dump(out, fmt.Sprintf("%s raw", m.Name()), raw.Iter())

	op, err := series.ElementOpNamed(cfg.DisplayOp)
	if err != nil {
		return err
	}
	first, _ := raw.Get(0)

	for _, tier := range cfg.Tiers {
		epoch := first.TS.Truncate(tier.Interval)

		aligned, err := series.FromRaw(raw, tier.Interval, epoch, op)
		if err != nil {
			return err
		}
		dump(out, fmt.Sprintf("%s %s per %v", m.Name(), cfg.DisplayOp, tier), aligned.Iter())

		// The stream keeps the counter-to-rate tier.
		if err := m.Align(tier.Interval, epoch); err != nil {
			return err
		}
		rate, _ := m.Aligned(tier.Interval, epoch)
		dump(out, fmt.Sprintf("%s rate per %v", m.Name(), tier), rate.Iter())
	}

	return nil
}

func dump(w io.Writer, title string, it series.Iterator) {
	fmt.Fprintf(w, "%s:\n", title)
	for it.Next() {
		fmt.Fprintf(w, "  %s %s\n",
			it.CurrentTime().Time().Format("2006-01-02 15:04:05.000"),
			it.CurrentSample())
	}
	it.Close()
}
