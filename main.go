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

// Tsroll is a time-series windowing and downsampling engine written
// in Go. This command demonstrates it: it samples CPU usage for a
// little while, downsamples the readings into the configured tiers
// and prints every resulting series.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/tsroll/tsroll/daemon"
	"github.com/tsroll/tsroll/misc"
)

func parseFlags() (cfgPath, sampleEvery, op, tiers string, count int) {
	flag.StringVar(&cfgPath, "c", "", "path to config file")
	flag.StringVar(&sampleEvery, "i", "", "collection interval, e.g. 500ms")
	flag.StringVar(&op, "op", "", "display aggregation: max, min, sum, mean, oldest, youngest, delta")
	flag.StringVar(&tiers, "tiers", "", "comma-separated downsampling tiers, e.g. 1s,10s,1min")
	flag.IntVar(&count, "n", 0, "number of samples to collect")
	flag.Parse()
	return
}

func main() {
	cfgPath, sampleEvery, op, tiers, count := parseFlags()

	cfg := daemon.DefaultConfig()
	if cfgPath != "" {
		var err error
		if cfg, err = daemon.ReadConfig(cfgPath); err != nil {
			log.Fatalf("ERROR: %v", err)
		}
	}

	// Flags override the config file.
	if sampleEvery != "" {
		iv, err := misc.ParseInterval(sampleEvery)
		if err != nil {
			log.Fatalf("ERROR: %v", err)
		}
		cfg.SampleInterval.Interval = iv
	}
	if op != "" {
		cfg.DisplayOp = op
	}
	if count > 0 {
		cfg.SampleCount = count
	}
	if tiers != "" {
		cfg.Tiers = nil
		for _, spec := range strings.Split(tiers, ",") {
			iv, err := misc.ParseInterval(strings.TrimSpace(spec))
			if err != nil {
				log.Fatalf("ERROR: %v", err)
			}
			cfg.Tiers = append(cfg.Tiers, daemon.Interval{Interval: iv})
		}
	}

	if err := daemon.Run(cfg, os.Stdout); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
