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

package daemon

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/tsroll/tsroll/misc"
	"github.com/tsroll/tsroll/series"
)

// Config drives the demo daemon. Needs to be exported for TOML to
// work.
type Config struct {
	LogPath        string     `toml:"log-file"`
	MetricName     string     `toml:"metric-name"`
	SampleInterval Interval    `toml:"sample-interval"`
	SampleCount    int        `toml:"sample-count"`
	DisplayOp      string     `toml:"display-op"`
	Tiers          []Interval `toml:"tiers"`
}

// Interval parses human-friendly interval strings ("500ms", "1m",
// "5min", "1h") in TOML values.
type Interval struct{ series.Interval }

func (iv *Interval) UnmarshalText(text []byte) (err error) {
	iv.Interval, err = misc.ParseInterval(string(text))
	return err
}

// DefaultConfig returns the configuration used when no config file is
// given: 10 CPU readings half a second apart, downsampled to 1s and
// 2s tiers.
func DefaultConfig() *Config {
	return &Config{
		MetricName:     "cpu.busy",
		SampleInterval: Interval{500},
		SampleCount:    10,
		DisplayOp:      "mean",
		Tiers:          []Interval{{1000}, {2000}},
	}
}

// ReadConfig loads a TOML config file over the defaults.
func ReadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("unable to read config %q: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %v", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the engine would reject later, so
// that nothing runs on a bad config.
func (c *Config) Validate() error {
	if c.MetricName == "" {
		return fmt.Errorf("metric-name must not be empty")
	}
	if c.SampleInterval.Interval <= 0 {
		return fmt.Errorf("sample-interval must be positive")
	}
	if c.SampleCount < 2 {
		return fmt.Errorf("sample-count must be at least 2, got %d", c.SampleCount)
	}
	if _, err := series.ElementOpNamed(c.DisplayOp); err != nil {
		return err
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("at least one downsampling tier is required")
	}
	for _, tier := range c.Tiers {
		if tier.Interval <= 0 {
			return fmt.Errorf("tier interval must be positive, got %v", tier.Interval)
		}
	}
	return nil
}
