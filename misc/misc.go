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

// Package misc is misc stuff.
package misc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tsroll/tsroll/series"
)

var (
	sanitizeRegexSpace       = regexp.MustCompile("\\s+")
	sanitizeRegexSlash       = regexp.MustCompile("/")
	sanitizeRegexNonAlphaNum = regexp.MustCompile("[^a-zA-Z_\\-0-9\\.]")
)

// SanitizeName makes a metric name safe: whitespace becomes
// underscores, slashes become dashes, anything else non-alphanumeric
// is dropped.
func SanitizeName(name string) string {
	name = sanitizeRegexSpace.ReplaceAllString(name, "_")
	name = sanitizeRegexSlash.ReplaceAllString(name, "-")
	return sanitizeRegexNonAlphaNum.ReplaceAllString(name, "")
}

// ParseInterval parses a human-friendly duration string into a bucket
// interval. On top of what time.ParseDuration accepts it understands
// "min", "hour", "d" (days), "w" (weeks), "mon" (30-day months) and
// "y" (years), so tier specs can be written "1m", "5min", "1h", "7d".
// The result must be a positive whole number of milliseconds.
func ParseInterval(s string) (series.Interval, error) {
	d, err := parseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %v", s, err)
	}
	iv := series.IntervalFromDuration(d)
	if iv <= 0 {
		return 0, fmt.Errorf("invalid interval %q: must be at least 1ms", s)
	}
	return iv, nil
}

func parseDuration(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "min") {
		s = s[0 : len(s)-2] // min -> m
	} else if strings.HasSuffix(s, "hour") {
		s = s[0 : len(s)-3] // hour -> h
	} else if strings.HasSuffix(s, "mon") {
		fd, err := strconv.ParseFloat(s[0:len(s)-3], 64)
		if err != nil {
			return 0, err
		}
		s = fmt.Sprintf("%vh", fd*30*24)
	}
	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}
	if strings.HasPrefix(err.Error(), "time: unknown unit ") {
		n, _ := strconv.ParseInt(s[0:len(s)-1], 10, 64)
		if strings.Contains(err.Error(), `unit "d"`) || strings.Contains(err.Error(), "unit d in") {
			return time.Duration(n*24) * time.Hour, nil
		} else if strings.Contains(err.Error(), `unit "w"`) || strings.Contains(err.Error(), "unit w in") {
			return time.Duration(n*168) * time.Hour, nil
		} else if strings.Contains(err.Error(), `unit "y"`) || strings.Contains(err.Error(), "unit y in") {
			return time.Duration(n*8760) * time.Hour, nil
		}
	}
	return 0, err
}
