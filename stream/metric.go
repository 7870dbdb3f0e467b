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

package stream

import (
	"bytes"
	"fmt"

	"github.com/tsroll/tsroll/misc"
)

// Tag is one (name, value) pair identifying a metric. Tags are opaque
// identification metadata; nothing in the engine operates on them.
type Tag struct {
	Name  string
	Value string
}

// Metric is a named, tagged Stream. The tag list is ordered; two
// metrics with the same tags in a different order are different
// metrics.
type Metric struct {
	*Stream
	name string
	tags []Tag
}

// NewMetric returns a Metric with an empty stream. The name is
// sanitized the same way series names arriving over the wire would
// be.
func NewMetric(name string, tags ...Tag) *Metric {
	return &Metric{
		Stream: New(),
		name:   misc.SanitizeName(name),
		tags:   tags,
	}
}

func (m *Metric) Name() string { return m.name }

// Tags returns the metric's tags in their original order. The slice
// must not be modified.
func (m *Metric) Tags() []Tag { return m.tags }

func (m *Metric) String() string {
	var b bytes.Buffer
	b.WriteString(m.name)
	for _, tag := range m.tags {
		fmt.Fprintf(&b, ";%s=%s", tag.Name, tag.Value)
	}
	return b.String()
}
