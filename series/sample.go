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

import "fmt"

// SampleKind discriminates the states a Sample can be in. The set is
// closed: every aggregation operator switches exhaustively over it,
// so adding a kind forces every operator to be revisited.
type SampleKind int

const (
	// KindErr is a sample with no valid value: empty aggregation
	// input or a deliberately invalidated slot.
	KindErr SampleKind = iota
	// KindZero marks an explicit counter reset. Arithmetically it is
	// 0, but it is distinct from Point(0): "the counter restarted
	// here".
	KindZero
	// KindPoint is a real observed or aggregated value.
	KindPoint
	// KindFake is a value synthesized by extrapolation or
	// carry-forward rather than observed. It participates in
	// aggregation, but any window containing a Fake input produces a
	// Fake output, so consumers can discount the result.
	KindFake
)

// Sample is one reading's state: a real point, an explicit reset, an
// extrapolated value, or an error. The zero value of Sample is Err.
type Sample struct {
	kind SampleKind
	val  float64
}

// Point returns a real observed value.
func Point(v float64) Sample { return Sample{kind: KindPoint, val: v} }

// Zero returns a counter-reset marker.
func Zero() Sample { return Sample{kind: KindZero} }

// Fake returns an extrapolated (tainted) value.
func Fake(v float64) Sample { return Sample{kind: KindFake, val: v} }

// Err returns a sample carrying no valid value.
func Err() Sample { return Sample{kind: KindErr} }

func (s Sample) Kind() SampleKind { return s.kind }

// Val always returns a usable scalar: the value for Point and Fake, 0
// for Zero and Err. Callers that care about validity or taint must
// check IsErr / IsFake before trusting the result.
func (s Sample) Val() float64 {
	switch s.kind {
	case KindPoint, KindFake:
		return s.val
	default:
		return 0
	}
}

func (s Sample) IsErr() bool  { return s.kind == KindErr }
func (s Sample) IsZero() bool { return s.kind == KindZero }
func (s Sample) IsFake() bool { return s.kind == KindFake }

// Equals reports whether two samples have the same kind and value.
func (s Sample) Equals(other Sample) bool {
	return s.kind == other.kind && s.Val() == other.Val()
}

func (s Sample) String() string {
	switch s.kind {
	case KindErr:
		return "Err"
	case KindZero:
		return "Zero(0)"
	case KindFake:
		return fmt.Sprintf("Fake(%v)", s.val)
	default:
		return fmt.Sprintf("Point(%v)", s.val)
	}
}

// Element is a single timestamped sample, the unit stored in a
// RawSeries.
type Element struct {
	TS     TimeStamp
	Sample Sample
}

func (e Element) String() string {
	return fmt.Sprintf("%s %s", e.TS, e.Sample)
}
