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

// ElementOp reduces one bucket's worth of timestamped samples to a
// single output sample. Operators are pure and total: they never
// panic, and they are defined for the empty slice (Err, except Sum
// which returns Point(0)). A bad bucket is reported in-band as an Err
// sample so that one bad bucket does not invalidate the rest of a
// series build.
type ElementOp func([]Element) Sample

// SampleOp is the ElementOp analogue for plain samples without
// timestamps. It is used to re-aggregate an already aligned series,
// e.g. computing deltas between consecutive buckets.
type SampleOp func([]Sample) Sample

// ElementOpNamed returns the element operator registered under the
// given name. The operator set is closed.
func ElementOpNamed(name string) (ElementOp, error) {
	switch name {
	case "max":
		return Max, nil
	case "min":
		return Min, nil
	case "sum":
		return Sum, nil
	case "mean":
		return Mean, nil
	case "oldest":
		return Oldest, nil
	case "youngest":
		return Youngest, nil
	case "delta":
		return Delta, nil
	}
	return nil, fmt.Errorf("invalid op: %q (valid ops: max, min, sum, mean, oldest, youngest, delta)", name)
}

// SampleOpNamed returns the sample operator registered under the
// given name.
func SampleOpNamed(name string) (SampleOp, error) {
	switch name {
	case "max":
		return MaxSamples, nil
	case "min":
		return MinSamples, nil
	case "sum":
		return SumSamples, nil
	case "mean":
		return MeanSamples, nil
	case "oldest":
		return OldestSamples, nil
	case "youngest":
		return YoungestSamples, nil
	case "delta":
		return DeltaSamples, nil
	}
	return nil, fmt.Errorf("invalid op: %q (valid ops: max, min, sum, mean, oldest, youngest, delta)", name)
}

// Max returns the largest value in the bucket. Zero samples count as
// 0, Err samples are skipped. If any input is Fake the result is
// Fake (the taint propagates). Empty or all-Err input yields Err.
func Max(elems []Element) Sample {
	found, tainted := false, false
	var max float64
	for _, e := range elems {
		switch e.Sample.Kind() {
		case KindErr:
			continue
		case KindFake:
			tainted = true
		}
		if v := e.Sample.Val(); !found || v > max {
			max = v
			found = true
		}
	}
	return extremum(max, found, tainted)
}

// Min returns the smallest value in the bucket, with the same Zero,
// Err and Fake handling as Max.
func Min(elems []Element) Sample {
	found, tainted := false, false
	var min float64
	for _, e := range elems {
		switch e.Sample.Kind() {
		case KindErr:
			continue
		case KindFake:
			tainted = true
		}
		if v := e.Sample.Val(); !found || v < min {
			min = v
			found = true
		}
	}
	return extremum(min, found, tainted)
}

// Sum returns the arithmetic sum over Val() of every element (Zero
// and Err contribute 0). The sum of an empty bucket is Point(0). A
// Fake input taints the result.
func Sum(elems []Element) Sample {
	var sum float64
	tainted := false
	for _, e := range elems {
		if e.Sample.IsFake() {
			tainted = true
		}
		sum += e.Sample.Val()
	}
	if tainted {
		return Fake(sum)
	}
	return Point(sum)
}

// Mean returns the sum divided by the number of elements. An empty
// bucket yields Err. A Fake input taints the result.
func Mean(elems []Element) Sample {
	if len(elems) == 0 {
		return Err()
	}
	var sum float64
	tainted := false
	for _, e := range elems {
		if e.Sample.IsFake() {
			tainted = true
		}
		sum += e.Sample.Val()
	}
	mean := sum / float64(len(elems))
	if tainted {
		return Fake(mean)
	}
	return Point(mean)
}

// Oldest returns the first element's sample verbatim, kind included.
// Err for an empty bucket.
func Oldest(elems []Element) Sample {
	if len(elems) == 0 {
		return Err()
	}
	return elems[0].Sample
}

// Youngest returns the last element's sample verbatim, kind included.
// Err for an empty bucket.
func Youngest(elems []Element) Sample {
	if len(elems) == 0 {
		return Err()
	}
	return elems[len(elems)-1].Sample
}

// Delta is defined for exactly two inputs, interpreted as the
// previous and the last reading of a counter; any other input length
// yields Err. If the counter increased, the difference is returned.
// A decrease signals a counter reset, in which case the last value is
// returned as a conservative approximation of the increase since the
// reset.
// TODO: a reset should really be measured from the Zero point, not
// approximated by the last value.
func Delta(elems []Element) Sample {
	if len(elems) != 2 {
		return Err()
	}
	return deltaPair(elems[0].Sample, elems[1].Sample)
}

// MaxSamples is Max over plain samples.
func MaxSamples(smps []Sample) Sample {
	found, tainted := false, false
	var max float64
	for _, s := range smps {
		switch s.Kind() {
		case KindErr:
			continue
		case KindFake:
			tainted = true
		}
		if v := s.Val(); !found || v > max {
			max = v
			found = true
		}
	}
	return extremum(max, found, tainted)
}

// MinSamples is Min over plain samples.
func MinSamples(smps []Sample) Sample {
	found, tainted := false, false
	var min float64
	for _, s := range smps {
		switch s.Kind() {
		case KindErr:
			continue
		case KindFake:
			tainted = true
		}
		if v := s.Val(); !found || v < min {
			min = v
			found = true
		}
	}
	return extremum(min, found, tainted)
}

// SumSamples is Sum over plain samples.
func SumSamples(smps []Sample) Sample {
	var sum float64
	tainted := false
	for _, s := range smps {
		if s.IsFake() {
			tainted = true
		}
		sum += s.Val()
	}
	if tainted {
		return Fake(sum)
	}
	return Point(sum)
}

// MeanSamples is Mean over plain samples.
func MeanSamples(smps []Sample) Sample {
	if len(smps) == 0 {
		return Err()
	}
	var sum float64
	tainted := false
	for _, s := range smps {
		if s.IsFake() {
			tainted = true
		}
		sum += s.Val()
	}
	mean := sum / float64(len(smps))
	if tainted {
		return Fake(mean)
	}
	return Point(mean)
}

// OldestSamples is Oldest over plain samples.
func OldestSamples(smps []Sample) Sample {
	if len(smps) == 0 {
		return Err()
	}
	return smps[0]
}

// YoungestSamples is Youngest over plain samples.
func YoungestSamples(smps []Sample) Sample {
	if len(smps) == 0 {
		return Err()
	}
	return smps[len(smps)-1]
}

// DeltaSamples is Delta over plain samples, used for the sliding
// re-aggregation of an aligned counter series into a rate-like
// series.
func DeltaSamples(smps []Sample) Sample {
	if len(smps) != 2 {
		return Err()
	}
	return deltaPair(smps[0], smps[1])
}

func deltaPair(prev, last Sample) Sample {
	tainted := prev.IsFake() || last.IsFake()
	pv, lv := prev.Val(), last.Val()
	d := lv - pv
	if lv <= pv {
		d = lv // counter reset, see Delta
	}
	if tainted {
		return Fake(d)
	}
	return Point(d)
}

func extremum(v float64, found, tainted bool) Sample {
	if !found {
		return Err()
	}
	if tainted {
		return Fake(v)
	}
	return Point(v)
}
