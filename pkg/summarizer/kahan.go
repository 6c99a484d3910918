// Copyright 2024 Flint Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package summarizer

// CompensatedSum is a float64 running sum using Kahan summation. The
// compensation term keeps the accumulated rounding error below naive
// `+=` accumulation. Non-finite inputs propagate per IEEE-754.
type CompensatedSum struct {
	// Value is the current running sum.
	Value float64

	// delta is the running compensation for lost low-order bits.
	delta float64
}

// Add folds x into the running sum and returns the receiver.
func (s *CompensatedSum) Add(x float64) *CompensatedSum {
	y := x - s.delta
	t := s.Value + y
	s.delta = (t - s.Value) - y
	s.Value = t
	return s
}
