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

import (
	"math"

	"github.com/luantruong/flint/pkg/common/ferr"
)

var _ Subtractable[float64, *MomentState, float64] = (*NthMoment)(nil)

// MomentState is the state of NthMoment: an element count plus a
// compensated accumulator holding the running mean of value^n.
type MomentState struct {
	Count  int64
	Moment *CompensatedSum
}

// NthMoment tracks the mean of value^n over the live inputs via the
// online mean-update recurrence. For n = 1 this is the true mean; for
// n >= 2 it is the mean of the power-transformed values and NOT a
// central moment, since the mean is not subtracted before raising to
// the power. Callers composing variance or skewness must combine it
// with the first moment themselves.
type NthMoment struct {
	n int
}

// NewNthMoment returns a subtractable summarizer for the n-th moment.
func NewNthMoment(n int) (*NthMoment, error) {
	if n < 0 {
		return nil, ferr.NewInvalidInput("moment order %d is negative", n)
	}
	return &NthMoment{n: n}, nil
}

func (m *NthMoment) Zero() *MomentState {
	return &MomentState{Moment: &CompensatedSum{}}
}

func (m *NthMoment) Add(s *MomentState, v float64) (*MomentState, error) {
	data := math.Pow(v, float64(m.n))
	s.Count++
	if s.Count == 1 {
		s.Moment.Add(data)
	} else {
		s.Moment.Add((data - s.Moment.Value) / float64(s.Count))
	}
	return s, nil
}

func (m *NthMoment) Subtract(s *MomentState, v float64) (*MomentState, error) {
	if s.Count == 0 {
		return nil, ferr.NewEmptyState("cannot subtract from a zero-count moment state")
	}
	// Dropping the last element resets to the zero state, avoiding a
	// division by zero and stale floating residue.
	if s.Count == 1 {
		return m.Zero(), nil
	}
	data := math.Pow(v, float64(m.n))
	s.Count--
	s.Moment.Add(-(data - s.Moment.Value) / float64(s.Count))
	return s, nil
}

func (m *NthMoment) Merge(s1, s2 *MomentState) (*MomentState, error) {
	if s1.Count == 0 {
		return s2, nil
	}
	if s2.Count == 0 {
		return s1, nil
	}
	delta := s2.Moment.Value - s1.Moment.Value
	total := s1.Count + s2.Count
	s1.Moment.Add(float64(s2.Count) * delta / float64(total))
	s1.Count = total
	return s1, nil
}

func (m *NthMoment) Render(s *MomentState) float64 {
	return s.Moment.Value
}
