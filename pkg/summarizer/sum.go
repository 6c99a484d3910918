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
	"github.com/luantruong/flint/pkg/common/ferr"
)

var (
	_ Subtractable[float64, *SumState, float64] = Sum{}
	_ Subtractable[float64, int64, int64]       = Count[float64]{}
)

// SumState holds a count and a compensated running sum.
type SumState struct {
	Count int64
	Sum   *CompensatedSum
}

// Sum is a subtractable compensated sum of float64 values.
type Sum struct{}

func (Sum) Zero() *SumState {
	return &SumState{Sum: &CompensatedSum{}}
}

func (Sum) Add(s *SumState, v float64) (*SumState, error) {
	s.Count++
	s.Sum.Add(v)
	return s, nil
}

func (Sum) Subtract(s *SumState, v float64) (*SumState, error) {
	if s.Count == 0 {
		return nil, ferr.NewEmptyState("cannot subtract from a zero-count sum state")
	}
	if s.Count == 1 {
		return Sum{}.Zero(), nil
	}
	s.Count--
	s.Sum.Add(-v)
	return s, nil
}

func (Sum) Merge(s1, s2 *SumState) (*SumState, error) {
	if s1.Count == 0 {
		return s2, nil
	}
	if s2.Count == 0 {
		return s1, nil
	}
	s1.Sum.Add(s2.Sum.Value)
	s1.Count += s2.Count
	return s1, nil
}

func (Sum) Render(s *SumState) float64 {
	return s.Sum.Value
}

// Count is a subtractable element counter. Its state is a plain int64,
// demonstrating value-typed summarizer states.
type Count[T any] struct{}

func (Count[T]) Zero() int64 {
	return 0
}

func (Count[T]) Add(s int64, _ T) (int64, error) {
	return s + 1, nil
}

func (Count[T]) Subtract(s int64, _ T) (int64, error) {
	if s == 0 {
		return 0, ferr.NewEmptyState("cannot subtract from a zero count")
	}
	return s - 1, nil
}

func (Count[T]) Merge(s1, s2 int64) (int64, error) {
	return s1 + s2, nil
}

func (Count[T]) Render(s int64) int64 {
	return s
}
