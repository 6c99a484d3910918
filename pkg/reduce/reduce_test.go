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

package reduce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luantruong/flint/pkg/summarizer"
)

// momentStates builds one single-value state per input value, the way
// per-partition workers would hand them over.
func momentStates(t *testing.T, m *summarizer.NthMoment, values []float64) []*summarizer.MomentState {
	t.Helper()
	states := make([]*summarizer.MomentState, len(values))
	for i, v := range values {
		s, err := m.Add(m.Zero(), v)
		require.NoError(t, err)
		states[i] = s
	}
	return states
}

func TestCombineMatchesSequentialFold(t *testing.T) {
	m, err := summarizer.NewNthMoment(2)
	require.NoError(t, err)

	values := make([]float64, 0, 1000)
	for i := 0; i < 1000; i++ {
		values = append(values, float64(i)*0.25)
	}
	direct, err := m.Zero(), error(nil)
	for _, v := range values {
		direct, err = m.Add(direct, v)
		require.NoError(t, err)
	}

	for _, parallelism := range []int{1, 2, 4, 7, 16} {
		// Merge consumes its inputs, so each round gets fresh states.
		states := momentStates(t, m, values)
		got, err := Combine[float64, *summarizer.MomentState, float64](m, states, parallelism)
		require.NoError(t, err)
		require.Equal(t, direct.Count, got.Count)
		require.InEpsilon(t, m.Render(direct), m.Render(got), 1e-12,
			"parallelism %d", parallelism)
	}
}

func TestCombineEmpty(t *testing.T) {
	m, err := summarizer.NewNthMoment(1)
	require.NoError(t, err)

	got, err := Combine[float64, *summarizer.MomentState, float64](m, nil, 4)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.Count)
	require.Equal(t, 0.0, m.Render(got))
}

func TestCombineSingleState(t *testing.T) {
	m, err := summarizer.NewNthMoment(1)
	require.NoError(t, err)

	s, err := m.Add(m.Zero(), 42.0)
	require.NoError(t, err)

	got, err := Combine[float64, *summarizer.MomentState, float64](m, []*summarizer.MomentState{s}, 8)
	require.NoError(t, err)
	require.Equal(t, 42.0, m.Render(got))
}

func TestCombineUnevenShardSplit(t *testing.T) {
	// 5 states at parallelism 4 gives ceiling shard size 2; the last
	// shard starts past the end and must fold as empty, not panic.
	m, err := summarizer.NewNthMoment(1)
	require.NoError(t, err)

	states := momentStates(t, m, []float64{1, 2, 3, 4, 5})
	got, err := Combine[float64, *summarizer.MomentState, float64](m, states, 4)
	require.NoError(t, err)
	require.Equal(t, int64(5), got.Count)
	require.InEpsilon(t, 3.0, m.Render(got), 1e-12)
}

func TestCombineParallelismAboveStateCount(t *testing.T) {
	m, err := summarizer.NewNthMoment(1)
	require.NoError(t, err)

	states := momentStates(t, m, []float64{1, 2, 3})
	got, err := Combine[float64, *summarizer.MomentState, float64](m, states, 64)
	require.NoError(t, err)
	require.InEpsilon(t, 2.0, m.Render(got), 1e-12)
}

func TestCombineSum(t *testing.T) {
	var sum summarizer.Sum
	states := make([]*summarizer.SumState, 100)
	for i := range states {
		s, err := sum.Add(sum.Zero(), float64(i))
		require.NoError(t, err)
		states[i] = s
	}

	got, err := Combine[float64, *summarizer.SumState, float64](sum, states, 4)
	require.NoError(t, err)
	require.Equal(t, 4950.0, sum.Render(got))
	require.Equal(t, int64(100), got.Count)
}
