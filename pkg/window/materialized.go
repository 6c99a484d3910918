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

package window

import (
	"github.com/luantruong/flint/pkg/container/row"
)

// Range is one left row's [Begin, End) window into the flattened
// right-row array.
type Range struct {
	Begin int64
	End   int64
}

// Materialized is the diagnostic output record: literal sequences
// instead of encoded buffers. For test harnesses only.
type Materialized struct {
	LeftRows  []row.Row
	RightRows []row.Row
	Ranges    []Range
}

// MaterializedSink renders a batch as literal nested sequences.
type MaterializedSink[K comparable] struct{}

var _ Sink[string, *Materialized] = MaterializedSink[string]{}

func (MaterializedSink[K]) Render(st *State[K]) (*Materialized, error) {
	ranges := make([]Range, len(st.begins))
	for i := range ranges {
		ranges[i] = Range{Begin: st.begins[i], End: st.ends[i]}
	}
	return &Materialized{
		LeftRows:  st.leftRows,
		RightRows: st.flattened,
		Ranges:    ranges,
	}, nil
}
