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
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/luantruong/flint/pkg/codec"
	"github.com/luantruong/flint/pkg/container/row"
)

// Columnar is the production output record of a batch. Buffers are
// independently decodable Arrow IPC payloads; BaseRows keeps the left
// rows live so a downstream stage can reconstruct per-row context
// without decoding.
type Columnar struct {
	// BaseRows are the original left rows, uninterpreted by the
	// binary layout.
	BaseRows []row.Row

	// LeftBatch is nil when the left pruned schema is empty; LeftCount
	// is set regardless.
	LeftBatch []byte
	LeftCount int64

	// RightBatch is nil iff the right pruned schema is empty;
	// RightCount is set regardless.
	RightBatch []byte
	RightCount int64

	// Indices encodes the begin/end columns, one pair per left row,
	// as offsets into the flattened right-row array.
	Indices []byte
}

// ColumnarSink renders a batch into Arrow-encoded buffers, projecting
// left and right rows through their pruned schemas first.
type ColumnarSink[K comparable] struct {
	leftPruned  *row.Projection
	rightPruned *row.Projection
	opts        []codec.Option
}

var _ Sink[string, *Columnar] = (*ColumnarSink[string])(nil)

// NewColumnarSink builds the production sink. The right pruned
// projection is assumed non-trivial; an empty left projection skips
// the left buffer entirely.
func NewColumnarSink[K comparable](leftPruned, rightPruned *row.Projection, opts ...codec.Option) *ColumnarSink[K] {
	return &ColumnarSink[K]{leftPruned: leftPruned, rightPruned: rightPruned, opts: opts}
}

func (c *ColumnarSink[K]) Render(st *State[K]) (*Columnar, error) {
	out := &Columnar{
		BaseRows:   st.leftRows,
		LeftCount:  int64(len(st.leftRows)),
		RightCount: int64(len(st.flattened)),
	}

	// Each encode call owns a transient allocation scope.
	mem := memory.NewGoAllocator()

	if c.leftPruned.NumFields() > 0 {
		buf, err := codec.EncodeRows(mem, c.leftPruned.Schema(), c.leftPruned.ApplyAll(st.leftRows), c.opts...)
		if err != nil {
			return nil, err
		}
		out.LeftBatch = buf
	}

	if c.rightPruned.NumFields() > 0 {
		buf, err := codec.EncodeRows(mem, c.rightPruned.Schema(), c.rightPruned.ApplyAll(st.flattened), c.opts...)
		if err != nil {
			return nil, err
		}
		out.RightBatch = buf
	}

	indices, err := codec.EncodeIndices(mem, st.begins, st.ends, c.opts...)
	if err != nil {
		return nil, err
	}
	out.Indices = indices
	return out, nil
}
