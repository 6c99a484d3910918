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
	"go.uber.org/zap"

	"github.com/luantruong/flint/pkg/container/row"
	"github.com/luantruong/flint/pkg/logutil"
)

// Sink renders the finalized contents of a window batch into an output
// record of type O.
type Sink[K comparable, O any] interface {
	Render(st *State[K]) (O, error)
}

// BatchSummarizer drives the per-batch window state machine through
// the protocol
//
//	Zero -> {AddLeft, AddRight, SubtractRight, CommitLeft}* -> Render
//
// and hands the finalized state to its sink. One instance runs per
// data partition; instances share nothing.
type BatchSummarizer[K comparable, O any] struct {
	sink Sink[K, O]
}

func NewBatchSummarizer[K comparable, O any](sink Sink[K, O]) *BatchSummarizer[K, O] {
	return &BatchSummarizer[K, O]{sink: sink}
}

// Zero returns the empty state of a new batch.
func (b *BatchSummarizer[K, O]) Zero() *State[K] {
	return NewState[K]()
}

func (b *BatchSummarizer[K, O]) AddLeft(st *State[K], key K, r row.Row) error {
	return st.AddLeft(key, r)
}

func (b *BatchSummarizer[K, O]) AddRight(st *State[K], key K, r row.Row) {
	st.AddRight(key, r)
}

func (b *BatchSummarizer[K, O]) SubtractRight(st *State[K], key K, r row.Row) {
	st.SubtractRight(key, r)
}

func (b *BatchSummarizer[K, O]) CommitLeft(st *State[K], key K, r row.Row) error {
	return st.CommitLeft(key, r)
}

// Render finalizes the state (flatten + rebase) and emits the batch
// through the sink. It is terminal: the state cannot be rendered or
// mutated again.
func (b *BatchSummarizer[K, O]) Render(st *State[K]) (O, error) {
	if err := st.finalize(); err != nil {
		var zero O
		return zero, err
	}
	logutil.Debug("window batch finalized",
		zap.Int("leftRows", len(st.leftRows)),
		zap.Int("rightRows", len(st.flattened)),
		zap.Int("keys", len(st.rightRows)))
	return b.sink.Render(st)
}
