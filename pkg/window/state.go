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

// Package window maintains per-key sliding-window cursors over
// append-only row buffers and renders the accumulated window contents
// of a batch through a pluggable output sink.
package window

import (
	"github.com/luantruong/flint/pkg/common/ferr"
	"github.com/luantruong/flint/pkg/container/row"
)

// cursor is the live [begin, end) window of one secondary key,
// expressed as counts of entries logically subtracted and added.
// Both fields only ever grow.
type cursor struct {
	begin int64
	end   int64
}

// State is the mutable per-batch window state. One instance belongs to
// exactly one BatchSummarizer invocation: created empty, mutated by
// the driver protocol, finalized once by render, then discarded.
//
// Right rows are never removed from their bucket when the window
// slides past them; membership is defined by the per-key cursor, not
// by physical position.
type State[K comparable] struct {
	leftRows []row.Row
	keys     []K

	rightRows map[K][]row.Row
	cursors   map[K]*cursor

	// begins/ends are index-aligned with leftRows. Before finalize
	// they hold per-key local offsets; after finalize they are global
	// offsets into flattened.
	begins []int64
	ends   []int64

	flattened []row.Row
	finalized bool
}

// NewState returns the empty state of a fresh batch.
func NewState[K comparable]() *State[K] {
	return &State[K]{
		rightRows: make(map[K][]row.Row),
		cursors:   make(map[K]*cursor),
	}
}

// AddLeft appends a primary row and its secondary key. The window
// boundaries of the row are not known yet; they are recorded later by
// CommitLeft.
func (s *State[K]) AddLeft(key K, r row.Row) error {
	n := len(s.leftRows)
	if len(s.keys) != n || len(s.begins) != n || len(s.ends) != n {
		return ferr.NewLengthMismatch(
			"window state out of sync: %d left rows, %d keys, %d begin indices, %d end indices",
			n, len(s.keys), len(s.begins), len(s.ends))
	}
	s.leftRows = append(s.leftRows, r)
	s.keys = append(s.keys, key)
	return nil
}

// AddRight appends a companion row entering key's current window and
// advances the key's end cursor. The bucket is created on first sight
// with both cursors at zero.
func (s *State[K]) AddRight(key K, r row.Row) {
	c, ok := s.cursors[key]
	if !ok {
		c = &cursor{}
		s.cursors[key] = c
	}
	s.rightRows[key] = append(s.rightRows[key], r)
	c.end++
}

// SubtractRight records a companion row leaving key's current window.
// Only the begin cursor moves; storage is untouched.
func (s *State[K]) SubtractRight(key K, _ row.Row) {
	c, ok := s.cursors[key]
	if !ok {
		c = &cursor{}
		s.cursors[key] = c
	}
	c.begin++
}

// CommitLeft snapshots key's current cursor as the window boundaries
// of the most recently added left row. It must be called exactly once
// per left row, after every AddRight/SubtractRight relevant to that
// row's window.
func (s *State[K]) CommitLeft(key K, _ row.Row) error {
	if len(s.begins) >= len(s.leftRows) {
		return ferr.NewInvalidState("commit without a pending left row")
	}
	c, ok := s.cursors[key]
	if !ok {
		c = &cursor{}
		s.cursors[key] = c
	}
	s.begins = append(s.begins, c.begin)
	s.ends = append(s.ends, c.end)
	return nil
}

// finalize flattens the right-row buckets of every key referenced by a
// left row, in first-appearance order, and rebases begins/ends from
// per-key-local offsets to offsets into the flattened array. Buckets
// whose key is never referenced are pruned. Fails when called twice.
func (s *State[K]) finalize() error {
	if s.finalized {
		return ferr.NewInvalidState("window state already finalized")
	}
	if len(s.begins) != len(s.leftRows) || len(s.ends) != len(s.leftRows) {
		return ferr.NewLengthMismatch(
			"finalize with %d committed of %d left rows", len(s.begins), len(s.leftRows))
	}

	baseOffsets := make(map[K]int64, len(s.rightRows))
	flattened := make([]row.Row, 0, s.totalRightRows())
	for _, key := range s.keys {
		if _, seen := baseOffsets[key]; seen {
			continue
		}
		baseOffsets[key] = int64(len(flattened))
		flattened = append(flattened, s.rightRows[key]...)
	}

	for i, key := range s.keys {
		base := baseOffsets[key]
		s.begins[i] += base
		s.ends[i] += base
	}

	s.flattened = flattened
	s.finalized = true
	return nil
}

func (s *State[K]) totalRightRows() int {
	total := 0
	for _, bucket := range s.rightRows {
		total += len(bucket)
	}
	return total
}

// LeftRows returns the primary rows in arrival order.
func (s *State[K]) LeftRows() []row.Row {
	return s.leftRows
}

// RightRows returns the flattened companion rows; nil before finalize.
func (s *State[K]) RightRows() []row.Row {
	return s.flattened
}

// Begins returns the begin boundary of each left row's window.
func (s *State[K]) Begins() []int64 {
	return s.begins
}

// Ends returns the end boundary of each left row's window.
func (s *State[K]) Ends() []int64 {
	return s.ends
}
