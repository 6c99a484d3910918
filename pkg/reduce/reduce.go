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

// Package reduce folds per-partition summarizer states into one.
// Merge associativity lets the fold be sharded across a worker pool;
// the final fold over shard results is always sequential.
package reduce

import (
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/luantruong/flint/pkg/common/ferr"
	"github.com/luantruong/flint/pkg/logutil"
	"github.com/luantruong/flint/pkg/summarizer"
)

// Combine merges states left to right. With parallelism > 1 the slice
// is cut into contiguous shards folded concurrently; shard results are
// then folded in shard order, so a non-commutative Merge still sees a
// deterministic sequence. The first worker error aborts the result.
func Combine[T, S, V any](sm summarizer.Summarizer[T, S, V], states []S, parallelism int) (S, error) {
	if parallelism <= 1 || len(states) <= 2 {
		return fold(sm, sm.Zero(), states)
	}
	if parallelism > len(states) {
		parallelism = len(states)
	}

	pool, err := ants.NewPool(parallelism)
	if err != nil {
		var zero S
		return zero, ferr.NewInternal("reduce pool: %v", err)
	}
	defer pool.Release()

	shards := make([]S, parallelism)
	errs := make([]error, parallelism)
	var wg sync.WaitGroup

	per := (len(states) + parallelism - 1) / parallelism
	for i := 0; i < parallelism; i++ {
		// With a ceiling shard size the tail shards can start past the
		// end; clamp both bounds so they fold the empty slice.
		lo := i * per
		if lo > len(states) {
			lo = len(states)
		}
		hi := lo + per
		if hi > len(states) {
			hi = len(states)
		}
		i, lo, hi := i, lo, hi
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			shards[i], errs[i] = fold(sm, sm.Zero(), states[lo:hi])
		})
		if submitErr != nil {
			// Pool refused the task; fold the shard inline.
			shards[i], errs[i] = fold(sm, sm.Zero(), states[lo:hi])
			wg.Done()
		}
	}
	wg.Wait()

	for i, e := range errs {
		if e != nil {
			logutil.Error("reduce shard failed",
				zap.Int("shard", i), zap.Error(e))
			var zero S
			return zero, e
		}
	}
	return fold(sm, sm.Zero(), shards)
}

func fold[T, S, V any](sm summarizer.Summarizer[T, S, V], acc S, states []S) (S, error) {
	for _, s := range states {
		merged, err := sm.Merge(acc, s)
		if err != nil {
			var zero S
			return zero, err
		}
		acc = merged
	}
	return acc, nil
}
