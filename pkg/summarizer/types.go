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

// Package summarizer defines the streaming aggregate contracts and the
// concrete subtractable aggregates built on compensated summation.
package summarizer

// Summarizer is a streaming aggregate over input type T with state S
// and output V. Add may mutate and return the same state or return a
// new one; callers must keep using the returned state.
//
// Merge combines two independently accumulated states as if all their
// inputs had been added to one state, and is the identity when either
// side is the zero state. Render reads the current output without
// mutating state and is callable at any point.
type Summarizer[T, S, V any] interface {
	Zero() S
	Add(s S, t T) (S, error)
	Merge(s1, s2 S) (S, error)
	Render(s S) V
}

// Subtractable is a Summarizer whose inputs can be incrementally
// removed, enabling O(1)-amortized sliding-window maintenance.
//
// Subtract fails with ferr.ErrEmptyState when the state's count is
// already zero. It assumes t was previously added and not yet
// subtracted; no multiset verification is performed, the ordering of
// subtracts relative to adds is the caller's responsibility.
type Subtractable[T, S, V any] interface {
	Summarizer[T, S, V]
	Subtract(s S, t T) (S, error)
}
