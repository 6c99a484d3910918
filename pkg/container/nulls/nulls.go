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

// Package nulls wraps the roaring bitmap library to record the NULL
// positions of a column.
package nulls

import (
	roaring "github.com/RoaringBitmap/roaring/roaring64"
)

type Nulls struct {
	Np *roaring.Bitmap
}

func New() *Nulls {
	return &Nulls{}
}

// Any reports whether any NULL position is recorded.
func Any(nsp *Nulls) bool {
	return nsp != nil && nsp.Np != nil && !nsp.Np.IsEmpty()
}

// Add records rows as NULL positions.
func Add(nsp *Nulls, rows ...uint64) {
	if nsp.Np == nil {
		nsp.Np = roaring.NewBitmap()
	}
	nsp.Np.AddMany(rows)
}

// Contains reports whether row is a NULL position.
func Contains(nsp *Nulls, row uint64) bool {
	return nsp != nil && nsp.Np != nil && nsp.Np.Contains(row)
}

// Count returns the number of NULL positions.
func Count(nsp *Nulls) int {
	if nsp == nil || nsp.Np == nil {
		return 0
	}
	return int(nsp.Np.GetCardinality())
}

// Or stores the union of nsp and m into r.
func Or(nsp, m, r *Nulls) {
	r.Np = roaring.NewBitmap()
	if nsp != nil && nsp.Np != nil {
		r.Np.Or(nsp.Np)
	}
	if m != nil && m.Np != nil {
		r.Np.Or(m.Np)
	}
}

// Reset clears all recorded positions.
func Reset(nsp *Nulls) {
	if nsp.Np != nil {
		nsp.Np.Clear()
	}
}
