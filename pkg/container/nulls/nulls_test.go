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

package nulls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNulls(t *testing.T) {
	nsp := New()
	require.False(t, Any(nsp))
	require.Equal(t, 0, Count(nsp))

	Add(nsp, 1, 3, 3)
	require.True(t, Any(nsp))
	require.Equal(t, 2, Count(nsp))
	require.True(t, Contains(nsp, 3))
	require.False(t, Contains(nsp, 2))

	other := New()
	Add(other, 2)
	union := New()
	Or(nsp, other, union)
	require.Equal(t, 3, Count(union))

	Reset(nsp)
	require.False(t, Any(nsp))
}

func TestNullsNilSafety(t *testing.T) {
	require.False(t, Any(nil))
	require.False(t, Contains(nil, 0))
	require.Equal(t, 0, Count(nil))
}
