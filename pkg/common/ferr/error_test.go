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

package ferr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	err := NewInvalidState("render called twice")
	require.True(t, IsError(err, ErrInvalidState))
	require.False(t, IsError(err, ErrEmptyState))
	require.Equal(t, ErrInvalidState, err.Code())
	require.Contains(t, err.Error(), "invalid state")
	require.Contains(t, err.Error(), "render called twice")
}

func TestIsErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("batch 3: %w", NewEmptyState("subtract on zero-count state"))
	require.True(t, IsError(err, ErrEmptyState))
	require.False(t, IsError(fmt.Errorf("plain"), ErrEmptyState))
}
