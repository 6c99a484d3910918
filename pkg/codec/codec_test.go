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

package codec

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/luantruong/flint/pkg/common/ferr"
	"github.com/luantruong/flint/pkg/config"
	"github.com/luantruong/flint/pkg/container/row"
	"github.com/luantruong/flint/pkg/container/types"
)

func testSchema(t *testing.T) *row.Schema {
	t.Helper()
	s, err := row.NewSchema([]row.Field{
		{Name: "time", Typ: types.T_timestamp},
		{Name: "id", Typ: types.T_varchar},
		{Name: "price", Typ: types.T_float64, Nullable: true},
		{Name: "volume", Typ: types.T_int64},
		{Name: "active", Typ: types.T_bool},
		{Name: "seq", Typ: types.T_int32},
	})
	require.NoError(t, err)
	return s
}

func testRows() []row.Row {
	return []row.Row{
		{int64(1000), "7203.TKS", 300.25, int64(10), true, int32(1)},
		{int64(1050), "7203.TKS", nil, int64(20), false, int32(2)},
		{int64(1100), "6758.TKS", 305.00, int64(30), true, int32(3)},
	}
}

func TestEncodeRowsRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	s := testSchema(t)
	in := testRows()

	payload, err := EncodeRows(mem, s, in)
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	out, err := DecodeRows(s, payload)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestEncodeRowsEmptyBatch(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	s := testSchema(t)
	payload, err := EncodeRows(mem, s, nil)
	require.NoError(t, err)

	out, err := DecodeRows(s, payload)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestEncodeRowsEmptySchema(t *testing.T) {
	s, err := row.NewSchema(nil)
	require.NoError(t, err)
	_, err = EncodeRows(nil, s, testRows())
	require.True(t, ferr.IsError(err, ferr.ErrInvalidInput))
}

func TestEncodeRowsBadValue(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	s := testSchema(t)
	bad := testRows()
	bad[1][3] = "not an int64"
	_, err := EncodeRows(mem, s, bad)
	require.True(t, ferr.IsError(err, ferr.ErrInvalidInput))
}

func TestEncodeRowsNullInNonNullable(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	s := testSchema(t)
	bad := testRows()
	bad[0][1] = nil
	_, err := EncodeRows(mem, s, bad)
	require.True(t, ferr.IsError(err, ferr.ErrInvalidInput))
}

func TestEncodeRowsCompression(t *testing.T) {
	s := testSchema(t)
	in := testRows()

	for _, opts := range [][]Option{
		{WithLZ4()},
		{WithZstd()},
		OptionsFromConfig(config.CodecConfig{Compression: config.CompressionLZ4}),
		OptionsFromConfig(config.CodecConfig{Compression: config.CompressionNone}),
	} {
		payload, err := EncodeRows(nil, s, in, opts...)
		require.NoError(t, err)
		out, err := DecodeRows(s, payload)
		require.NoError(t, err)
		require.Equal(t, in, out)
	}
}

func TestEncodeIndicesRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	begins := []int64{0, 1, 5}
	ends := []int64{3, 3, 9}
	payload, err := EncodeIndices(mem, begins, ends)
	require.NoError(t, err)

	b, e, err := DecodeIndices(payload)
	require.NoError(t, err)
	require.Equal(t, begins, b)
	require.Equal(t, ends, e)
}

func TestEncodeIndicesLengthMismatch(t *testing.T) {
	_, err := EncodeIndices(nil, []int64{0, 1}, []int64{1})
	require.True(t, ferr.IsError(err, ferr.ErrLengthMismatch))
}

func TestDecodeRowsColumnTypeMismatch(t *testing.T) {
	s := testSchema(t)
	payload, err := EncodeRows(nil, s, testRows())
	require.NoError(t, err)

	// Same arity, different physical column types.
	wrong, err := row.NewSchema([]row.Field{
		{Name: "time", Typ: types.T_bool},
		{Name: "id", Typ: types.T_int64},
		{Name: "price", Typ: types.T_varchar, Nullable: true},
		{Name: "volume", Typ: types.T_float64},
		{Name: "active", Typ: types.T_int32},
		{Name: "seq", Typ: types.T_timestamp},
	})
	require.NoError(t, err)

	_, err = DecodeRows(wrong, payload)
	require.True(t, ferr.IsError(err, ferr.ErrInvalidInput))
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeRows(testSchema(t), []byte("not arrow"))
	require.Error(t, err)
	_, _, err = DecodeIndices([]byte{1, 2, 3})
	require.Error(t, err)
}
