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
	"bytes"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/luantruong/flint/pkg/common/ferr"
	"github.com/luantruong/flint/pkg/container/row"
	"github.com/luantruong/flint/pkg/container/types"
)

// DecodeRows reads back the single record batch of a payload produced
// by EncodeRows.
func DecodeRows(s *row.Schema, payload []byte) ([]row.Row, error) {
	rec, release, err := readRecord(payload)
	if err != nil {
		return nil, err
	}
	defer release()

	if int(rec.NumCols()) != s.NumFields() {
		return nil, ferr.NewLengthMismatch("payload has %d columns, schema has %d fields", rec.NumCols(), s.NumFields())
	}

	n := int(rec.NumRows())
	rows := make([]row.Row, n)
	for i := range rows {
		rows[i] = make(row.Row, s.NumFields())
	}
	for col := 0; col < s.NumFields(); col++ {
		if err := readColumn(rows, rec.Column(col), s.Field(col), col); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// DecodeIndices reads back the begin/end arrays of a payload produced
// by EncodeIndices.
func DecodeIndices(payload []byte) (begins, ends []int64, err error) {
	rec, release, err := readRecord(payload)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	if rec.NumCols() != 2 {
		return nil, nil, ferr.NewLengthMismatch("index payload has %d columns, want 2", rec.NumCols())
	}
	b, ok := rec.Column(0).(*array.Int64)
	if !ok {
		return nil, nil, ferr.NewInvalidInput("begin column is not int64")
	}
	e, ok := rec.Column(1).(*array.Int64)
	if !ok {
		return nil, nil, ferr.NewInvalidInput("end column is not int64")
	}

	begins = make([]int64, b.Len())
	copy(begins, b.Int64Values())
	ends = make([]int64, e.Len())
	copy(ends, e.Int64Values())
	return begins, ends, nil
}

func readRecord(payload []byte) (arrow.Record, func(), error) {
	rdr, err := ipc.NewReader(bytes.NewReader(payload), ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, nil, err
	}
	if !rdr.Next() {
		rdr.Release()
		if err := rdr.Err(); err != nil {
			return nil, nil, err
		}
		return nil, nil, ferr.NewInvalidInput("payload holds no record batch")
	}
	rec := rdr.Record()
	rec.Retain()
	return rec, func() {
		rec.Release()
		rdr.Release()
	}, nil
}

func readColumn(rows []row.Row, col arrow.Array, f row.Field, idx int) error {
	// The payload is self-describing, so its physical column types may
	// disagree with the caller's schema; never trust the assertion.
	switch f.Typ {
	case types.T_bool:
		arr, ok := col.(*array.Boolean)
		if !ok {
			return badColumn(f, col)
		}
		for i := range rows {
			if !arr.IsNull(i) {
				rows[i][idx] = arr.Value(i)
			}
		}
	case types.T_int32:
		arr, ok := col.(*array.Int32)
		if !ok {
			return badColumn(f, col)
		}
		for i := range rows {
			if !arr.IsNull(i) {
				rows[i][idx] = arr.Value(i)
			}
		}
	case types.T_int64:
		arr, ok := col.(*array.Int64)
		if !ok {
			return badColumn(f, col)
		}
		for i := range rows {
			if !arr.IsNull(i) {
				rows[i][idx] = arr.Value(i)
			}
		}
	case types.T_float64:
		arr, ok := col.(*array.Float64)
		if !ok {
			return badColumn(f, col)
		}
		for i := range rows {
			if !arr.IsNull(i) {
				rows[i][idx] = arr.Value(i)
			}
		}
	case types.T_timestamp:
		arr, ok := col.(*array.Timestamp)
		if !ok {
			return badColumn(f, col)
		}
		for i := range rows {
			if !arr.IsNull(i) {
				rows[i][idx] = int64(arr.Value(i))
			}
		}
	case types.T_varchar:
		arr, ok := col.(*array.String)
		if !ok {
			return badColumn(f, col)
		}
		for i := range rows {
			if !arr.IsNull(i) {
				rows[i][idx] = arr.Value(i)
			}
		}
	default:
		return ferr.NewInternal("no reader for type %s", f.Typ)
	}
	return nil
}

func badColumn(f row.Field, col arrow.Array) error {
	return ferr.NewInvalidInput("payload column %s is not a %s for field %s", col.DataType(), f.Typ, f.Name)
}
