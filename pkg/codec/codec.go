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

// Package codec serializes row batches and boundary-index arrays into
// self-describing Arrow IPC payloads. Every encode call owns a
// transient allocation scope: builders, records and writers are
// released on all exit paths, so no allocator state survives a call.
package codec

import (
	"bytes"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/luantruong/flint/pkg/common/ferr"
	"github.com/luantruong/flint/pkg/config"
	"github.com/luantruong/flint/pkg/container/nulls"
	"github.com/luantruong/flint/pkg/container/row"
	"github.com/luantruong/flint/pkg/container/types"
)

// Option adjusts how a payload is written.
type Option func(*encodeOptions)

type encodeOptions struct {
	compression string
}

// WithLZ4 enables LZ4 frame compression of the IPC body.
func WithLZ4() Option {
	return func(o *encodeOptions) { o.compression = config.CompressionLZ4 }
}

// WithZstd enables zstd compression of the IPC body.
func WithZstd() Option {
	return func(o *encodeOptions) { o.compression = config.CompressionZstd }
}

// OptionsFromConfig maps the [codec] config section to options.
func OptionsFromConfig(c config.CodecConfig) []Option {
	switch c.Compression {
	case config.CompressionLZ4:
		return []Option{WithLZ4()}
	case config.CompressionZstd:
		return []Option{WithZstd()}
	}
	return nil
}

func (o *encodeOptions) ipcOptions(schema *arrow.Schema, mem memory.Allocator) []ipc.Option {
	opts := []ipc.Option{ipc.WithSchema(schema), ipc.WithAllocator(mem)}
	switch o.compression {
	case config.CompressionLZ4:
		opts = append(opts, ipc.WithLZ4())
	case config.CompressionZstd:
		opts = append(opts, ipc.WithZstd())
	}
	return opts
}

// ArrowSchema converts an engine schema to its Arrow equivalent.
func ArrowSchema(s *row.Schema) (*arrow.Schema, error) {
	fields := make([]arrow.Field, s.NumFields())
	for i, f := range s.Fields() {
		var dt arrow.DataType
		switch f.Typ {
		case types.T_bool:
			dt = arrow.FixedWidthTypes.Boolean
		case types.T_int32:
			dt = arrow.PrimitiveTypes.Int32
		case types.T_int64:
			dt = arrow.PrimitiveTypes.Int64
		case types.T_float64:
			dt = arrow.PrimitiveTypes.Float64
		case types.T_timestamp:
			dt = arrow.FixedWidthTypes.Timestamp_ns
		case types.T_varchar:
			dt = arrow.BinaryTypes.String
		default:
			return nil, ferr.NewInternal("no arrow mapping for type %s", f.Typ)
		}
		fields[i] = arrow.Field{Name: f.Name, Type: dt, Nullable: f.Nullable}
	}
	return arrow.NewSchema(fields, nil), nil
}

// EncodeRows serializes rows against schema into one Arrow IPC payload
// holding exactly one record batch. A nil allocator gets a fresh
// per-call allocator.
func EncodeRows(mem memory.Allocator, s *row.Schema, rows []row.Row, opts ...Option) ([]byte, error) {
	if s.NumFields() == 0 {
		return nil, ferr.NewInvalidInput("cannot encode rows against an empty schema")
	}
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	var eo encodeOptions
	for _, opt := range opts {
		opt(&eo)
	}

	schema, err := ArrowSchema(s)
	if err != nil {
		return nil, err
	}

	rb := array.NewRecordBuilder(mem, schema)
	defer rb.Release()

	for col := 0; col < s.NumFields(); col++ {
		nsp := row.ScanNulls(rows, col)
		if err := appendColumn(rb.Field(col), s.Field(col), rows, col, nsp); err != nil {
			return nil, err
		}
	}

	rec := rb.NewRecord()
	defer rec.Release()

	return writeRecord(rec, schema, mem, &eo)
}

// EncodeIndices serializes the begin/end boundary arrays as an IPC
// payload of two aligned int64 columns.
func EncodeIndices(mem memory.Allocator, begins, ends []int64, opts ...Option) ([]byte, error) {
	if len(begins) != len(ends) {
		return nil, ferr.NewLengthMismatch("begin indices %d, end indices %d", len(begins), len(ends))
	}
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	var eo encodeOptions
	for _, opt := range opts {
		opt(&eo)
	}

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "begin", Type: arrow.PrimitiveTypes.Int64},
		{Name: "end", Type: arrow.PrimitiveTypes.Int64},
	}, nil)

	rb := array.NewRecordBuilder(mem, schema)
	defer rb.Release()

	rb.Field(0).(*array.Int64Builder).AppendValues(begins, nil)
	rb.Field(1).(*array.Int64Builder).AppendValues(ends, nil)

	rec := rb.NewRecord()
	defer rec.Release()

	return writeRecord(rec, schema, mem, &eo)
}

// writeRecord frames exactly one record batch. The writer is closed
// before the buffer is read; a write failure is returned after the
// deferred releases run.
func writeRecord(rec arrow.Record, schema *arrow.Schema, mem memory.Allocator, eo *encodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, eo.ipcOptions(schema, mem)...)
	if err := w.Write(rec); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendColumn(b array.Builder, f row.Field, rows []row.Row, col int, nsp *nulls.Nulls) error {
	for i, r := range rows {
		if nulls.Contains(nsp, uint64(i)) {
			if !f.Nullable {
				return ferr.NewInvalidInput("null value for non-nullable field %s", f.Name)
			}
			b.AppendNull()
			continue
		}
		switch f.Typ {
		case types.T_bool:
			v, ok := r[col].(bool)
			if !ok {
				return badValue(f, r[col])
			}
			b.(*array.BooleanBuilder).Append(v)
		case types.T_int32:
			v, ok := r[col].(int32)
			if !ok {
				return badValue(f, r[col])
			}
			b.(*array.Int32Builder).Append(v)
		case types.T_int64:
			v, ok := r[col].(int64)
			if !ok {
				return badValue(f, r[col])
			}
			b.(*array.Int64Builder).Append(v)
		case types.T_float64:
			v, ok := r[col].(float64)
			if !ok {
				return badValue(f, r[col])
			}
			b.(*array.Float64Builder).Append(v)
		case types.T_timestamp:
			v, ok := r[col].(int64)
			if !ok {
				return badValue(f, r[col])
			}
			b.(*array.TimestampBuilder).Append(arrow.Timestamp(v))
		case types.T_varchar:
			v, ok := r[col].(string)
			if !ok {
				return badValue(f, r[col])
			}
			b.(*array.StringBuilder).Append(v)
		default:
			return ferr.NewInternal("no builder for type %s", f.Typ)
		}
	}
	return nil
}

func badValue(f row.Field, v any) error {
	return ferr.NewInvalidInput("value %v is not a %s for field %s", v, f.Typ, f.Name)
}
