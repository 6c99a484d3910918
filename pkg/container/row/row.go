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

// Package row defines the opaque record type the window engine stores,
// together with the schema and projection machinery the codec encodes
// against.
package row

import (
	"github.com/luantruong/flint/pkg/common/ferr"
	"github.com/luantruong/flint/pkg/container/nulls"
	"github.com/luantruong/flint/pkg/container/types"
)

// Row is a positional record. Values are one of the closed scalar set
// of pkg/container/types, or nil for NULL. The engine never mutates a
// row after it is appended.
type Row []any

// Field describes one column of a schema.
type Field struct {
	Name     string
	Typ      types.T
	Nullable bool
}

// Schema is an ordered list of uniquely named fields.
type Schema struct {
	fields []Field
	index  map[string]int
}

func NewSchema(fields []Field) (*Schema, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if !f.Typ.Valid() {
			return nil, ferr.NewInvalidInput("field %s has invalid type", f.Name)
		}
		if _, dup := index[f.Name]; dup {
			return nil, ferr.NewInvalidInput("duplicate field name %s", f.Name)
		}
		index[f.Name] = i
	}
	return &Schema{fields: fields, index: index}, nil
}

func (s *Schema) NumFields() int {
	return len(s.fields)
}

func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

func (s *Schema) Fields() []Field {
	return s.fields
}

// Lookup returns the position of the named field.
func (s *Schema) Lookup(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Validate checks a row's arity and dynamic types against the schema.
func (s *Schema) Validate(r Row) error {
	if len(r) != len(s.fields) {
		return ferr.NewLengthMismatch("row has %d values, schema has %d fields", len(r), len(s.fields))
	}
	for i, f := range s.fields {
		if r[i] == nil {
			if !f.Nullable {
				return ferr.NewInvalidInput("null value for non-nullable field %s", f.Name)
			}
			continue
		}
		var ok bool
		switch f.Typ {
		case types.T_bool:
			_, ok = r[i].(bool)
		case types.T_int32:
			_, ok = r[i].(int32)
		case types.T_int64, types.T_timestamp:
			_, ok = r[i].(int64)
		case types.T_float64:
			_, ok = r[i].(float64)
		case types.T_varchar:
			_, ok = r[i].(string)
		}
		if !ok {
			return ferr.NewInvalidInput("value %v is not a %s for field %s", r[i], f.Typ, f.Name)
		}
	}
	return nil
}

// ScanNulls records the NULL positions of column col over rows.
func ScanNulls(rows []Row, col int) *nulls.Nulls {
	nsp := nulls.New()
	for i, r := range rows {
		if r[col] == nil {
			nulls.Add(nsp, uint64(i))
		}
	}
	return nsp
}

// Projection is a pruned column subset of a source schema.
type Projection struct {
	schema *Schema
	cols   []int
}

// Project builds the pruned projection retaining only the named
// columns, in the given order. Zero names is a legal, empty projection.
func (s *Schema) Project(names []string) (*Projection, error) {
	cols := make([]int, 0, len(names))
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		i, ok := s.index[name]
		if !ok {
			return nil, ferr.NewInvalidInput("projected field %s not in schema", name)
		}
		cols = append(cols, i)
		fields = append(fields, s.fields[i])
	}
	pruned, err := NewSchema(fields)
	if err != nil {
		return nil, err
	}
	return &Projection{schema: pruned, cols: cols}, nil
}

// Schema returns the pruned schema.
func (p *Projection) Schema() *Schema {
	return p.schema
}

func (p *Projection) NumFields() int {
	return len(p.cols)
}

// Apply copies the retained columns of r into a new row.
func (p *Projection) Apply(r Row) Row {
	out := make(Row, len(p.cols))
	for i, c := range p.cols {
		out[i] = r[c]
	}
	return out
}

// ApplyAll projects every row.
func (p *Projection) ApplyAll(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = p.Apply(r)
	}
	return out
}
