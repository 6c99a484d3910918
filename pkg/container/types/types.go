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

// Package types defines the closed set of column types the engine can
// store and encode.
package types

// T is the type oid of a column value.
type T uint8

const (
	T_any T = iota

	T_bool
	T_int32
	T_int64
	T_float64

	// T_timestamp is an int64 epoch-nanosecond instant. The engine
	// never interprets it, only stores and encodes it.
	T_timestamp

	T_varchar
)

func (t T) String() string {
	switch t {
	case T_bool:
		return "BOOL"
	case T_int32:
		return "INT32"
	case T_int64:
		return "INT64"
	case T_float64:
		return "FLOAT64"
	case T_timestamp:
		return "TIMESTAMP"
	case T_varchar:
		return "VARCHAR"
	}
	return "ANY"
}

// TypeSize returns the fixed byte width of the type, or -1 for
// variable-length types.
func (t T) TypeSize() int {
	switch t {
	case T_bool:
		return 1
	case T_int32:
		return 4
	case T_int64, T_float64, T_timestamp:
		return 8
	}
	return -1
}

// IsVarlen reports whether values of this type have variable length.
func (t T) IsVarlen() bool {
	return t == T_varchar
}

// Valid reports whether t is a concrete storable type.
func (t T) Valid() bool {
	return t > T_any && t <= T_varchar
}
