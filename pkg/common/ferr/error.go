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

// Package ferr defines the coded errors used across the engine.
// Every error carries a numeric code so callers can distinguish
// protocol bugs (precondition violations) from bad input without
// string matching.
package ferr

import (
	"errors"
	"fmt"
)

const (
	// Group 1: internal errors.
	ErrInternal uint16 = 20101

	// Group 2: invalid input.
	ErrInvalidInput uint16 = 20301
	ErrBadConfig    uint16 = 20302

	// Group 3: protocol and state preconditions. These indicate a
	// driver bug and are fatal to the current batch.
	ErrInvalidState   uint16 = 20400
	ErrEmptyState     uint16 = 20401
	ErrLengthMismatch uint16 = 20402
)

var errorNames = map[uint16]string{
	ErrInternal:       "internal error",
	ErrInvalidInput:   "invalid input",
	ErrBadConfig:      "invalid configuration",
	ErrInvalidState:   "invalid state",
	ErrEmptyState:     "empty state",
	ErrLengthMismatch: "length mismatch",
}

// Error is the coded error type of this module.
type Error struct {
	code uint16
	msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", errorNames[e.code], e.msg)
}

// Code returns the numeric error code.
func (e *Error) Code() uint16 {
	return e.code
}

func newError(code uint16, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

func NewInternal(format string, args ...any) *Error {
	return newError(ErrInternal, format, args...)
}

func NewInvalidInput(format string, args ...any) *Error {
	return newError(ErrInvalidInput, format, args...)
}

func NewBadConfig(format string, args ...any) *Error {
	return newError(ErrBadConfig, format, args...)
}

func NewInvalidState(format string, args ...any) *Error {
	return newError(ErrInvalidState, format, args...)
}

func NewEmptyState(format string, args ...any) *Error {
	return newError(ErrEmptyState, format, args...)
}

func NewLengthMismatch(format string, args ...any) *Error {
	return newError(ErrLengthMismatch, format, args...)
}

// IsError reports whether err is a *Error with the given code.
func IsError(err error, code uint16) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.code == code
	}
	return false
}
