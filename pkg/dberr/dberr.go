/*
Copyright 2026 The Sydney-Go Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package dberr centralizes the error kinds shared by the vector file,
// full-text engine and distributed planner, so callers can classify an
// error without depending on which package produced it.
package dberr

import (
	"errors"
	"fmt"
)

// Kind identifies one of the error categories a core component can
// raise. Every exported sentinel below has exactly one Kind.
type Kind int

const (
	Unknown Kind = iota
	BadArgument
	FileNotOpen
	NotSupported
	WrongParameter
	IllegalFileAccess
	MemoryExhaust
	BadDataPage
	Unexpected
)

func (k Kind) String() string {
	switch k {
	case BadArgument:
		return "BadArgument"
	case FileNotOpen:
		return "FileNotOpen"
	case NotSupported:
		return "NotSupported"
	case WrongParameter:
		return "WrongParameter"
	case IllegalFileAccess:
		return "IllegalFileAccess"
	case MemoryExhaust:
		return "MemoryExhaust"
	case BadDataPage:
		return "BadDataPage"
	case Unexpected:
		return "Unexpected"
	default:
		return "Unknown"
	}
}

// coreError is a Kind-tagged error. Callers normally match on the
// sentinel values below with errors.Is; ClassOf is for logging/metrics.
type coreError struct {
	kind Kind
	msg  string
}

func (e *coreError) Error() string { return e.msg }

func (e *coreError) Is(target error) bool {
	t, ok := target.(*coreError)
	return ok && t.kind == e.kind && t.msg == e.msg
}

func newErr(k Kind, msg string) error {
	return &coreError{kind: k, msg: msg}
}

// Sentinels for the error kinds above. Wrap with fmt.Errorf("...: %w",
// Err...) to add context while keeping errors.Is(err,
// dberr.ErrBadArgument) working.
var (
	ErrBadArgument       = newErr(BadArgument, "bad argument")
	ErrFileNotOpen       = newErr(FileNotOpen, "file not open")
	ErrNotSupported      = newErr(NotSupported, "not supported")
	ErrWrongParameter    = newErr(WrongParameter, "wrong parameter")
	ErrIllegalFileAccess = newErr(IllegalFileAccess, "illegal file access")
	ErrMemoryExhaust     = newErr(MemoryExhaust, "memory exhausted")
	ErrBadDataPage       = newErr(BadDataPage, "bad data page")
	ErrUnexpected        = newErr(Unexpected, "unexpected error")
)

// BadArgumentf wraps ErrBadArgument with a formatted message; analogous
// helpers exist for the other sentinels used by more than one caller.
func BadArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrBadArgument)
}

func WrongParameterf(remainder string) error {
	return fmt.Errorf("unconsumed input %q: %w", remainder, ErrWrongParameter)
}

func NotSupportedf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotSupported)
}

func IllegalFileAccessf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrIllegalFileAccess)
}

func Unexpectedf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnexpected)
}

// ClassOf reports which Kind err (or one of its wrapped causes) belongs
// to, or Unknown if none of the sentinels match.
func ClassOf(err error) Kind {
	for _, s := range []struct {
		err  error
		kind Kind
	}{
		{ErrBadArgument, BadArgument},
		{ErrFileNotOpen, FileNotOpen},
		{ErrNotSupported, NotSupported},
		{ErrWrongParameter, WrongParameter},
		{ErrIllegalFileAccess, IllegalFileAccess},
		{ErrMemoryExhaust, MemoryExhaust},
		{ErrBadDataPage, BadDataPage},
		{ErrUnexpected, Unexpected},
	} {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}
	return Unknown
}
