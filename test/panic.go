// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package test holds helpers shared by the tests of this module.
package test

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

// ShouldPanic fails t unless fn panics.
func ShouldPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if r := recover(); r == nil {
			t.Errorf("%sThe function %p should have panicked",
				getCallerInfo(), fn)
		}
	}()

	fn()
}

// ShouldPanicWith fails t unless fn panics with a value equal to msg.
func ShouldPanicWith(t *testing.T, msg interface{}, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if r := recover(); r == nil {
			t.Errorf("%sThe function %p should have panicked with %#v",
				getCallerInfo(), fn, msg)
		} else if d := pretty.Compare(msg, r); d != "" {
			t.Errorf("%sThe function %p panicked with the wrong value.\n"+
				"Expected: %#v\nReceived: %#v\nDiff (-want +got):\n%s",
				getCallerInfo(), fn, msg, r, d)
		}
	}()

	fn()
}

// ShouldPanicWithStr fails t unless fn panics with msg. If fn panics with an
// error, the error's message is compared to msg.
func ShouldPanicWithStr(t *testing.T, msg string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Errorf("%sThe function %p should have panicked with %q",
				getCallerInfo(), fn, msg)
			return
		}
		var got string
		switch r := r.(type) {
		case string:
			got = r
		case error:
			got = r.Error()
		default:
			t.Errorf("%sThe function panicked with a non string/error: %#v",
				getCallerInfo(), r)
			return
		}
		if got != msg {
			t.Errorf("%sThe function %p panicked with the wrong message.\n"+
				"Expected: %q\nReceived: %q", getCallerInfo(), fn, msg, got)
		}
	}()
	fn()
}

// ShouldPanicWithError fails t unless fn panics with an error matching
// target according to errors.Is.
func ShouldPanicWithError(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Errorf("%sThe function %p should have panicked with %v, got %#v",
				getCallerInfo(), fn, target, r)
		}
	}()
	fn()
}

func getCallerInfo() string {
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d\n", file, line)
}
