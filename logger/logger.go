// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package logger defines the logging interface taken by the table and its
// tools, so that library code does not depend on a particular glog.
package logger

import (
	"fmt"
	"log"
)

// Logger is satisfied by *glog.Glog and by Std.
type Logger interface {
	// Info logs at the info level
	Info(args ...interface{})
	// Infof logs at the info level, with format
	Infof(format string, args ...interface{})
	// Error logs at the error level
	Error(args ...interface{})
	// Errorf logs at the error level, with format
	Errorf(format string, args ...interface{})
	// Fatal logs at the fatal level and exits
	Fatal(args ...interface{})
	// Fatalf logs at the fatal level, with format, and exits
	Fatalf(format string, args ...interface{})
}

// Std implements Logger using the stdlib "log" package.
var Std Logger = std{log.Default()}

type std struct {
	*log.Logger
}

func (l std) Info(args ...interface{}) {
	l.Output(2, "I "+fmt.Sprint(args...))
}

func (l std) Infof(format string, args ...interface{}) {
	l.Output(2, "I "+fmt.Sprintf(format, args...))
}

func (l std) Error(args ...interface{}) {
	l.Output(2, "E "+fmt.Sprint(args...))
}

func (l std) Errorf(format string, args ...interface{}) {
	l.Output(2, "E "+fmt.Sprintf(format, args...))
}

// Recorder is a Logger that keeps Info and Error lines in memory. Fatal
// records the line and panics instead of exiting.
type Recorder struct {
	Lines []string
}

func (r *Recorder) Info(args ...interface{}) {
	r.Lines = append(r.Lines, fmt.Sprint(args...))
}

func (r *Recorder) Infof(format string, args ...interface{}) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

func (r *Recorder) Error(args ...interface{}) {
	r.Lines = append(r.Lines, fmt.Sprint(args...))
}

func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

func (r *Recorder) Fatal(args ...interface{}) {
	r.Error(args...)
	panic(r.Lines[len(r.Lines)-1])
}

func (r *Recorder) Fatalf(format string, args ...interface{}) {
	r.Errorf(format, args...)
	panic(r.Lines[len(r.Lines)-1])
}
