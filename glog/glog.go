// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package glog adapts github.com/aristanetworks/glog to logger.Logger.
package glog

import (
	"bytes"
	"io"
	"sync"

	"github.com/aristanetworks/chaintable/logger"
	"github.com/aristanetworks/glog"
)

// Glog passes glog as a logger.Logger. Info lines are logged at
// verbosity InfoLevel, so they are hidden unless -v is at least that high.
type Glog struct {
	InfoLevel glog.Level
}

var _ logger.Logger = (*Glog)(nil)

// Info logs at the info level
func (g *Glog) Info(args ...interface{}) {
	glog.V(g.InfoLevel).Info(args...)
}

// Infof logs at the info level, with format
func (g *Glog) Infof(format string, args ...interface{}) {
	glog.V(g.InfoLevel).Infof(format, args...)
}

// Error logs at the error level
func (g *Glog) Error(args ...interface{}) {
	glog.Error(args...)
}

// Errorf logs at the error level, with format
func (g *Glog) Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}

// Fatal logs at the fatal level
func (g *Glog) Fatal(args ...interface{}) {
	glog.Fatal(args...)
}

// Fatalf logs at the fatal level, with format
func (g *Glog) Fatalf(format string, args ...interface{}) {
	glog.Fatalf(format, args...)
}

// SuppressLines drops every glog output line containing one of substrs
// until the returned function is called, which restores the previous
// output. Tests use it to keep expected errors out of `go test` output:
//
//	reset := glog.SuppressLines("no such file")
//	defer reset()
func SuppressLines(substrs ...string) func() {
	fw := &filterWriter{}
	for _, s := range substrs {
		fw.drop = append(fw.drop, []byte(s))
	}
	prev := glog.SetOutput(fw)
	fw.out = prev
	return func() {
		fw.flush()
		glog.SetOutput(prev)
	}
}

// filterWriter forwards complete lines to out unless they contain one of
// drop. A trailing partial line is held until the next newline or flush.
type filterWriter struct {
	mu      sync.Mutex
	out     io.Writer
	drop    [][]byte
	pending []byte
	err     error
}

func (fw *filterWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.err != nil {
		return 0, fw.err
	}
	fw.pending = append(fw.pending, p...)
	for {
		line, rest, ok := bytes.Cut(fw.pending, []byte{'\n'})
		if !ok {
			break
		}
		if !fw.dropped(line) {
			if _, err := fw.out.Write(append(line, '\n')); err != nil {
				fw.err = err
				return len(p), err
			}
		}
		fw.pending = rest
	}
	return len(p), nil
}

func (fw *filterWriter) dropped(line []byte) bool {
	for _, d := range fw.drop {
		if bytes.Contains(line, d) {
			return true
		}
	}
	return false
}

func (fw *filterWriter) flush() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.err == nil && len(fw.pending) > 0 && !fw.dropped(fw.pending) {
		fw.out.Write(fw.pending)
	}
	fw.pending = nil
}
