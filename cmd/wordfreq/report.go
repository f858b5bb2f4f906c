// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"fmt"
	"io"

	"github.com/aristanetworks/chaintable/hashmap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type wordCount struct {
	Word  string
	Count int
}

// topWords returns the n most frequent words, most frequent first. Ties
// are broken alphabetically.
func topWords(counts map[string]int, n int) []wordCount {
	words := maps.Keys(counts)
	slices.Sort(words)
	top := make([]wordCount, len(words))
	for i, w := range words {
		top[i] = wordCount{Word: w, Count: counts[w]}
	}
	slices.SortStableFunc(top, func(a, b wordCount) bool {
		return a.Count > b.Count
	})
	if n < len(top) {
		top = top[:n]
	}
	return top
}

// writeReport prints the top words and the table's diagnostics. With dump
// set every entry is printed before the probe step. If probe is set it is
// looked up, removed and looked up again, which changes the table.
func writeReport(w io.Writer, c *counter, top int, probe string, dump bool) error {
	ew := &errWriter{w: w}
	for _, wc := range topWords(c.counts(), top) {
		ew.printf("%8d %s\n", wc.Count, wc.Word)
	}
	ew.printf("\n")
	c.do(func(t *hashmap.Table[string, int]) {
		ew.printf("- isEmpty: %t\n", t.IsEmpty())
		if dump && ew.err == nil {
			ew.err = t.Dump(w)
		}
		if probe != "" {
			ew.printf("- Contains key %q?: %t\n", probe, t.Contains(probe))
			ew.printf("- Removing key %q\n", probe)
			t.Remove(probe)
			ew.printf("- Contains key %q?: %t\n", probe, t.Contains(probe))
		}
		s := t.Stats()
		ew.printf("- Book-kept element count:  %d\n", s.Count)
		ew.printf("- Calculated element count: %d\n", s.Size)
		ew.printf("- Buckets:         %d\n", s.TableSize)
		ew.printf("- Empty buckets:   %d\n", s.EmptyBuckets)
		ew.printf("- Longest chain:   %d\n", s.LongestChain)
		ew.printf("- Resizes:         %d\n", s.Resizes)
		ew.printf("- Table load:      %f\n", s.LoadFactor)
	})
	return ew.err
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
