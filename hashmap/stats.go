// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"fmt"
	"io"
	"strings"
)

// Stats is a snapshot of a table's shape.
type Stats struct {
	// Count is the book-kept number of entries.
	Count int
	// Size is the number of entries found by walking every chain.
	Size         int
	TableSize    int
	EmptyBuckets int
	LongestChain int
	Resizes      int
	LoadFactor   float64
}

// Size counts the entries by walking every chain. It always equals Len.
func (t *Table[K, V]) Size() int {
	t.check()
	var n int
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			n++
		}
	}
	return n
}

// EmptyBuckets returns the number of buckets with no chain.
func (t *Table[K, V]) EmptyBuckets() int {
	t.check()
	var n int
	for _, head := range t.buckets {
		if head == nil {
			n++
		}
	}
	return n
}

// Stats walks the table once and returns its Stats.
func (t *Table[K, V]) Stats() Stats {
	t.check()
	s := Stats{
		Count:      t.count,
		TableSize:  len(t.buckets),
		Resizes:    t.resizes,
		LoadFactor: t.LoadFactor(),
	}
	for _, head := range t.buckets {
		if head == nil {
			s.EmptyBuckets++
			continue
		}
		var chain int
		for e := head; e != nil; e = e.next {
			chain++
		}
		s.Size += chain
		if chain > s.LongestChain {
			s.LongestChain = chain
		}
	}
	return s
}

// Range calls fn for every entry, in bucket order and then chain order,
// until fn returns false. fn must not modify the table.
func (t *Table[K, V]) Range(fn func(k K, v V) bool) {
	t.check()
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Dump writes one "key: value" line per entry to w, in Range order.
func (t *Table[K, V]) Dump(w io.Writer) error {
	var err error
	t.Range(func(k K, v V) bool {
		_, err = fmt.Fprintf(w, "%s: %v\n", string(k), v)
		return err == nil
	})
	return err
}

func (t *Table[K, V]) String() string {
	var sb strings.Builder
	t.Dump(&sb)
	return sb.String()
}
