// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	c := newCounter(&Config{Capacity: 4, MaxLoad: 1}, nil)
	c.add("a", "c", "e")
	coll := newCollector(c.Stats)

	if n := testutil.CollectAndCount(coll); n != 6 {
		t.Errorf("collected %d metrics, want 6", n)
	}
	// "a" and "e" share bucket 2 of 4, "c" is alone in bucket 0.
	want := `
# HELP wordfreq_table_buckets Number of buckets.
# TYPE wordfreq_table_buckets gauge
wordfreq_table_buckets 4
# HELP wordfreq_table_empty_buckets Number of buckets with no chain.
# TYPE wordfreq_table_empty_buckets gauge
wordfreq_table_empty_buckets 2
# HELP wordfreq_table_entries Number of distinct words in the table.
# TYPE wordfreq_table_entries gauge
wordfreq_table_entries 3
# HELP wordfreq_table_load_factor Entries per bucket.
# TYPE wordfreq_table_load_factor gauge
wordfreq_table_load_factor 0.75
# HELP wordfreq_table_longest_chain Length of the longest bucket chain.
# TYPE wordfreq_table_longest_chain gauge
wordfreq_table_longest_chain 2
# HELP wordfreq_table_resizes_total Number of times the table doubled.
# TYPE wordfreq_table_resizes_total counter
wordfreq_table_resizes_total 0
`
	if err := testutil.CollectAndCompare(coll, strings.NewReader(want)); err != nil {
		t.Error(err)
	}

	c.free()
	if err := testutil.CollectAndCompare(coll, strings.NewReader(`
# HELP wordfreq_table_entries Number of distinct words in the table.
# TYPE wordfreq_table_entries gauge
wordfreq_table_entries 0
`), "wordfreq_table_entries"); err != nil {
		t.Error(err)
	}
}
