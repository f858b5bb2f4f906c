// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"github.com/aristanetworks/chaintable/hashmap"
	"github.com/prometheus/client_golang/prometheus"
)

// collector exports the shape of the word table. The table is read through
// stats at scrape time.
type collector struct {
	stats func() hashmap.Stats

	entries      *prometheus.Desc
	buckets      *prometheus.Desc
	emptyBuckets *prometheus.Desc
	longestChain *prometheus.Desc
	loadFactor   *prometheus.Desc
	resizes      *prometheus.Desc
}

func newCollector(stats func() hashmap.Stats) *collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("wordfreq", "table", name),
			help, nil, nil)
	}
	return &collector{
		stats:        stats,
		entries:      desc("entries", "Number of distinct words in the table."),
		buckets:      desc("buckets", "Number of buckets."),
		emptyBuckets: desc("empty_buckets", "Number of buckets with no chain."),
		longestChain: desc("longest_chain", "Length of the longest bucket chain."),
		loadFactor:   desc("load_factor", "Entries per bucket."),
		resizes:      desc("resizes_total", "Number of times the table doubled."),
	}
}

// Describe implements prometheus.Collector.
func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.buckets
	ch <- c.emptyBuckets
	ch <- c.longestChain
	ch <- c.loadFactor
	ch <- c.resizes
}

// Collect implements prometheus.Collector.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v)
	}
	gauge(c.entries, float64(s.Count))
	gauge(c.buckets, float64(s.TableSize))
	gauge(c.emptyBuckets, float64(s.EmptyBuckets))
	gauge(c.longestChain, float64(s.LongestChain))
	gauge(c.loadFactor, s.LoadFactor)
	ch <- prometheus.MustNewConstMetric(c.resizes, prometheus.CounterValue,
		float64(s.Resizes))
}
