// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import "github.com/aristanetworks/chaintable/logger"

type config struct {
	hash     func(string) int32
	hashOnly bool
	autoGrow bool
	maxLoad  float64
	log      logger.Logger
}

// Option configures a Table created by New.
type Option func(*config)

// WithLogger logs growth events to l.
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithAutoGrow makes Insert run GrowIfOverloaded itself.
func WithAutoGrow() Option {
	return func(c *config) { c.autoGrow = true }
}

// WithMaxLoad sets the load factor above which GrowIfOverloaded grows the
// table. The default is 1. Non-positive values are ignored.
func WithMaxLoad(load float64) Option {
	return func(c *config) {
		if load > 0 {
			c.maxLoad = load
		}
	}
}

// WithHashOnlyMatch makes lookups and removals compare hashes only, without
// checking the key bytes. Two distinct keys with the same hash are then
// indistinguishable: Contains reports either as present once the other is
// inserted, and Remove of one may unlink the other.
func WithHashOnlyMatch() Option {
	return func(c *config) { c.hashOnly = true }
}

// WithHashFunc replaces DJB2 as the table's hash function.
func WithHashFunc(hash func(string) int32) Option {
	return func(c *config) { c.hash = hash }
}
