// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashmap implements a separate-chaining hash table keyed by byte
// sequences.
//
// Each bucket holds a singly linked chain of entries. Inserts prepend to the
// chain without looking for an existing entry with the same key, so callers
// wanting set semantics check with Contains or Find first. Growth doubles the
// bucket array and is driven by the load factor only. By default the caller
// runs the growth check after inserting:
//
//	t.Insert(k, 1)
//	t.GrowIfOverloaded()
//
// WithAutoGrow moves that check inside Insert.
//
// A Table is not safe for concurrent use.
package hashmap

import (
	"errors"

	"github.com/aristanetworks/chaintable/logger"
)

// Key is the set of types a Table can be keyed by.
type Key interface {
	~string | ~[]byte
}

var (
	// ErrNilTable is the panic value for operations on a nil *Table.
	ErrNilTable = errors.New("hashmap: nil table")
	// ErrFreed is the panic value for operations on a table after Free.
	ErrFreed = errors.New("hashmap: use of freed table")
	// ErrCapacity is the panic value for New with a non-positive capacity.
	ErrCapacity = errors.New("hashmap: capacity must be positive")
)

// Table is a chained hash table.
type Table[K Key, V any] struct {
	buckets []*entry[K, V]
	count   int
	resizes int
	freed   bool

	hash     func(string) int32
	hashOnly bool
	autoGrow bool
	maxLoad  float64
	log      logger.Logger
}

type entry[K Key, V any] struct {
	next  *entry[K, V]
	hash  int32
	key   K
	value V
}

// New returns an empty table with capacity buckets. It panics with
// ErrCapacity if capacity is not positive.
func New[K Key, V any](capacity int, opts ...Option) *Table[K, V] {
	if capacity <= 0 {
		panic(ErrCapacity)
	}
	c := config{maxLoad: 1}
	for _, opt := range opts {
		opt(&c)
	}
	return &Table[K, V]{
		buckets:  make([]*entry[K, V], capacity),
		hash:     c.hash,
		hashOnly: c.hashOnly,
		autoGrow: c.autoGrow,
		maxLoad:  c.maxLoad,
		log:      c.log,
	}
}

func (t *Table[K, V]) check() {
	if t == nil {
		panic(ErrNilTable)
	}
	if t.freed {
		panic(ErrFreed)
	}
}

func (t *Table[K, V]) hashOf(k K) int32 {
	if t.hash != nil {
		return t.hash(string(k))
	}
	return DJB2(k)
}

// index maps h onto a bucket of a table with size buckets. The absolute
// value is taken in 64 bits so that math.MinInt32 stays non-negative.
func index(h int32, size int) int {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(size))
}

// matches reports whether e is a hit for k, whose hash is h.
func (t *Table[K, V]) matches(e *entry[K, V], k K, h int32) bool {
	if e.hash != h {
		return false
	}
	return t.hashOnly || string(e.key) == string(k)
}

// Insert adds an entry binding k to v. An existing entry for k is left in
// place; the new entry shadows it for lookups until removed.
func (t *Table[K, V]) Insert(k K, v V) {
	t.check()
	t.insert(&entry[K, V]{hash: t.hashOf(k), key: k, value: v})
	if t.autoGrow {
		t.GrowIfOverloaded()
	}
}

// insert links e into its bucket. e.hash must be set.
func (t *Table[K, V]) insert(e *entry[K, V]) {
	i := index(e.hash, len(t.buckets))
	e.next = t.buckets[i]
	t.buckets[i] = e
	t.count++
}

func (t *Table[K, V]) lookup(k K) *entry[K, V] {
	h := t.hashOf(k)
	for e := t.buckets[index(h, len(t.buckets))]; e != nil; e = e.next {
		if t.matches(e, k, h) {
			return e
		}
	}
	return nil
}

// Contains reports whether an entry for k is present.
func (t *Table[K, V]) Contains(k K) bool {
	t.check()
	return t.lookup(k) != nil
}

// Find returns a pointer to the value stored for k, or nil if k is absent.
// The pointer stays valid across Insert, Remove of other keys and Resize,
// so callers may update the value in place.
func (t *Table[K, V]) Find(k K) *V {
	t.check()
	e := t.lookup(k)
	if e == nil {
		return nil
	}
	return &e.value
}

// Get returns the value stored for k and whether it was found.
func (t *Table[K, V]) Get(k K) (V, bool) {
	if p := t.Find(k); p != nil {
		return *p, true
	}
	var zero V
	return zero, false
}

// Remove unlinks the first entry in k's chain that matches k and reports
// whether one was found. Further entries for the same key stay in the table.
func (t *Table[K, V]) Remove(k K) bool {
	t.check()
	h := t.hashOf(k)
	i := index(h, len(t.buckets))
	var prev *entry[K, V]
	for e := t.buckets[i]; e != nil; prev, e = e, e.next {
		if !t.matches(e, k, h) {
			continue
		}
		if prev == nil {
			t.buckets[i] = e.next
		} else {
			prev.next = e.next
		}
		e.next = nil
		t.count--
		return true
	}
	return false
}

// Len returns the number of entries, as book-kept by Insert and Remove.
func (t *Table[K, V]) Len() int {
	t.check()
	return t.count
}

// IsEmpty reports whether the table holds no entries.
func (t *Table[K, V]) IsEmpty() bool {
	return t.Len() == 0
}

// TableSize returns the number of buckets.
func (t *Table[K, V]) TableSize() int {
	t.check()
	return len(t.buckets)
}

// LoadFactor returns Len() / TableSize().
func (t *Table[K, V]) LoadFactor() float64 {
	t.check()
	return float64(t.count) / float64(len(t.buckets))
}

// GrowIfOverloaded doubles the table if its load factor exceeds the
// configured maximum, and reports whether it did.
func (t *Table[K, V]) GrowIfOverloaded() bool {
	if t.LoadFactor() <= t.maxLoad {
		return false
	}
	t.Resize()
	return true
}

// Resize doubles the number of buckets and redistributes every entry into the
// new bucket array by its stored hash. Entries are relinked, not copied: keys,
// values and pointers returned by Find survive.
func (t *Table[K, V]) Resize() {
	t.check()
	old := t.buckets
	t.buckets = make([]*entry[K, V], 2*len(old))
	t.count = 0
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			t.insert(e)
			e = next
		}
	}
	t.resizes++
	if t.log != nil {
		t.log.Infof("hashmap: resized from %d to %d buckets (%d entries)",
			len(old), len(t.buckets), t.count)
	}
}

// Resizes returns how many times the table has grown.
func (t *Table[K, V]) Resizes() int {
	t.check()
	return t.resizes
}

// Free releases every entry and the bucket array. The table must not be used
// afterwards; doing so panics with ErrFreed.
func (t *Table[K, V]) Free() {
	t.check()
	for i, head := range t.buckets {
		for e := head; e != nil; {
			next := e.next
			*e = entry[K, V]{}
			e = next
		}
		t.buckets[i] = nil
	}
	t.buckets = nil
	t.count = 0
	t.freed = true
}
