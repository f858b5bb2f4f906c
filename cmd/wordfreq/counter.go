// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/aristanetworks/chaintable/hashmap"
	"github.com/aristanetworks/chaintable/logger"
	"github.com/aristanetworks/glog"
	"golang.org/x/sync/errgroup"
)

// Words are handed to the table in batches of this size, so that workers
// take the lock once per batch.
const batchSize = 512

// counter counts words in a hashmap.Table. The table is not safe for
// concurrent use, so every access goes through mu.
type counter struct {
	mu       sync.Mutex
	table    *hashmap.Table[string, int]
	autoGrow bool
	freed    bool
}

func newCounter(cfg *Config, log logger.Logger) *counter {
	opts := []hashmap.Option{
		hashmap.WithMaxLoad(cfg.MaxLoad),
		hashmap.WithLogger(log),
	}
	if cfg.AutoGrow {
		opts = append(opts, hashmap.WithAutoGrow())
	}
	if cfg.HashOnlyMatch {
		opts = append(opts, hashmap.WithHashOnlyMatch())
	}
	return &counter{
		table:    hashmap.New[string, int](cfg.Capacity, opts...),
		autoGrow: cfg.AutoGrow,
	}
}

// addLocked bumps word's count, inserting it on first sight. c.mu must be
// held.
func (c *counter) addLocked(word string) {
	if n := c.table.Find(word); n != nil {
		*n++
		return
	}
	c.table.Insert(word, 1)
	if !c.autoGrow {
		c.table.GrowIfOverloaded()
	}
}

func (c *counter) add(words ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range words {
		c.addLocked(w)
	}
}

// addFrom counts every word read from r and returns how many it read. Words
// have no length limit.
func (c *counter) addFrom(ctx context.Context, r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), math.MaxInt)
	sc.Split(scanWords)
	var total int
	batch := make([]string, 0, batchSize)
	for sc.Scan() {
		batch = append(batch, sc.Text())
		if len(batch) == batchSize {
			if err := ctx.Err(); err != nil {
				return total, err
			}
			c.add(batch...)
			total += len(batch)
			batch = batch[:0]
		}
	}
	c.add(batch...)
	total += len(batch)
	return total, sc.Err()
}

func (c *counter) addFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	n, err := c.addFrom(ctx, f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	glog.V(1).Infof("counted %d words in %s", n, path)
	return nil
}

// countFiles counts the words of paths, tokenizing up to workers files at
// once. It stops at the first error.
func (c *counter) countFiles(ctx context.Context, paths []string, workers int) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			return c.addFile(gCtx, p)
		})
	}
	return g.Wait()
}

// do runs fn with the table locked. fn is not called once the table has
// been freed.
func (c *counter) do(fn func(t *hashmap.Table[string, int])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.freed {
		return
	}
	fn(c.table)
}

// Stats returns the table's stats, or zero stats after free.
func (c *counter) Stats() hashmap.Stats {
	var s hashmap.Stats
	c.do(func(t *hashmap.Table[string, int]) { s = t.Stats() })
	return s
}

// counts copies the table into a map.
func (c *counter) counts() map[string]int {
	m := make(map[string]int)
	c.do(func(t *hashmap.Table[string, int]) {
		t.Range(func(w string, n int) bool {
			m[w] += n
			return true
		})
	})
	return m
}

func (c *counter) free() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.freed {
		c.table.Free()
		c.freed = true
	}
}
