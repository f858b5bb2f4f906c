// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"fmt"
	"strconv"

	"github.com/aristanetworks/chaintable/hashmap"
	"github.com/aristanetworks/chaintable/influxlib"
	"github.com/aristanetworks/glog"
	"github.com/cenkalti/backoff/v4"
	"gopkg.in/redis.v4"
)

// A sink receives the final word counts and table stats.
type sink interface {
	Name() string
	Write(counts map[string]int, s hashmap.Stats) error
	Close() error
}

func statsFields(s hashmap.Stats) map[string]interface{} {
	return map[string]interface{}{
		"entries":       s.Count,
		"buckets":       s.TableSize,
		"empty_buckets": s.EmptyBuckets,
		"longest_chain": s.LongestChain,
		"resizes":       s.Resizes,
		"load_factor":   s.LoadFactor,
	}
}

type influxSink struct {
	conn *influxlib.InfluxDBConnection
	tags map[string]string
}

func newInfluxSink(cfg *influxlib.InfluxConfig, tags map[string]string) (*influxSink, error) {
	conn, err := influxlib.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("influx: %w", err)
	}
	return &influxSink{conn: conn, tags: tags}, nil
}

func (s *influxSink) Name() string { return "influx" }

func (s *influxSink) Write(counts map[string]int, st hashmap.Stats) error {
	if err := s.conn.WriteCounts("wordfreq", s.tags, counts); err != nil {
		return err
	}
	return s.conn.WritePoint("wordfreq_table", s.tags, statsFields(st))
}

func (s *influxSink) Close() error {
	s.conn.Close()
	return nil
}

// Counts are written in pipelines of this many HSET commands.
const redisChunk = 1000

type redisSink struct {
	client *redis.Client
	key    string
}

// newRedisSink connects to redis, retrying with exponential backoff up to
// cfg.Retries times.
func newRedisSink(cfg *RedisConfig) (*redisSink, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ping := func() error {
		err := client.Ping().Err()
		if err != nil {
			glog.Errorf("redis: ping %s: %v", cfg.Addr, err)
		}
		return err
	}
	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), cfg.Retries)
	if err := backoff.Retry(ping, bo); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to connect to %s: %w", cfg.Addr, err)
	}
	return &redisSink{client: client, key: cfg.Key}, nil
}

func (s *redisSink) Name() string { return "redis" }

// hset writes fields into the hash key, redisChunk fields per round trip.
func (s *redisSink) hset(key string, fields map[string]string) error {
	pipe := s.client.Pipeline()
	defer pipe.Close()
	var queued int
	for f, v := range fields {
		pipe.HSet(key, f, v)
		if queued++; queued == redisChunk {
			if _, err := pipe.Exec(); err != nil {
				return fmt.Errorf("redis: HSET %s: %w", key, err)
			}
			queued = 0
		}
	}
	if queued > 0 {
		if _, err := pipe.Exec(); err != nil {
			return fmt.Errorf("redis: HSET %s: %w", key, err)
		}
	}
	return nil
}

// Write stores the counts in the hash s.key and the stats in s.key+":stats".
func (s *redisSink) Write(counts map[string]int, st hashmap.Stats) error {
	fields := make(map[string]string, len(counts))
	for w, n := range counts {
		fields[w] = strconv.Itoa(n)
	}
	if err := s.hset(s.key, fields); err != nil {
		return err
	}
	stats := make(map[string]string)
	for k, v := range statsFields(st) {
		stats[k] = fmt.Sprint(v)
	}
	return s.hset(s.key+":stats", stats)
}

func (s *redisSink) Close() error {
	return s.client.Close()
}

// openSinks connects every sink configured in cfg.
func openSinks(cfg *Config, tags map[string]string) ([]sink, error) {
	var sinks []sink
	if cfg.Influx != nil {
		s, err := newInfluxSink(cfg.Influx, tags)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if cfg.Redis != nil {
		s, err := newRedisSink(cfg.Redis)
		if err != nil {
			closeSinks(sinks)
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return sinks, nil
}

func closeSinks(sinks []sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			glog.Errorf("%s: close: %v", s.Name(), err)
		}
	}
}
