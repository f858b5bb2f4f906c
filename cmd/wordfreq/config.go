// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"fmt"

	"github.com/aristanetworks/chaintable/influxlib"
	"gopkg.in/yaml.v2"
)

// Config is the representation of wordfreq's YAML config file.
type Config struct {
	// Initial number of buckets.
	Capacity int `yaml:"capacity"`

	// Load factor above which the table doubles.
	MaxLoad float64 `yaml:"max_load"`

	// Grow from inside Insert instead of after each new word.
	AutoGrow bool `yaml:"auto_grow"`

	// Match keys by hash value only.
	HashOnlyMatch bool `yaml:"hash_only_match"`

	// Number of files tokenized concurrently.
	Workers int `yaml:"workers"`

	// Number of most frequent words to report.
	Top int `yaml:"top"`

	// Word looked up and removed at the end of the report. Empty skips it.
	Probe string `yaml:"probe"`

	// Where table growth is logged: "glog" (the default when empty),
	// "stderr" or "none".
	TableLog string `yaml:"table_log"`

	// Optional sinks for the final counts.
	Influx *influxlib.InfluxConfig `yaml:"influx,omitempty"`
	Redis  *RedisConfig            `yaml:"redis,omitempty"`
}

// RedisConfig is the redis section of the config file.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// Hash the counts are written to.
	Key string `yaml:"key"`
	// Connection attempts after the first one fails.
	Retries uint64 `yaml:"retries"`
}

func defaultConfig() *Config {
	return &Config{
		Capacity: 30,
		MaxLoad:  1,
		Workers:  4,
		Top:      10,
		Probe:    "the",
	}
}

// parseConfig overlays cfg on the defaults and validates the result.
func parseConfig(cfg []byte) (*Config, error) {
	config := defaultConfig()
	if err := yaml.UnmarshalStrict(cfg, config); err != nil {
		return nil, fmt.Errorf("Failed to parse config: %v", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	case c.MaxLoad <= 0:
		return fmt.Errorf("max_load must be positive, got %v", c.MaxLoad)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.Top < 0:
		return fmt.Errorf("top must not be negative, got %d", c.Top)
	}
	switch c.TableLog {
	case "", "glog", "stderr", "none":
	default:
		return fmt.Errorf("table_log must be glog, stderr or none, got %q", c.TableLog)
	}
	if c.Redis != nil {
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis: addr is required")
		}
		if c.Redis.Key == "" {
			c.Redis.Key = "wordfreq"
		}
	}
	if c.Influx != nil {
		def := influxlib.DefaultConfig()
		if c.Influx.Hostname == "" {
			c.Influx.Hostname = def.Hostname
		}
		if c.Influx.Port == 0 {
			c.Influx.Port = def.Port
		}
		if c.Influx.Protocol == "" {
			c.Influx.Protocol = def.Protocol
		}
		if c.Influx.Database == "" {
			c.Influx.Database = def.Database
		}
	}
	return nil
}
