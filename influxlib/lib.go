// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package influxlib writes word counts and table statistics to InfluxDB.
package influxlib

import (
	"errors"
	"fmt"
	"time"

	influxdb "github.com/influxdata/influxdb1-client/v2"
)

// Protocol selects how points are sent to InfluxDB.
type Protocol string

// Supported protocols.
const (
	HTTP Protocol = "http"
	UDP  Protocol = "udp"
)

// InfluxConfig holds the connection settings.
type InfluxConfig struct {
	Hostname        string   `yaml:"hostname"`
	Port            uint16   `yaml:"port"`
	Protocol        Protocol `yaml:"protocol"`
	Database        string   `yaml:"database"`
	RetentionPolicy string   `yaml:"retention_policy"`
}

// DefaultConfig returns the settings of a local InfluxDB over HTTP.
func DefaultConfig() *InfluxConfig {
	return &InfluxConfig{
		Hostname: "localhost",
		Port:     8086,
		Protocol: HTTP,
		Database: "wordfreq",
	}
}

// InfluxDBConnection is an object that the wrapper uses.
// Holds a client of the type v2.Client and the configuration
type InfluxDBConnection struct {
	Client influxdb.Client
	Config *InfluxConfig
}

// Connect takes an InfluxConfig and establishes a connection
// to InfluxDB. A nil config uses DefaultConfig.
func Connect(config *InfluxConfig) (*InfluxDBConnection, error) {
	if config == nil {
		config = DefaultConfig()
	}
	var con influxdb.Client
	var err error

	switch config.Protocol {
	case HTTP:
		addr := fmt.Sprintf("http://%s:%v", config.Hostname, config.Port)
		con, err = influxdb.NewHTTPClient(influxdb.HTTPConfig{
			Addr:    addr,
			Timeout: 1 * time.Second,
		})
	case UDP:
		addr := fmt.Sprintf("%s:%v", config.Hostname, config.Port)
		con, err = influxdb.NewUDPClient(influxdb.UDPConfig{
			Addr: addr,
		})
	default:
		return nil, errors.New("Invalid Protocol")
	}

	if err != nil {
		return nil, err
	}

	return &InfluxDBConnection{Client: con, Config: config}, nil
}

func (conn *InfluxDBConnection) batch() (influxdb.BatchPoints, error) {
	return influxdb.NewBatchPoints(influxdb.BatchPointsConfig{
		Database:        conn.Config.Database,
		Precision:       "ns",
		RetentionPolicy: conn.Config.RetentionPolicy,
	})
}

// WritePoint stores a datapoint to the database.
// Measurement:
//
//	The measurement to write to
//
// Tags:
//
//	A dictionary of tags in the form string=string
//
// Fields:
//
//	A dictionary of fields(keys) with their associated values
func (conn *InfluxDBConnection) WritePoint(measurement string,
	tags map[string]string, fields map[string]interface{}) error {
	bp, err := conn.batch()
	if err != nil {
		return err
	}
	pt, err := influxdb.NewPoint(measurement, tags, fields, time.Now())
	if err != nil {
		return err
	}
	bp.AddPoint(pt)
	return conn.Client.Write(bp)
}

// WriteCounts stores one point per word in a single batch. Each point
// carries tags plus a "word" tag, and a "count" field.
func (conn *InfluxDBConnection) WriteCounts(measurement string,
	tags map[string]string, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}
	bp, err := conn.batch()
	if err != nil {
		return err
	}
	now := time.Now()
	for word, n := range counts {
		ptags := make(map[string]string, len(tags)+1)
		for k, v := range tags {
			ptags[k] = v
		}
		ptags["word"] = word
		pt, err := influxdb.NewPoint(measurement, ptags,
			map[string]interface{}{"count": n}, now)
		if err != nil {
			return fmt.Errorf("point for %q: %w", word, err)
		}
		bp.AddPoint(pt)
	}
	return conn.Client.Write(bp)
}

// Close closes the connection opened by Connect()
func (conn *InfluxDBConnection) Close() {
	conn.Client.Close()
}
