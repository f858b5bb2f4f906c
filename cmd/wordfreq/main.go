// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// The wordfreq tool counts the words of text files in a chained hash table
// and reports the most frequent ones along with the table's diagnostics.
// Words are runs of ASCII letters, digits and apostrophes.
//
// With no file arguments it reads input.txt.
package main

import (
	"context"
	"expvar"
	"flag"
	"io"
	"os"
	"strings"

	aglog "github.com/aristanetworks/chaintable/glog"
	"github.com/aristanetworks/chaintable/logger"
	"github.com/aristanetworks/chaintable/monitor"
	"github.com/aristanetworks/glog"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configFlag := flag.String("config", "", "YAML config `file`")
	capacity := flag.Int("capacity", 0, "Initial number of buckets (default 30)")
	maxLoad := flag.Float64("maxload", 0, "Load factor above which the table doubles (default 1)")
	autoGrow := flag.Bool("autogrow", false, "Grow the table from inside Insert")
	hashOnly := flag.Bool("hashonly", false, "Match keys by hash value only")
	workers := flag.Int("workers", 0, "Number of files read concurrently (default 4)")
	top := flag.Int("top", 0, "Number of most frequent words to print (default 10)")
	probe := flag.String("probe", "", `Word to look up and remove after counting (default "the")`)
	tableLog := flag.String("tablelog", "", "Where table growth is logged: glog, stderr or none")
	dump := flag.Bool("dump", false, "Print every entry of the table")
	monitorAddr := flag.String("monitor", "",
		"`address` to serve /debug and /metrics on, e.g. :8080")
	flag.Parse()

	cfg := defaultConfig()
	if *configFlag != "" {
		b, err := os.ReadFile(*configFlag)
		if err != nil {
			glog.Fatalf("Can't read config file %q: %v", *configFlag, err)
		}
		if cfg, err = parseConfig(b); err != nil {
			glog.Fatal(err)
		}
	}
	// Flags given on the command line override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capacity":
			cfg.Capacity = *capacity
		case "maxload":
			cfg.MaxLoad = *maxLoad
		case "autogrow":
			cfg.AutoGrow = *autoGrow
		case "hashonly":
			cfg.HashOnlyMatch = *hashOnly
		case "workers":
			cfg.Workers = *workers
		case "top":
			cfg.Top = *top
		case "probe":
			cfg.Probe = *probe
		case "tablelog":
			cfg.TableLog = *tableLog
		}
	})
	if err := cfg.validate(); err != nil {
		glog.Fatal(err)
	}

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"input.txt"}
	}

	c := newCounter(cfg, tableLogger(cfg.TableLog))
	if *monitorAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(newCollector(c.Stats))
		expvar.Publish("wordfreq", expvar.Func(func() interface{} { return c.Stats() }))
		go monitor.NewMonitorServer(*monitorAddr, reg).Run()
	}

	var out io.Writer = os.Stdout
	if err := run(context.Background(), cfg, c, files, out, *dump); err != nil {
		glog.Fatal(err)
	}
}

// tableLogger returns the logger for table growth events named by a
// validated table_log setting.
func tableLogger(name string) logger.Logger {
	switch name {
	case "stderr":
		return logger.Std
	case "none":
		return nil
	}
	return &aglog.Glog{InfoLevel: 1}
}

// run counts files into c, hands the counts to the configured sinks and
// writes the report to out. c is freed on return.
func run(ctx context.Context, cfg *Config, c *counter, files []string, out io.Writer,
	dump bool) error {
	defer c.free()
	if err := c.countFiles(ctx, files, cfg.Workers); err != nil {
		return err
	}

	sinks, err := openSinks(cfg, map[string]string{"files": strings.Join(files, ",")})
	if err != nil {
		return err
	}
	defer closeSinks(sinks)
	if len(sinks) > 0 {
		counts, stats := c.counts(), c.Stats()
		for _, s := range sinks {
			if err := s.Write(counts, stats); err != nil {
				return err
			}
			glog.V(1).Infof("wrote %d words to %s", len(counts), s.Name())
		}
	}

	return writeReport(out, c, cfg.Top, cfg.Probe, dump)
}
