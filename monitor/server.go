// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package monitor provides an embedded HTTP server exposing debug handlers,
// glog verbosity control and Prometheus metrics.
package monitor

import (
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"
	"strconv"

	"github.com/aristanetworks/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents a monitoring server
type Server interface {
	// Run serves until the listener fails.
	Run()
	// Handler returns the server's request multiplexer.
	Handler() http.Handler
}

type server struct {
	// Server name e.g. host[:port]
	serverName string
	mux        *http.ServeMux
}

// NewMonitorServer creates a server for serverName that exposes the metrics
// of gatherer on /metrics. A nil gatherer serves prometheus.DefaultGatherer.
func NewMonitorServer(serverName string, gatherer prometheus.Gatherer) Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/debug", debugHandler)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/loglevel", verbosityHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &server{serverName: serverName, mux: mux}
}

func debugHandler(w http.ResponseWriter, r *http.Request) {
	indexTmpl := `<html>
	<head>
	<title>/debug</title>
	</head>
	<body>
	<p>/debug</p>
	<div><a href="/debug/vars">vars</a></div>
	<div><a href="/debug/pprof">pprof</a></div>
	<div><a href="/metrics">metrics</a></div>
	</body>
	</html>
	`
	fmt.Fprint(w, indexTmpl)
}

// verbosityHandler sets glog's global verbosity from the "v" form value of a
// POST, e.g. curl -d v=2 localhost:8080/debug/loglevel.
func verbosityHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "loglevel: POST a v=<level> form", http.StatusMethodNotAllowed)
		return
	}
	v := r.PostFormValue("v")
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		glog.Errorf("monitor: bad verbosity %q from %s", v, r.RemoteAddr)
		http.Error(w, fmt.Sprintf("loglevel: bad verbosity %q", v), http.StatusBadRequest)
		return
	}
	glog.SetVGlobal(strconv.Itoa(n))
	glog.Infof("monitor: glog verbosity set to %d", n)
	fmt.Fprintf(w, "verbosity %d\n", n)
}

func (s *server) Handler() http.Handler {
	return s.mux
}

// Run sets up the HTTP server and any handlers
func (s *server) Run() {
	err := http.ListenAndServe(s.serverName, s.mux)
	if err != nil {
		glog.Errorf("Could not start monitor server: %s", err)
	}
}
