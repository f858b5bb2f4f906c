// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	aglog "github.com/aristanetworks/chaintable/glog"
	"github.com/aristanetworks/chaintable/hashmap"
	"github.com/aristanetworks/chaintable/influxlib"
	"github.com/kylelemons/godebug/pretty"
)

func TestInfluxSink(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer pc.Close()
	cfg := &influxlib.InfluxConfig{
		Hostname: "127.0.0.1",
		Port:     uint16(pc.LocalAddr().(*net.UDPAddr).Port),
		Protocol: influxlib.UDP,
		Database: "test",
	}
	sinks, err := openSinks(&Config{Influx: cfg}, map[string]string{"files": "a.txt"})
	if err != nil {
		t.Fatal(err)
	}
	defer closeSinks(sinks)
	if len(sinks) != 1 || sinks[0].Name() != "influx" {
		t.Fatalf("unexpected sinks %v", sinks)
	}
	st := hashmap.Stats{Count: 1, Size: 1, TableSize: 4, EmptyBuckets: 3,
		LongestChain: 1, LoadFactor: 0.25}
	if err := sinks[0].Write(map[string]int{"the": 3}, st); err != nil {
		t.Fatal(err)
	}

	var got []string
	buf := make([]byte, 64*1024)
	for len(got) < 2 {
		pc.SetReadDeadline(time.Now().Add(5 * time.Second))
		n, _, err := pc.ReadFrom(buf)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, string(buf[:n]))
	}
	if !strings.HasPrefix(got[0], "wordfreq,files=a.txt,word=the count=3i ") {
		t.Errorf("counts packet = %q", got[0])
	}
	if !strings.HasPrefix(got[1], "wordfreq_table,files=a.txt buckets=4i,empty_buckets=3i,"+
		"entries=1i,load_factor=0.25,longest_chain=1i,resizes=0i ") {
		t.Errorf("stats packet = %q", got[1])
	}
}

// redisServer speaks enough RESP to serve PING, HSET and HGETALL from
// memory. Other commands are answered with OK.
type redisServer struct {
	l net.Listener

	mu     sync.Mutex
	hashes map[string]map[string]string
	hsets  int
}

func newRedisServer(t *testing.T) *redisServer {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := &redisServer{l: l, hashes: map[string]map[string]string{}}
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go s.serve(conn)
		}
	}()
	t.Cleanup(func() { l.Close() })
	return s
}

func (s *redisServer) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		s.reply(w, args)
		// Flush once the pipelined commands already read are answered.
		if r.Buffered() == 0 {
			if err := w.Flush(); err != nil {
				return
			}
		}
	}
}

// readCommand reads one RESP array of bulk strings.
func readCommand(r *bufio.Reader) ([]string, error) {
	n, err := readLen(r, '*')
	if err != nil {
		return nil, err
	}
	args := make([]string, n)
	for i := range args {
		size, err := readLen(r, '$')
		if err != nil {
			return nil, err
		}
		b := make([]byte, size+2)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
		args[i] = string(b[:size])
	}
	return args, nil
}

func readLen(r *bufio.Reader, prefix byte) (int, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, err
	}
	if len(line) < 3 || line[0] != prefix {
		return 0, fmt.Errorf("unexpected line %q", line)
	}
	return strconv.Atoi(strings.TrimSuffix(line[1:], "\r\n"))
}

func (s *redisServer) reply(w *bufio.Writer, args []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch strings.ToUpper(args[0]) {
	case "PING":
		w.WriteString("+PONG\r\n")
	case "HSET":
		h := s.hashes[args[1]]
		if h == nil {
			h = map[string]string{}
			s.hashes[args[1]] = h
		}
		_, exists := h[args[2]]
		h[args[2]] = args[3]
		s.hsets++
		if exists {
			w.WriteString(":0\r\n")
		} else {
			w.WriteString(":1\r\n")
		}
	case "HGETALL":
		h := s.hashes[args[1]]
		fmt.Fprintf(w, "*%d\r\n", 2*len(h))
		for f, v := range h {
			fmt.Fprintf(w, "$%d\r\n%s\r\n$%d\r\n%s\r\n", len(f), f, len(v), v)
		}
	default:
		w.WriteString("+OK\r\n")
	}
}

// hgetall reads the hash key from the server at addr over a fresh connection.
func hgetall(t *testing.T, addr, key string) map[string]string {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	fmt.Fprintf(conn, "*2\r\n$7\r\nHGETALL\r\n$%d\r\n%s\r\n", len(key), key)
	// The reply is an array of bulk strings, the shape of a command.
	fv, err := readCommand(bufio.NewReader(conn))
	if err != nil {
		t.Fatal(err)
	}
	h := map[string]string{}
	for i := 0; i+1 < len(fv); i += 2 {
		h[fv[i]] = fv[i+1]
	}
	return h
}

func TestRedisSink(t *testing.T) {
	srv := newRedisServer(t)
	cfg := &Config{Redis: &RedisConfig{Addr: srv.l.Addr().String(), Key: "wf"}}
	sinks, err := openSinks(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer closeSinks(sinks)
	if len(sinks) != 1 || sinks[0].Name() != "redis" {
		t.Fatalf("unexpected sinks %v", sinks)
	}

	// More than two full pipelines, so the last one is partial.
	counts := map[string]int{}
	wantCounts := map[string]string{}
	for i := 0; i < 2*redisChunk+37; i++ {
		w := fmt.Sprintf("w%d", i)
		counts[w] = i + 1
		wantCounts[w] = strconv.Itoa(i + 1)
	}
	st := hashmap.Stats{Count: len(counts), Size: len(counts), TableSize: 4096,
		EmptyBuckets: 2000, LongestChain: 5, Resizes: 7, LoadFactor: 0.5}
	if err := sinks[0].Write(counts, st); err != nil {
		t.Fatal(err)
	}

	if d := pretty.Compare(wantCounts, hgetall(t, cfg.Redis.Addr, "wf")); d != "" {
		t.Errorf("counts hash (-want +got):\n%s", d)
	}
	wantStats := map[string]string{
		"entries":       strconv.Itoa(len(counts)),
		"buckets":       "4096",
		"empty_buckets": "2000",
		"longest_chain": "5",
		"resizes":       "7",
		"load_factor":   "0.5",
	}
	if d := pretty.Compare(wantStats, hgetall(t, cfg.Redis.Addr, "wf:stats")); d != "" {
		t.Errorf("stats hash (-want +got):\n%s", d)
	}
	srv.mu.Lock()
	hsets := srv.hsets
	srv.mu.Unlock()
	if want := len(counts) + len(wantStats); hsets != want {
		t.Errorf("server saw %d HSETs, want %d", hsets, want)
	}
}

func TestRedisSinkUnreachable(t *testing.T) {
	reset := aglog.SuppressLines("redis: ping")
	defer reset()

	// Grab a free port and release it, so nothing is listening there.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	_, err = openSinks(&Config{Redis: &RedisConfig{Addr: addr, Key: "k"}}, nil)
	if err == nil || !strings.Contains(err.Error(), "failed to connect to "+addr) {
		t.Errorf("openSinks error = %v", err)
	}
}

func TestNoSinks(t *testing.T) {
	sinks, err := openSinks(defaultConfig(), nil)
	if err != nil || len(sinks) != 0 {
		t.Errorf("openSinks() = %v, %v; want no sinks", sinks, err)
	}
}
