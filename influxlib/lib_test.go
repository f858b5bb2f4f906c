// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package influxlib

import (
	"net"
	"strings"
	"testing"
	"time"
)

// listen returns a UDP connection standing in for InfluxDB and a config
// pointing at it.
func listen(t *testing.T) (net.PacketConn, *InfluxConfig) {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { pc.Close() })
	addr := pc.LocalAddr().(*net.UDPAddr)
	return pc, &InfluxConfig{
		Hostname: "127.0.0.1",
		Port:     uint16(addr.Port),
		Protocol: UDP,
		Database: "test",
	}
}

func read(t *testing.T, pc net.PacketConn) string {
	t.Helper()
	buf := make([]byte, 64*1024)
	pc.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatal(err)
	}
	return string(buf[:n])
}

func TestWriteCounts(t *testing.T) {
	pc, cfg := listen(t)
	conn, err := Connect(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	err = conn.WriteCounts("wordfreq", map[string]string{"file": "a.txt"},
		map[string]int{"the": 3, "fox": 1})
	if err != nil {
		t.Fatal(err)
	}
	got := read(t, pc)
	for _, want := range []string{
		"wordfreq,file=a.txt,word=the count=3i ",
		"wordfreq,file=a.txt,word=fox count=1i ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("%q not in %q", want, got)
		}
	}
}

func TestWritePoint(t *testing.T) {
	pc, cfg := listen(t)
	conn, err := Connect(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	err = conn.WritePoint("table", map[string]string{"run": "1"},
		map[string]interface{}{"entries": 5, "load": 0.625})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := read(t, pc), "table,run=1 entries=5i,load=0.625 "; !strings.HasPrefix(got, want) {
		t.Errorf("got %q, want prefix %q", got, want)
	}
}

func TestWriteNoCounts(t *testing.T) {
	_, cfg := listen(t)
	conn, err := Connect(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err := conn.WriteCounts("wordfreq", nil, nil); err != nil {
		t.Error(err)
	}
}

func TestConnectBadProtocol(t *testing.T) {
	if _, err := Connect(&InfluxConfig{Protocol: "tcp"}); err == nil {
		t.Error("Connect accepted protocol tcp")
	}
}
