// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package diskcache

import "testing"

func TestStoreLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Store(42, []byte("hello shader source")); err != nil {
		t.Fatal(err)
	}
	got, ok := c.Load(42)
	if !ok {
		t.Fatal("expected hit after Store")
	}
	if string(got) != "hello shader source" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if _, ok := c.Load(7); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestReopenPersistsIndex(t *testing.T) {
	dir := t.TempDir()
	c1, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c1.Store(1, []byte("vs source")); err != nil {
		t.Fatal(err)
	}
	if err := c1.Store(2, []byte("ps source")); err != nil {
		t.Fatal(err)
	}
	c1.Close()

	c2, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()
	if got, ok := c2.Load(1); !ok || string(got) != "vs source" {
		t.Fatalf("key 1: got %q, %v", got, ok)
	}
	if got, ok := c2.Load(2); !ok || string(got) != "ps source" {
		t.Fatalf("key 2: got %q, %v", got, ok)
	}
}

func TestStatsReportsEntryCountAndSize(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Store(1, []byte("vs source")); err != nil {
		t.Fatal(err)
	}
	if err := c.Store(2, []byte("ps source")); err != nil {
		t.Fatal(err)
	}
	s, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if s.Entries != 2 {
		t.Fatalf("Entries = %d, want 2", s.Entries)
	}
	if s.Bytes <= 0 {
		t.Fatalf("Bytes = %d, want > 0", s.Bytes)
	}
}
