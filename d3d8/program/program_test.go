// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package program

import (
	"testing"

	"dx8gl/d3d8/bytecode"
	"dx8gl/d3d8/shader"
	"dx8gl/driver"
	_ "dx8gl/driver/null"
)

func openNull(t *testing.T) driver.GPU {
	t.Helper()
	var drv driver.Driver
	for _, d := range driver.Drivers() {
		if d.Name() == "null" {
			drv = d
			break
		}
	}
	if drv == nil {
		t.Fatal("null driver not registered")
	}
	gpu, err := drv.Open()
	if err != nil {
		t.Fatal(err)
	}
	return gpu
}

func simplePair() (vs, ps []bytecode.Token) {
	va := bytecode.NewAssembler(bytecode.Version{Major: 1, Minor: 1})
	va.Add(bytecode.OpMov,
		bytecode.Dest{Type: bytecode.RegRastOut, Num: 0, Mask: bytecode.FullMask},
		bytecode.Src{Type: bytecode.RegInput, Num: 0, Swiz: bytecode.Identity})
	vs = bytecode.Encode(va.End())

	pa := bytecode.NewAssembler(bytecode.Version{Major: 1, Minor: 1, Pixel: true})
	pa.Add(bytecode.OpMov,
		bytecode.Dest{Type: bytecode.RegColorOut, Num: 0, Mask: bytecode.FullMask},
		bytecode.Src{Type: bytecode.RegInput, Num: 0, Swiz: bytecode.Identity})
	ps = bytecode.Encode(pa.End())
	return
}

func badVS() []bytecode.Token {
	a := bytecode.NewAssembler(bytecode.Version{Major: 1, Minor: 1})
	a.AddNoDest(bytecode.OpCall, bytecode.Src{Type: bytecode.RegLabel})
	return bytecode.Encode(a.End())
}

func TestCacheCompilesAndReusesEntry(t *testing.T) {
	gpu := openNull(t)
	c := NewCache(gpu, shader.Core, 8, nil, nil)

	vs, ps := simplePair()
	e1, err := c.Get(vs, ps)
	if err != nil {
		t.Fatal(err)
	}
	if e1.Stub {
		t.Fatal("expected a non-stub pipeline for a translatable pair")
	}
	if c.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", c.Len())
	}

	e2, err := c.Get(vs, ps)
	if err != nil {
		t.Fatal(err)
	}
	if e1 != e2 {
		t.Fatal("expected the same cached entry on a repeat lookup")
	}
	if c.Len() != 1 {
		t.Fatalf("cache len after repeat lookup = %d, want 1", c.Len())
	}
}

func TestCacheFallsBackToStubOnUnsupportedOpcode(t *testing.T) {
	gpu := openNull(t)
	c := NewCache(gpu, shader.Core, 8, nil, nil)

	_, ps := simplePair()
	e, err := c.Get(badVS(), ps)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Stub {
		t.Fatal("expected a stub pipeline for an untranslatable vertex shader")
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	gpu := openNull(t)
	c := NewCache(gpu, shader.Core, 1, nil, nil)

	vs1, ps1 := simplePair()
	if _, err := c.Get(vs1, ps1); err != nil {
		t.Fatal(err)
	}
	vs2, ps2 := badVS(), ps1
	e2, err := c.Get(vs2, ps2)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("cache len = %d, want 1 (capacity is 1)", c.Len())
	}
	again, err := c.Get(vs2, ps2)
	if err != nil {
		t.Fatal(err)
	}
	if again != e2 {
		t.Fatal("most recently used entry was evicted")
	}
}
