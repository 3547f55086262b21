// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import (
	"testing"
	"time"
)

func TestResourceReleaseDestroysAtZeroRefs(t *testing.T) {
	gpu := openNullGPU(t)
	q := NewQueue(gpu, nil)
	defer q.Stop()

	destroyed := make(chan struct{})
	r := NewResource(1, destroyerFunc(func() { close(destroyed) }), q)

	if n := r.AddRef(); n != 2 {
		t.Fatalf("AddRef: count = %d, want 2", n)
	}
	if n := r.Release(); n != 1 {
		t.Fatalf("Release: count = %d, want 1", n)
	}
	select {
	case <-destroyed:
		t.Fatal("destroyed before ref count reached zero")
	default:
	}

	if n := r.Release(); n != 0 {
		t.Fatalf("Release: count = %d, want 0", n)
	}
	select {
	case <-destroyed:
	case <-time.After(time.Second):
		t.Fatal("destroy not enqueued after ref count reached zero")
	}
}

func TestResourceID(t *testing.T) {
	r := NewResource(42, destroyerFunc(func() {}), nil)
	if r.ID() != 42 {
		t.Fatalf("ID() = %d, want 42", r.ID())
	}
}
