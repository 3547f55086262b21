// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import (
	"sync/atomic"

	"dx8gl/driver"
)

// Resource wraps a backend object (texture, buffer, surface, shader)
// with the atomic ref count D3D8's AddRef/Release contract requires.
// The last Release destroys the underlying object — but only from
// the render thread, since destruction needs the backend context —
// so Release enqueues a destroy command instead of calling
// driver.Destroyer.Destroy directly.
type Resource struct {
	id    uint64
	count int32
	obj   driver.Destroyer
	queue *Queue
}

// NewResource wraps obj with an initial ref count of 1.
func NewResource(id uint64, obj driver.Destroyer, queue *Queue) *Resource {
	return &Resource{id: id, count: 1, obj: obj, queue: queue}
}

// ID returns the resource's registry identifier (see Registry).
func (r *Resource) ID() uint64 { return r.id }

// AddRef increments the ref count and returns the new value.
func (r *Resource) AddRef() int32 { return atomic.AddInt32(&r.count, 1) }

// Release decrements the ref count. When it reaches zero, a destroy
// command for the underlying object is enqueued on the render thread
// rather than executed inline, so the call never blocks on GPU work.
// Release returns the ref count after the decrement.
func (r *Resource) Release() int32 {
	n := atomic.AddInt32(&r.count, -1)
	if n == 0 {
		r.queue.Destroy(r.obj)
	}
	return n
}
