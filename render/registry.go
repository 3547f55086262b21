// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import "sync"

// Registry is the device's weak registry of live resource ids, used
// to trigger resource invalidation on device reset without a device
// holding owning references back to every resource it created (which
// would make the two sides cyclically dependent). Each Resource
// stores its own device-assigned id; the device keeps only the set
// of ids that are still live.
type Registry struct {
	mu   sync.Mutex
	next uint64
	live map[uint64]*Resource
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{live: make(map[uint64]*Resource)}
}

// Add assigns obj a fresh id, registers it as live, and wraps it in
// a Resource with an initial ref count of 1.
func (r *Registry) Add(obj interface {
	Destroy()
}, queue *Queue) *Resource {
	r.mu.Lock()
	r.next++
	id := r.next
	r.mu.Unlock()

	res := NewResource(id, obj, queue)
	r.mu.Lock()
	r.live[id] = res
	r.mu.Unlock()
	return res
}

// Lookup returns the live resource for id, or (nil, false) if it was
// never registered or has already been invalidated.
func (r *Registry) Lookup(id uint64) (*Resource, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.live[id]
	return res, ok
}

// Forget removes id from the live set without destroying it. Used
// once Release's ref count reaches zero and teardown has been
// enqueued, since the registry should no longer hand the id out.
func (r *Registry) Forget(id uint64) {
	r.mu.Lock()
	delete(r.live, id)
	r.mu.Unlock()
}

// InvalidateAll clears the live set, used on device-lost: every
// resource's backend handle is unusable, so the registry drops them
// without enqueueing destroy commands (the backend context itself is
// gone, there is nothing left to destroy through).
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	r.live = make(map[uint64]*Resource)
	r.mu.Unlock()
}
