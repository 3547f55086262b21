// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package render implements the render thread: the single goroutine
// that owns a driver.GPU and consumes a FIFO queue of recorded
// command buffers submitted by the app thread. The app thread never
// blocks on GPU work on the steady-state path; it only blocks in
// Flush/WaitIdle, which are explicit synchronization points used
// before resource destruction and device reset.
package render

import (
	"sync"

	"go.uber.org/zap"

	"dx8gl/driver"
)

// job is one FIFO entry. Exactly one of cb or destroy is set: cb is
// a command buffer ready for submission, destroy is a resource
// teardown that must happen in the same order relative to other
// submissions (so a buffer that was still in flight when Release
// dropped its ref count is never destroyed ahead of commands that
// reference it).
type job struct {
	cb      driver.CmdBuffer
	destroy driver.Destroyer
	done    func(error)
}

// Queue is the render thread's command-buffer FIFO. The zero value
// is not usable; construct with NewQueue.
type Queue struct {
	gpu driver.GPU
	log *zap.SugaredLogger

	mu    sync.Mutex
	queue []job
	// deviceLost latches once the backend reports driver.ErrDeviceLost;
	// every subsequent submission fails fast with the same error until
	// Reset clears it.
	deviceLost bool
	// stopRequested is set by Stop; the render thread drains the
	// remaining queue and then exits instead of waiting for more work.
	stopRequested bool
	stopped       bool

	queueCV *sync.Cond
	idleCV  *sync.Cond
}

// NewQueue starts a render thread bound to gpu. log may be nil, in
// which case backend errors are dropped silently rather than logged.
func NewQueue(gpu driver.GPU, log *zap.SugaredLogger) *Queue {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	q := &Queue{gpu: gpu, log: log}
	q.queueCV = sync.NewCond(&q.mu)
	q.idleCV = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// Submit enqueues cb for execution on the render thread and returns
// immediately. done, if non-nil, is called from the render thread
// with the outcome once cb has executed (or been dropped). Submit is
// a no-op (calling done with driver.ErrFatal) after Stop.
func (q *Queue) Submit(cb driver.CmdBuffer, done func(error)) {
	q.mu.Lock()
	if q.stopRequested {
		q.mu.Unlock()
		q.log.Warn("render: submit() after stop(), command buffer dropped")
		if done != nil {
			done(driver.ErrFatal)
		}
		return
	}
	lost := q.deviceLost
	q.queue = append(q.queue, job{cb: cb, done: done})
	q.mu.Unlock()
	q.queueCV.Signal()
	if lost {
		q.log.Debug("render: submit() while device is lost, command buffer will be rejected on drain")
	}
}

// Destroy enqueues obj's teardown on the render thread, preserving
// its position relative to any command buffers already submitted
// that may still reference it. Called by Resource.Release when a
// ref count reaches zero.
func (q *Queue) Destroy(obj driver.Destroyer) {
	q.mu.Lock()
	if q.stopRequested {
		q.mu.Unlock()
		obj.Destroy()
		return
	}
	q.queue = append(q.queue, job{destroy: obj})
	q.mu.Unlock()
	q.queueCV.Signal()
}

// Flush wakes the render thread (if idle) and blocks until the queue
// is fully drained.
func (q *Queue) Flush() { q.WaitIdle() }

// WaitIdle blocks until the queue is empty and no command buffer is
// mid-execution.
func (q *Queue) WaitIdle() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.queue) > 0 && !q.stopped {
		q.idleCV.Wait()
	}
}

// Stop requests the render thread to drain the remaining queue and
// exit, then blocks until it has done so (join semantics). Further
// Submit calls after Stop are dropped with a warning.
func (q *Queue) Stop() {
	q.mu.Lock()
	q.stopRequested = true
	q.mu.Unlock()
	q.queueCV.Signal()

	q.mu.Lock()
	for !q.stopped {
		q.idleCV.Wait()
	}
	q.mu.Unlock()
}

// DeviceLost reports whether the render thread has latched a
// driver.ErrDeviceLost condition.
func (q *Queue) DeviceLost() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.deviceLost
}

// Reset clears a latched device-lost condition, allowing submissions
// to execute again. The caller is responsible for having already
// recreated any backend resources invalidated by the loss.
func (q *Queue) Reset() {
	q.mu.Lock()
	q.deviceLost = false
	q.mu.Unlock()
}

func (q *Queue) run() {
	for {
		q.mu.Lock()
		for len(q.queue) == 0 && !q.stopRequested {
			q.queueCV.Wait()
		}
		if len(q.queue) == 0 && q.stopRequested {
			q.stopped = true
			q.mu.Unlock()
			q.idleCV.Broadcast()
			return
		}
		j := q.queue[0]
		lost := q.deviceLost
		q.mu.Unlock()

		q.execute(j, lost)

		q.mu.Lock()
		q.queue = q.queue[1:]
		idle := len(q.queue) == 0
		q.mu.Unlock()
		if idle {
			q.idleCV.Broadcast()
		}
	}
}

// execute commits a single job's command buffer and waits for it to
// complete, since the queue is strictly FIFO and ordering across
// buffers must be preserved. A backend failure is logged and, if it
// is driver.ErrDeviceLost, latched so every later job fails fast
// without touching the backend.
func (q *Queue) execute(j job, alreadyLost bool) {
	if j.destroy != nil {
		j.destroy.Destroy()
		return
	}

	if alreadyLost {
		if j.done != nil {
			j.done(driver.ErrDeviceLost)
		}
		return
	}

	ch := make(chan error, 1)
	q.gpu.Commit([]driver.CmdBuffer{j.cb}, ch)
	err := <-ch
	if err != nil {
		q.log.Warnw("render: command buffer execution failed", "error", err)
		if err == driver.ErrDeviceLost {
			q.mu.Lock()
			q.deviceLost = true
			q.mu.Unlock()
		}
	}
	if j.done != nil {
		j.done(err)
	}
}
