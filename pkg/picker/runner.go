package picker

import "sync"

// AsyncActionRunner executes backend apply and preview calls on a single
// dedicated worker goroutine so the render loop never blocks on an external
// command. It holds at most one pending action: submitting while one is
// pending replaces it, so a burst of rapid navigation runs only the most
// recent action instead of queueing stale ones. In-flight actions are never
// interrupted.
type AsyncActionRunner struct {
	cond    *sync.Cond
	pending func()
	running bool
	closed  bool
	done    chan struct{}
}

// NewAsyncActionRunner creates the runner and starts its worker.
func NewAsyncActionRunner() *AsyncActionRunner {
	r := &AsyncActionRunner{
		cond: sync.NewCond(&sync.Mutex{}),
		done: make(chan struct{}),
	}
	go r.run()
	return r
}

// Submit schedules action, replacing any pending action that has not
// started yet. Submissions after Shutdown are dropped.
func (r *AsyncActionRunner) Submit(action func()) {
	r.cond.L.Lock()
	defer r.cond.L.Unlock()
	if r.closed {
		return
	}
	r.pending = action
	r.cond.Broadcast()
}

func (r *AsyncActionRunner) run() {
	defer close(r.done)
	for {
		r.cond.L.Lock()
		for r.pending == nil && !r.closed {
			r.cond.Wait()
		}
		if r.closed && r.pending == nil {
			r.cond.L.Unlock()
			return
		}
		action := r.pending
		r.pending = nil
		r.running = true
		r.cond.L.Unlock()

		// A panicking action must not kill the worker.
		func() {
			defer func() { _ = recover() }()
			action()
		}()

		r.cond.L.Lock()
		r.running = false
		r.cond.Broadcast()
		r.cond.L.Unlock()
	}
}

// Shutdown stops the runner and joins the worker. With flushPending true it
// first waits until the last submitted action has run to completion; with
// false any still-pending action is discarded, though an action already in
// flight still finishes.
func (r *AsyncActionRunner) Shutdown(flushPending bool) {
	r.cond.L.Lock()
	if flushPending {
		for r.pending != nil || r.running {
			r.cond.Wait()
		}
	}
	r.closed = true
	r.pending = nil
	r.cond.Broadcast()
	r.cond.L.Unlock()

	<-r.done
}
