package ticketing

import (
	"sync"
	"time"
)

// DeferredTasks runs functions after a delay, keyed so that a pending task can
// be cancelled before it fires. Scheduling a key that already has a pending
// task replaces it.
type DeferredTasks struct {
	mtx    sync.Mutex
	timers map[string]*time.Timer
}

// NewDeferredTasks creates a new deferred task registry.
func NewDeferredTasks() *DeferredTasks {
	return &DeferredTasks{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule runs fn after the delay unless the key is cancelled first.
func (d *DeferredTasks) Schedule(key string, delay time.Duration, fn func()) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	d.timers[key] = time.AfterFunc(delay, func() {
		d.mtx.Lock()
		delete(d.timers, key)
		d.mtx.Unlock()

		fn()
	})
}

// Cancel stops the pending task for the key, reporting whether one was
// pending. A task that has already started running cannot be cancelled.
func (d *DeferredTasks) Cancel(key string) bool {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	t, ok := d.timers[key]
	if !ok {
		return false
	}
	delete(d.timers, key)
	return t.Stop()
}
