/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package runqueue

import (
	"sync"

	"github.com/sonne-im/sonne/log"
)

// RunQueue serializes operation execution: queued functions run strictly
// one at a time, in posting order, on a single processing goroutine.
// A function posted from inside a running operation is always executed
// on a later pass, never inline.
type RunQueue struct {
	name    string
	mu      sync.Mutex
	queue   []func()
	running bool
	stopped bool
	stopCb  func()
}

// New returns an initialized run queue.
func New(name string) *RunQueue {
	return &RunQueue{name: name}
}

// Run pushes a new operation function into the queue.
func (m *RunQueue) Run(fn func()) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.queue = append(m.queue, fn)
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	go m.process()
}

// Stop signals the queue to stop running.
//
// The callback function is guaranteed to be executed only after all
// previously scheduled operations have completed; it runs immediately
// when no job is pending.
func (m *RunQueue) Stop(stopCb func()) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	if m.running || len(m.queue) > 0 {
		m.stopCb = stopCb
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	if stopCb != nil {
		stopCb()
	}
}

func (m *RunQueue) process() {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.running = false
			stopCb := m.stopCb
			stopped := m.stopped
			m.stopCb = nil
			m.mu.Unlock()

			if stopped && stopCb != nil {
				stopCb()
			}
			return
		}
		fn := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()

		m.run(fn)
	}
}

func (m *RunQueue) run(fn func()) {
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("run queue %s panicked with error: %v", m.name, err)
		}
	}()
	fn()
}
