/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package pool

import (
	"bytes"
	"sync"
)

// BufferPool represents a recyclable pool of byte buffers.
type BufferPool struct {
	p sync.Pool
}

// NewBufferPool returns a new buffer pool instance.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		p: sync.Pool{New: func() interface{} { return new(bytes.Buffer) }},
	}
}

// Get returns a cleared buffer instance from the pool.
func (bp *BufferPool) Get() *bytes.Buffer {
	return bp.p.Get().(*bytes.Buffer)
}

// Put resets a buffer instance and returns it to the pool.
func (bp *BufferPool) Put(buf *bytes.Buffer) {
	buf.Reset()
	bp.p.Put(buf)
}
