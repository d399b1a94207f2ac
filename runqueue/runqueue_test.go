/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package runqueue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunQueue_Order(t *testing.T) {
	q := New("test")

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	wg.Add(50)
	for i := 0; i < 50; i++ {
		i := i
		q.Run(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	require.Len(t, order, 50)
	for i := 0; i < 50; i++ {
		require.Equal(t, i, order[i])
	}
}

func TestRunQueue_DeferredPost(t *testing.T) {
	q := New("test")

	var inline int32
	done := make(chan struct{})

	q.Run(func() {
		var ran int32
		q.Run(func() {
			atomic.StoreInt32(&ran, 1)
			close(done)
		})
		// the nested operation must not have run inline
		atomic.StoreInt32(&inline, atomic.LoadInt32(&ran))
	})
	<-done
	require.Equal(t, int32(0), atomic.LoadInt32(&inline))
}

func TestRunQueue_Stop(t *testing.T) {
	q := New("test")

	var count int32
	for i := 0; i < 10; i++ {
		q.Run(func() {
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&count, 1)
		})
	}
	stopped := make(chan struct{})
	q.Stop(func() { close(stopped) })

	select {
	case <-stopped:
	case <-time.After(time.Second):
		require.FailNow(t, "run queue did not stop")
	}
	require.Equal(t, int32(10), atomic.LoadInt32(&count))

	// operations posted after stopping are discarded
	q.Run(func() { atomic.AddInt32(&count, 1) })
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, int32(10), atomic.LoadInt32(&count))
}
