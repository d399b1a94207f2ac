/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferPool(t *testing.T) {
	p := NewBufferPool()
	buf := p.Get()
	require.NotNil(t, buf)
	require.Equal(t, 0, buf.Len())

	buf.WriteString("sonne")
	p.Put(buf)

	buf2 := p.Get()
	require.Equal(t, 0, buf2.Len())
}
