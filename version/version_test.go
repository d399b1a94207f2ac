/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package version_test

import (
	"testing"

	"github.com/sonne-im/sonne/version"
	"github.com/stretchr/testify/require"
)

func TestVersion_String(t *testing.T) {
	v := version.NewVersion(1, 9, 2)
	require.Equal(t, "1.9.2", v.String())
}

func TestVersion_IsEqual(t *testing.T) {
	v1 := version.NewVersion(1, 9, 2)
	v2 := version.NewVersion(1, 9, 2)
	v3 := version.NewVersion(1, 8, 2)
	require.True(t, v1.IsEqual(v2))
	require.True(t, v1.IsEqual(v1))
	require.False(t, v1.IsEqual(v3))
}

func TestVersion_IsGreater(t *testing.T) {
	v1 := version.NewVersion(1, 9, 2)
	require.True(t, version.NewVersion(1, 9, 3).IsGreater(v1))
	require.True(t, version.NewVersion(1, 10, 2).IsGreater(v1))
	require.True(t, version.NewVersion(2, 0, 0).IsGreater(v1))
	require.False(t, version.NewVersion(1, 9, 1).IsGreater(v1))
	require.False(t, v1.IsGreater(v1))
	require.True(t, v1.IsGreaterOrEqual(v1))
}

func TestVersion_IsLess(t *testing.T) {
	v1 := version.NewVersion(1, 9, 2)
	require.True(t, version.NewVersion(1, 9, 1).IsLess(v1))
	require.True(t, version.NewVersion(1, 8, 2).IsLess(v1))
	require.True(t, version.NewVersion(0, 9, 2).IsLess(v1))
	require.False(t, version.NewVersion(1, 9, 3).IsLess(v1))
	require.False(t, v1.IsLess(v1))
	require.True(t, v1.IsLessOrEqual(v1))
}
