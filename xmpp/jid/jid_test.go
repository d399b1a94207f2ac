/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package jid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadJID(t *testing.T) {
	_, err := NewWithString("sonne@", false)
	require.NotNil(t, err)

	longStr := make([]byte, 1074)
	for i := range longStr {
		longStr[i] = 'a'
	}
	bigNode := string(longStr) + "@sonne.im"
	_, err = NewWithString(bigNode, false)
	require.NotNil(t, err)

	bigDomain := "sonne@" + string(longStr) + "/res"
	_, err = NewWithString(bigDomain, false)
	require.NotNil(t, err)

	bigResource := "sonne@sonne.im/" + string(longStr)
	_, err = NewWithString(bigResource, false)
	require.NotNil(t, err)

	_, err = NewWithString("sonne@sonne.im/", false)
	require.NotNil(t, err)
}

func TestNewJID(t *testing.T) {
	j1, err := New("ortari", "sonne.im", "desktop", false)
	require.Nil(t, err)
	require.Equal(t, "ortari", j1.Node())
	require.Equal(t, "sonne.im", j1.Domain())
	require.Equal(t, "desktop", j1.Resource())

	j2, err := New("ortari", "sonne.im", "desktop", true)
	require.Nil(t, err)
	require.Equal(t, "ortari", j2.Node())
	require.Equal(t, "sonne.im", j2.Domain())
	require.Equal(t, "desktop", j2.Resource())
}

func TestEmptyJID(t *testing.T) {
	j, err := NewWithString("", true)
	require.Nil(t, err)
	require.True(t, j.IsEmpty())

	j2, _ := NewWithString("sonne.im", true)
	require.False(t, j2.IsEmpty())
}

func TestJIDMatching(t *testing.T) {
	j1, _ := NewWithString("ortari@sonne.im/desktop", true)
	j2, _ := NewWithString("ortari@sonne.im/tablet", true)
	j3, _ := NewWithString("ortari@sonne.im", true)
	j4, _ := NewWithString("sonne.im", true)

	require.True(t, j1.Matches(j2, MatchesBare))
	require.False(t, j1.Matches(j2, MatchesFull))
	require.True(t, j1.Matches(j1, MatchesFull))
	require.True(t, j1.ToBareJID().Matches(j3, MatchesFull))
	require.False(t, j3.Matches(j4, MatchesBare))
	require.True(t, j3.Matches(j4, MatchesDomain))
}

func TestJIDString(t *testing.T) {
	j1, _ := New("ortari", "sonne.im", "desktop", true)
	require.Equal(t, "ortari@sonne.im/desktop", j1.String())
	require.Equal(t, "ortari@sonne.im", j1.ToBareJID().String())

	j2, _ := New("", "sonne.im", "", true)
	require.Equal(t, "sonne.im", j2.String())
	require.True(t, j2.IsServer())
}

func TestJIDKinds(t *testing.T) {
	j1, _ := NewWithString("ortari@sonne.im/desktop", true)
	require.True(t, j1.IsFull())
	require.False(t, j1.IsBare())

	j2, _ := NewWithString("ortari@sonne.im", true)
	require.True(t, j2.IsBare())

	j3, _ := NewWithString("sonne.im", true)
	require.True(t, j3.IsServer())
}
