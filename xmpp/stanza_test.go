/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"testing"

	"github.com/sonne-im/sonne/xmpp/jid"
	"github.com/stretchr/testify/require"
)

func TestStanza_Null(t *testing.T) {
	var s Stanza
	require.True(t, s.IsNull())
	require.Equal(t, "", s.String())

	s2 := NewStanza(IQ, "")
	require.False(t, s2.IsNull())
	require.Equal(t, ClientNamespace, s2.BaseNS())
}

func TestStanza_Kind(t *testing.T) {
	s := NewStanza(Message, "")
	require.Equal(t, Message, s.Kind())
	require.Equal(t, "message", s.Element().Name())

	s.SetKind(Presence)
	require.Equal(t, Presence, s.Kind())
	require.Equal(t, "presence", s.Element().Name())
}

func TestStanza_FromElement(t *testing.T) {
	el := NewElementName("iq")
	s, err := NewStanzaFromElement(el, "")
	require.Nil(t, err)
	require.Equal(t, IQ, s.Kind())

	_, err = NewStanzaFromElement(NewElementName("query"), "")
	require.NotNil(t, err)
}

func TestStanza_Addressing(t *testing.T) {
	s := NewStanza(IQ, "")
	to, _ := jid.NewWithString("sonne.im", true)
	from, _ := jid.NewWithString("ortari@sonne.im/desktop", true)

	s.SetTo(to)
	s.SetFrom(from)
	s.SetID("i1")
	s.SetType(GetType)
	s.SetLang("en")

	require.Equal(t, "sonne.im", s.To().String())
	require.Equal(t, "ortari@sonne.im/desktop", s.From().String())
	require.Equal(t, "i1", s.ID())
	require.Equal(t, GetType, s.Type())
	require.Equal(t, "en", s.Lang())
	require.True(t, s.IsGet())
	require.False(t, s.IsSet())
}

func TestStanza_MissingAddress(t *testing.T) {
	s := NewStanza(IQ, "")
	require.Nil(t, s.To())
	require.Nil(t, s.From())
}

func TestStanza_AppendChild(t *testing.T) {
	s := NewStanza(IQ, "")
	q := s.CreateElement("jabber:iq:version", "query")
	s.AppendChild(q)

	require.Equal(t, 1, s.Element().Elements().Count())
	require.NotNil(t, s.Element().Elements().ChildNamespace("query", "jabber:iq:version"))

	txt := s.CreateTextElement("jabber:iq:version", "name", "sonne")
	require.Equal(t, "sonne", txt.Text())
}

func TestStanza_Error(t *testing.T) {
	s := NewStanza(IQ, "")
	require.Nil(t, s.Error())

	s.SetError(NewError(Cancel, ItemNotFound, "", nil))
	err := s.Error()
	require.NotNil(t, err)
	require.Equal(t, Cancel, err.Type)
	require.Equal(t, ItemNotFound, err.Condition)

	// setting a new error replaces the previous one
	s.SetError(NewError(Modify, BadRequest, "", nil))
	require.Len(t, s.Element().Elements().Children("error"), 1)
	require.Equal(t, BadRequest, s.Error().Condition)

	s.ClearError()
	require.Nil(t, s.Error())
}

func TestStanza_ErrorReply(t *testing.T) {
	s := NewStanza(IQ, "")
	to, _ := jid.NewWithString("sonne.im", true)
	from, _ := jid.NewWithString("ortari@sonne.im/desktop", true)
	s.SetTo(to)
	s.SetFrom(from)
	s.SetID("i1")
	s.SetType(GetType)
	s.AppendChild(s.CreateElement("jabber:iq:version", "query"))

	reply := s.ErrorReply(NewError(Cancel, ServiceUnavailable, "", nil))
	require.Equal(t, "sonne.im", reply.From().String())
	require.Equal(t, "ortari@sonne.im/desktop", reply.To().String())
	require.True(t, reply.IsError())
	require.Equal(t, ServiceUnavailable, reply.Error().Condition)

	// original stanza is left untouched
	require.Equal(t, GetType, s.Type())
	require.Nil(t, s.Error())
}
