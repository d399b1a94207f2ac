/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package client

import (
	"testing"

	"github.com/sonne-im/sonne/xmpp"
	"github.com/sonne-im/sonne/xmpp/jid"
	"github.com/stretchr/testify/require"
)

type probeTask struct {
	*Task
	tag    string
	claim  bool
	visits *[]string
}

func newProbeTask(parent TaskNode, tag string, claim bool, visits *[]string) *probeTask {
	p := &probeTask{tag: tag, claim: claim, visits: visits}
	p.Task = NewTaskWith(parent, p)
	return p
}

func (p *probeTask) Take(el xmpp.XElement) bool {
	*p.visits = append(*p.visits, p.tag)
	if p.claim {
		p.SetSuccess(0, "")
		return true
	}
	return p.Delegate(el)
}

type goProbeTask struct {
	*Task
	sent bool
}

func newGoProbeTask(parent TaskNode) *goProbeTask {
	g := &goProbeTask{}
	g.Task = NewTaskWith(parent, g)
	return g
}

func (g *goProbeTask) HandleGo() { g.sent = true }

func TestTask_CompletionNotifiedOnce(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	c.Exec(func() {
		tk := NewTask(c.RootTask())
		var count int
		tk.OnFinish(func() { count++ })
		tk.OnFinish(func() { count += 10 })

		tk.SetSuccess(0, "all good")
		tk.SetErrorCode(500, "too late")
		tk.SetSuccess(0, "way too late")

		require.Equal(t, 11, count)
		require.True(t, tk.Success())
		require.Equal(t, 0, tk.StatusCode())
		require.Equal(t, "all good", tk.StatusText())
	})
}

func TestTask_CompletionInsideNotification(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	c.Exec(func() {
		tk := NewTask(c.RootTask())
		var count int
		tk.OnFinish(func() {
			count++
			tk.SetErrorCode(500, "reentrant")
		})
		tk.SetSuccess(0, "")

		require.Equal(t, 1, count)
		require.True(t, tk.Success())
	})
}

func TestTask_DispatchOrder(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	c.Exec(func() {
		var visits []string
		a := newProbeTask(c.RootTask(), "a", false, &visits)
		b := newProbeTask(c.RootTask(), "b", true, &visits)
		newProbeTask(c.RootTask(), "c", true, &visits)

		el := xmpp.NewElementName("iq")
		require.True(t, c.RootTask().Take(el))

		// b claims; c is never offered the element
		require.Equal(t, []string{"a", "b"}, visits)
		require.False(t, a.Success())
		require.True(t, b.Success())
	})
}

func TestTask_DispatchDepthFirst(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	c.Exec(func() {
		var visits []string
		group := NewTask(c.RootTask())
		newProbeTask(group, "grandchild", true, &visits)
		newProbeTask(c.RootTask(), "sibling", true, &visits)

		el := xmpp.NewElementName("iq")
		require.True(t, c.RootTask().Take(el))

		// the grouping task offers the element to its own children
		// before the dispatch reaches its later sibling
		require.Equal(t, []string{"grandchild"}, visits)
	})
}

func TestTask_DestroyedTaskClaimsNothing(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	c.Exec(func() {
		var visits []string
		a := newProbeTask(c.RootTask(), "a", true, &visits)
		b := newProbeTask(c.RootTask(), "b", true, &visits)

		a.Destroy()
		require.True(t, c.RootTask().Take(xmpp.NewElementName("iq")))
		require.Equal(t, []string{"b"}, visits)
		require.True(t, b.Success())
	})
}

func TestTask_SafeDeleteDuringNotification(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	c.Exec(func() {
		tk := NewTask(c.RootTask())
		var destroyedInside bool
		tk.OnFinish(func() {
			tk.SafeDelete()
			tk.SafeDelete()
			destroyedInside = tk.Destroyed()
		})
		tk.SetSuccess(0, "")

		require.False(t, destroyedInside)
		require.True(t, tk.Destroyed())
		require.Len(t, c.RootTask().children, 0)
	})
}

func TestTask_SafeDeleteOutsideNotification(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	c.Exec(func() {
		tk := NewTask(c.RootTask())
		tk.SafeDelete()
		require.True(t, tk.Destroyed())
		tk.SafeDelete()
	})
}

func TestTask_AutoDelete(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()
	c.Start()
	defer c.Close()

	c.Exec(func() {
		g := newGoProbeTask(c.RootTask())
		g.Go(true)
		require.True(t, g.sent)

		g.SetSuccess(0, "")
		require.True(t, g.Destroyed())
		require.Len(t, c.RootTask().children, 0)
	})
}

func TestTask_DestroyCascades(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	c.Exec(func() {
		parent := NewTask(c.RootTask())
		c1 := NewTask(parent)
		c2 := NewTask(parent)
		gc := NewTask(c1)

		parent.Destroy()

		require.True(t, parent.Destroyed())
		require.True(t, c1.Destroyed())
		require.True(t, c2.Destroyed())
		require.True(t, gc.Destroyed())
		require.Len(t, c.RootTask().children, 0)
	})
}

func TestTask_GoOverDeadStream(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	var kept, dropped *goProbeTask
	c.Exec(func() {
		kept = newGoProbeTask(c.RootTask())
		kept.Go(false)
		require.False(t, kept.sent)

		dropped = newGoProbeTask(c.RootTask())
		dropped.Go(true)
		require.False(t, dropped.Destroyed())
	})
	// auto-deleting tasks are destroyed on a later run queue pass
	c.Exec(func() {
		require.False(t, kept.Destroyed())
		require.True(t, dropped.Destroyed())
	})
}

func TestTask_Accessors(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	c.Exec(func() {
		parent := NewTask(c.RootTask())
		child := NewTask(parent)

		require.Equal(t, c, child.Client())
		require.Equal(t, parent, child.Parent())
		require.NotEqual(t, parent.ID(), child.ID())
		require.Nil(t, child.StanzaError())
		require.Equal(t, xmpp.ErrorType(0), child.ErrorType())
		require.Equal(t, xmpp.ErrorCondition(0), child.ErrorCondition())
	})
}

func verifyIQ(from, id, typ string, queryNS string) *xmpp.Element {
	el := xmpp.NewElementName("iq")
	if len(from) > 0 {
		el.SetFrom(from)
	}
	el.SetID(id)
	el.SetType(typ)
	if len(queryNS) > 0 {
		el.AppendElement(xmpp.NewElementNamespace("query", queryNS))
	}
	return el
}

func TestTask_IQVerify(t *testing.T) {
	c, srv := newTestClient(t)
	defer srv.Close()

	server, _ := jid.NewWithString("sonne.im", true)
	bare, _ := jid.NewWithString("ortari@sonne.im", true)
	full, _ := jid.NewWithString("ortari@sonne.im/balcony", true)
	otherRes, _ := jid.NewWithString("ortari@sonne.im/attic", true)
	peer, _ := jid.NewWithString("juliet@capulet.lit/chamber", true)
	peerOther, _ := jid.NewWithString("juliet@capulet.lit/orchard", true)

	c.Exec(func() {
		tk := NewTask(c.RootTask())

		// absent sender stands for the server
		require.True(t, tk.IQVerify(verifyIQ("", "i1", "result", ""), nil, "i1", ""))
		require.True(t, tk.IQVerify(verifyIQ("", "i1", "result", ""), server, "i1", ""))
		require.False(t, tk.IQVerify(verifyIQ("", "i1", "result", ""), peer, "i1", ""))

		// replies reflected from our own account or domain
		for _, from := range []string{"ortari@sonne.im", "ortari@sonne.im/balcony", "sonne.im"} {
			require.True(t, tk.IQVerify(verifyIQ(from, "i1", "result", ""), nil, "i1", ""))
			require.True(t, tk.IQVerify(verifyIQ(from, "i1", "result", ""), bare, "i1", ""))
			require.True(t, tk.IQVerify(verifyIQ(from, "i1", "result", ""), full, "i1", ""))
			require.True(t, tk.IQVerify(verifyIQ(from, "i1", "result", ""), server, "i1", ""))
			require.False(t, tk.IQVerify(verifyIQ(from, "i1", "result", ""), peer, "i1", ""))
		}
		_ = otherRes

		// third parties must reply from the exact address we sent to
		require.True(t, tk.IQVerify(verifyIQ("juliet@capulet.lit/chamber", "i1", "result", ""), peer, "i1", ""))
		require.False(t, tk.IQVerify(verifyIQ("juliet@capulet.lit/chamber", "i1", "result", ""), peerOther, "i1", ""))
		require.False(t, tk.IQVerify(verifyIQ("juliet@capulet.lit/chamber", "i1", "result", ""), nil, "i1", ""))

		// id must match
		require.False(t, tk.IQVerify(verifyIQ("", "i2", "result", ""), server, "i1", ""))

		// an empty expected id accepts any reply id
		require.True(t, tk.IQVerify(verifyIQ("", "srv-1", "result", ""), nil, "", ""))
		require.True(t, tk.IQVerify(verifyIQ("", "srv-1", "result", "jabber:iq:version"), server, "", "jabber:iq:version"))

		// payload namespace must match when requested
		good := verifyIQ("", "i1", "result", "jabber:iq:version")
		require.True(t, tk.IQVerify(good, server, "i1", "jabber:iq:version"))
		require.False(t, tk.IQVerify(good, server, "i1", "jabber:iq:last"))
		require.False(t, tk.IQVerify(verifyIQ("", "i1", "result", ""), server, "i1", "jabber:iq:version"))

		// only IQ stanzas correlate
		msg := xmpp.NewElementName("message")
		msg.SetID("i1")
		require.False(t, tk.IQVerify(msg, server, "i1", ""))

		// unparseable sender address
		require.False(t, tk.IQVerify(verifyIQ("juliet@", "i1", "result", ""), server, "i1", ""))
	})
}
