/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package client

import (
	"io"
	"sync/atomic"

	"github.com/pborman/uuid"
	"github.com/sonne-im/sonne/log"
	"github.com/sonne-im/sonne/runqueue"
	"github.com/sonne-im/sonne/transport"
	"github.com/sonne-im/sonne/xmpp"
	"github.com/sonne-im/sonne/xmpp/jid"
)

// Client drives an XMPP stream over a transport and routes every
// incoming element through its task tree. All task state is confined
// to the client run queue: task methods must run on it, either from a
// dispatch or completion callback or through Schedule.
type Client struct {
	cfg *Config
	tr  transport.Transport

	runQueue *runqueue.RunQueue
	root     *Task

	connected int32

	// registered before Start, invoked on the run queue
	discHandlers []func(error)
}

// New creates a client bound to cfg over tr. The stream is not read
// until Start is called.
func New(cfg *Config, tr transport.Transport) (*Client, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:      cfg,
		tr:       tr,
		runQueue: runqueue.New("client:" + cfg.JID.String()),
	}
	c.root = newRootTask(c)
	return c, nil
}

func newRootTask(c *Client) *Task {
	t := &Task{
		client: c,
		state:  taskInFlight,
	}
	t.id = c.GenUniqueID()
	t.self = t
	return t
}

// JID returns the full address the stream is bound to.
func (c *Client) JID() *jid.JID { return c.cfg.JID }

// Host returns the server address.
func (c *Client) Host() *jid.JID { return c.cfg.Server }

// StreamBaseNS returns the stream base namespace.
func (c *Client) StreamBaseNS() string { return c.cfg.BaseNS }

// RootTask returns the task tree root. New top level tasks attach
// to it.
func (c *Client) RootTask() *Task { return c.root }

// Connected reports whether the stream is alive.
func (c *Client) Connected() bool {
	return atomic.LoadInt32(&c.connected) == 1
}

// GenUniqueID returns a unique stanza identifier.
func (c *Client) GenUniqueID() string {
	return uuid.New()
}

// Start marks the stream alive and begins reading elements from the
// transport. Calling Start more than once has no effect.
func (c *Client) Start() {
	if !atomic.CompareAndSwapInt32(&c.connected, 0, 1) {
		return
	}
	go c.readLoop()
}

// Close shuts the transport down. The read loop notices and runs the
// disconnection teardown on the run queue.
func (c *Client) Close() {
	_ = c.tr.Close()
}

// Schedule enqueues fn on the client run queue. Jobs run serially in
// submission order; a job scheduled from within another job runs on a
// later pass, never inline.
func (c *Client) Schedule(fn func()) {
	c.runQueue.Run(fn)
}

// Exec runs fn on the client run queue and waits for it to return.
// Callers use it to construct and launch tasks from outside the queue;
// calling Exec from within a queue job deadlocks.
func (c *Client) Exec(fn func()) {
	done := make(chan struct{})
	c.runQueue.Run(func() {
		fn()
		close(done)
	})
	<-done
}

// OnDisconnect registers a handler invoked on the run queue once the
// stream goes away. Must be called before Start.
func (c *Client) OnDisconnect(hnd func(error)) {
	c.discHandlers = append(c.discHandlers, hnd)
}

// Send enqueues el for transmission. Elements sent over a dead stream
// are dropped with a warning.
func (c *Client) Send(el xmpp.XElement) {
	c.runQueue.Run(func() {
		if !c.Connected() {
			log.Warnf("client %s: dropping %q element sent over a dead stream", c.cfg.JID, el.Name())
			return
		}
		if err := c.tr.WriteElement(el, true); err != nil {
			log.Error(err)
			c.terminate(err)
		}
	})
}

func (c *Client) readLoop() {
	p := xmpp.NewParser(c.tr, xmpp.SocketStream, c.cfg.MaxStanzaSize)
	for {
		el, err := p.ParseElement()
		if err != nil {
			c.terminate(err)
			return
		}
		if el == nil {
			continue
		}
		elem := el
		c.runQueue.Run(func() { c.processElement(elem) })
	}
}

func (c *Client) processElement(el xmpp.XElement) {
	if c.root.Take(el) {
		return
	}
	log.Debugf("client %s: unhandled %q element", c.cfg.JID, el.Name())
}

func (c *Client) terminate(err error) {
	if !atomic.CompareAndSwapInt32(&c.connected, 1, 0) {
		return
	}
	c.runQueue.Run(func() { c.handleDisconnect(err) })
}

// handleDisconnect fails every pending task and notifies disconnection
// handlers. Task completions land on later run queue passes, so
// nothing below reenters the tree while it is being walked.
func (c *Client) handleDisconnect(err error) {
	switch err {
	case nil, io.EOF, xmpp.ErrStreamClosedByPeer:
		log.Infof("client %s: stream closed", c.cfg.JID)
	default:
		log.Infof("client %s: stream failed: %v", c.cfg.JID, err)
	}
	for _, node := range c.root.descendants() {
		if node.baseTask().state == taskDestroyed {
			continue
		}
		if dh, ok := node.(DisconnectHandler); ok {
			dh.HandleDisconnect()
		}
	}
	for _, hnd := range c.discHandlers {
		hnd(err)
	}
}
