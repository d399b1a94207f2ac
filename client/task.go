/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package client

import (
	"github.com/sonne-im/sonne/log"
	"github.com/sonne-im/sonne/xmpp"
	"github.com/sonne-im/sonne/xmpp/jid"
)

// Status codes reported for failures that carry no protocol error.
const (
	ErrDisconnected = 1
	ErrTimeout      = 2
)

type taskState int

const (
	taskCreated taskState = iota
	taskInFlight
	taskDone
	taskDestroyed
)

// TaskNode is the dispatch contract every task satisfies. A node either
// claims an incoming element or leaves it for its siblings; Take must
// delegate to children before refusing when the node is a grouping task.
type TaskNode interface {
	// Take offers an incoming element to the node, returning whether
	// the element was claimed.
	Take(el xmpp.XElement) bool

	baseTask() *Task
}

// GoHandler is the send hook a task redefines to build and
// transmit its request.
type GoHandler interface {
	HandleGo()
}

// DisconnectHandler is invoked on every pending task when the stream
// goes away. The base implementation fails the task with ErrDisconnected.
type DisconnectHandler interface {
	HandleDisconnect()
}

// Task is the base unit of request correlation. Concrete tasks embed
// *Task and register themselves through NewTaskWith so that dispatch
// reaches their Take redefinition.
type Task struct {
	id       string
	client   *Client
	parent   *Task
	children []TaskNode
	self     TaskNode

	state         taskState
	notifying     bool
	autoDelete    bool
	deletePending bool

	success    bool
	statusCode int
	statusText string
	stanzaErr  *xmpp.Error

	finishHandlers []func()
}

// NewTask creates a plain task attached to parent. Plain tasks only
// group children; they claim nothing themselves.
func NewTask(parent TaskNode) *Task {
	return NewTaskWith(parent, nil)
}

// NewTaskWith creates a task attached to parent on behalf of self, the
// embedding concrete task. Dispatch and send hooks are driven through
// self so the outer type's redefinitions apply.
func NewTaskWith(parent TaskNode, self TaskNode) *Task {
	p := parent.baseTask()
	t := &Task{
		client: p.client,
		parent: p,
	}
	t.id = t.client.GenUniqueID()
	if self == nil {
		self = t
	}
	t.self = self
	p.children = append(p.children, self)
	return t
}

func (t *Task) baseTask() *Task { return t }

// ID returns the task unique identifier, used as the stanza id of the
// request the task sends.
func (t *Task) ID() string { return t.id }

// Client returns the client the task belongs to.
func (t *Task) Client() *Client { return t.client }

// Parent returns the parent task, or nil for the root.
func (t *Task) Parent() *Task { return t.parent }

// Success reports whether the task completed successfully.
// Meaningful only after the task finished.
func (t *Task) Success() bool { return t.success }

// StatusCode returns the completion status code: 0 on success, a legacy
// protocol code on stanza errors, or one of the Err* constants.
func (t *Task) StatusCode() int { return t.statusCode }

// StatusText returns the completion status text.
func (t *Task) StatusText() string { return t.statusText }

// StanzaError returns the structured stanza error the task failed with,
// or nil when the failure carried none.
func (t *Task) StanzaError() *xmpp.Error { return t.stanzaErr }

// ErrorType returns the stanza error type, or 0 when no stanza
// error is present.
func (t *Task) ErrorType() xmpp.ErrorType {
	if t.stanzaErr == nil {
		return 0
	}
	return t.stanzaErr.Type
}

// ErrorCondition returns the stanza error condition, or 0 when no
// stanza error is present.
func (t *Task) ErrorCondition() xmpp.ErrorCondition {
	if t.stanzaErr == nil {
		return 0
	}
	return t.stanzaErr.Condition
}

// OnFinish registers a completion handler. Handlers run exactly once,
// in registration order, on the client run queue.
func (t *Task) OnFinish(hnd func()) {
	t.finishHandlers = append(t.finishHandlers, hnd)
}

// Go starts the task. When autoDelete is set the task destroys itself
// after completion notification. Starting over a dead stream fails
// immediately: nothing is sent, and an auto-deleting task is destroyed
// on a later run queue pass.
func (t *Task) Go(autoDelete bool) {
	t.autoDelete = autoDelete
	if t.state >= taskDone {
		return
	}
	c := t.client
	if !c.Connected() {
		log.Warnf("task %s: attempt to start over a dead stream", t.id)
		if autoDelete {
			c.Schedule(t.Destroy)
		}
		return
	}
	t.state = taskInFlight
	if gh, ok := t.self.(GoHandler); ok {
		gh.HandleGo()
	}
}

// HandleGo is the base send hook; it does nothing. Concrete tasks
// redefine it to build and send their request.
func (t *Task) HandleGo() {}

// Take offers an incoming element to the task. The base implementation
// only delegates to children; leaf tasks redefine it to claim their
// replies.
func (t *Task) Take(el xmpp.XElement) bool {
	return t.Delegate(el)
}

// Delegate offers el to the task children in registration order,
// stopping at the first one that claims it.
func (t *Task) Delegate(el xmpp.XElement) bool {
	nodes := make([]TaskNode, len(t.children))
	copy(nodes, t.children)
	for _, node := range nodes {
		if node.baseTask().state == taskDestroyed {
			continue
		}
		if node.Take(el) {
			return true
		}
	}
	return false
}

// Send transmits el over the client stream.
func (t *Task) Send(el xmpp.XElement) {
	t.client.Send(el)
}

// IQVerify reports whether x is an IQ reply correlated to a request the
// task sent to the given address with the given stanza id. An empty id
// imposes no constraint, and a non-empty xmlns additionally requires
// the reply payload namespace to match.
func (t *Task) IQVerify(x xmpp.XElement, to *jid.JID, id, xmlns string) bool {
	if x.Name() != "iq" {
		return false
	}
	from, err := jid.NewWithString(x.From(), true)
	if err != nil {
		return false
	}
	if to == nil {
		to = &emptyJID
	}
	local := t.client.JID()
	server := t.client.Host()

	switch {
	case from.IsEmpty():
		// an absent sender stands for the server itself
		if !to.IsEmpty() && !to.Matches(server, jid.MatchesFull) {
			return false
		}
	case from.Matches(local, jid.MatchesBare) || from.Matches(local.ToDomainJID(), jid.MatchesBare):
		// replies reflected from our own account or bare domain
		if !to.IsEmpty() &&
			!to.Matches(local, jid.MatchesBare) &&
			!to.Matches(server, jid.MatchesFull) {
			return false
		}
	default:
		if !from.Matches(to, jid.MatchesFull) {
			return false
		}
	}
	if len(id) > 0 && x.ID() != id {
		return false
	}
	if len(xmlns) > 0 && queryNamespace(x) != xmlns {
		return false
	}
	return true
}

// SetSuccess finishes the task successfully.
func (t *Task) SetSuccess(code int, text string) {
	if t.state >= taskDone {
		return
	}
	t.success = true
	t.statusCode = code
	t.statusText = text
	t.done()
}

// SetError finishes the task with the stanza error carried by el.
func (t *Task) SetError(el xmpp.XElement) {
	if t.state >= taskDone {
		return
	}
	t.success = false
	t.stanzaErr = StanzaErrorFromElement(el, t.client.StreamBaseNS())
	t.statusCode, t.statusText = errorStatus(t.stanzaErr)
	t.done()
}

// SetErrorCode finishes the task with a local error code.
func (t *Task) SetErrorCode(code int, text string) {
	if t.state >= taskDone {
		return
	}
	t.success = false
	t.statusCode = code
	t.statusText = text
	t.done()
}

// SafeDelete requests destruction of the task. Inside a completion
// notification destruction is deferred until the notification unwinds;
// otherwise the task is destroyed immediately. Safe to call repeatedly.
func (t *Task) SafeDelete() {
	if t.deletePending || t.state == taskDestroyed {
		return
	}
	t.deletePending = true
	if !t.notifying {
		t.Destroy()
	}
}

// Destroy detaches the task from its parent and destroys the whole
// subtree below it. A destroyed task claims no further elements.
func (t *Task) Destroy() {
	if t.state == taskDestroyed {
		return
	}
	t.state = taskDestroyed
	t.detach()
	children := t.children
	t.children = nil
	for _, node := range children {
		child := node.baseTask()
		child.parent = nil
		child.Destroy()
	}
	t.finishHandlers = nil
}

// Destroyed reports whether the task has been destroyed.
func (t *Task) Destroyed() bool { return t.state == taskDestroyed }

// HandleDisconnect fails a pending task with ErrDisconnected. The
// completion notification is deferred to a later run queue pass so
// that teardown never reenters the task tree it is walking.
func (t *Task) HandleDisconnect() {
	if t.state >= taskDone {
		return
	}
	t.success = false
	t.statusCode = ErrDisconnected
	t.statusText = "Disconnected"
	t.client.Schedule(t.done)
}

func (t *Task) done() {
	if t.state >= taskDone || t.notifying {
		return
	}
	t.state = taskDone
	if t.autoDelete {
		t.deletePending = true
	}
	t.notifying = true
	for _, hnd := range t.finishHandlers {
		hnd()
	}
	t.notifying = false

	if t.deletePending {
		t.Destroy()
	}
}

func (t *Task) detach() {
	p := t.parent
	if p == nil {
		return
	}
	t.parent = nil
	for i, node := range p.children {
		if node.baseTask() == t {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

func (t *Task) descendants() []TaskNode {
	var nodes []TaskNode
	for _, node := range t.children {
		nodes = append(nodes, node)
		nodes = append(nodes, node.baseTask().descendants()...)
	}
	return nodes
}

var emptyJID jid.JID

// queryNamespace returns the namespace of the first stanza child
// element, or an empty string.
func queryNamespace(x xmpp.XElement) string {
	elems := x.Elements().All()
	if len(elems) == 0 {
		return ""
	}
	return elems[0].Namespace()
}

// StanzaErrorFromElement extracts the structured error of a stanza
// qualified by baseNS, or nil when the stanza carries none.
func StanzaErrorFromElement(el xmpp.XElement, baseNS string) *xmpp.Error {
	errEl := el.Error()
	if errEl == nil {
		return nil
	}
	return xmpp.NewErrorFromElement(errEl, baseNS)
}

// errorStatus collapses a structured stanza error into the coarse code
// and text pair tasks report.
func errorStatus(stanzaErr *xmpp.Error) (int, string) {
	if stanzaErr == nil {
		return 0, ""
	}
	code := stanzaErr.LegacyCode()
	text := stanzaErr.Text
	if len(text) == 0 {
		text, _ = stanzaErr.Description()
	}
	return code, text
}
