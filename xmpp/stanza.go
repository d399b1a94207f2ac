/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"github.com/pkg/errors"
	"github.com/sonne-im/sonne/xmpp/jid"
)

// Kind represents a stanza element kind.
type Kind int

const (
	// Message represents a 'message' stanza kind.
	Message Kind = iota + 1

	// Presence represents a 'presence' stanza kind.
	Presence

	// IQ represents an 'iq' stanza kind.
	IQ
)

// String returns the stanza element name associated to the kind.
func (k Kind) String() string {
	switch k {
	case Message:
		return MessageName
	case Presence:
		return PresenceName
	case IQ:
		return IQName
	}
	return ""
}

// KindFromName returns the stanza kind associated to an element name.
func KindFromName(name string) (Kind, bool) {
	switch name {
	case MessageName:
		return Message, true
	case PresenceName:
		return Presence, true
	case IQName:
		return IQ, true
	}
	return 0, false
}

// Stanza represents an addressed XML envelope of a fixed kind.
// It is a value-like handle over a backing element tree: copies
// share the same backing element. The zero value is the null stanza.
type Stanza struct {
	el     *Element
	baseNS string
}

// NewStanza creates an empty stanza of a given kind.
// An empty baseNS defaults to the client stream namespace.
func NewStanza(kind Kind, baseNS string) Stanza {
	if len(baseNS) == 0 {
		baseNS = ClientNamespace
	}
	return Stanza{el: NewElementName(kind.String()), baseNS: baseNS}
}

// NewStanzaFromElement creates a stanza backed by an existing element.
// Returns an error when the element name is not a stanza kind.
func NewStanzaFromElement(el *Element, baseNS string) (Stanza, error) {
	if _, ok := KindFromName(el.Name()); !ok {
		return Stanza{}, errors.Errorf("xmpp: unrecognized stanza name: %s", el.Name())
	}
	if len(baseNS) == 0 {
		baseNS = ClientNamespace
	}
	return Stanza{el: el, baseNS: baseNS}, nil
}

// IsNull returns true if the stanza has no backing element.
func (s Stanza) IsNull() bool {
	return s.el == nil
}

// Element returns the stanza backing element.
func (s Stanza) Element() *Element {
	return s.el
}

// BaseNS returns the stream base namespace the stanza is bound to.
func (s Stanza) BaseNS() string {
	return s.baseNS
}

// String returns the stanza raw XML representation.
func (s Stanza) String() string {
	if s.el == nil {
		return ""
	}
	return s.el.String()
}

// CreateElement creates a detached element scoped to the stanza.
func (s Stanza) CreateElement(namespace, name string) *Element {
	return NewElementNamespace(name, namespace)
}

// CreateTextElement creates a detached element with character data
// scoped to the stanza.
func (s Stanza) CreateTextElement(namespace, name, text string) *Element {
	return NewElementText(name, namespace, text)
}

// AppendChild attaches an element to the stanza. Elements originating
// from a foreign element implementation are copied before attaching.
func (s Stanza) AppendChild(el XElement) {
	if own, ok := el.(*Element); ok {
		s.el.AppendElement(own)
		return
	}
	s.el.AppendElement(NewElementFromElement(el))
}

// Kind returns the stanza kind.
func (s Stanza) Kind() Kind {
	k, _ := KindFromName(s.el.Name())
	return k
}

// SetKind sets the stanza kind.
func (s Stanza) SetKind(k Kind) {
	s.el.SetName(k.String())
}

// To returns 'to' stanza address, or nil when absent or unparseable.
func (s Stanza) To() *jid.JID {
	return stanzaJID(s.el.To())
}

// SetTo sets 'to' stanza address. A nil address clears it.
func (s Stanza) SetTo(j *jid.JID) {
	if j == nil {
		s.el.RemoveAttribute("to")
		return
	}
	s.el.SetTo(j.String())
}

// From returns 'from' stanza address, or nil when absent or unparseable.
func (s Stanza) From() *jid.JID {
	return stanzaJID(s.el.From())
}

// SetFrom sets 'from' stanza address. A nil address clears it.
func (s Stanza) SetFrom(j *jid.JID) {
	if j == nil {
		s.el.RemoveAttribute("from")
		return
	}
	s.el.SetFrom(j.String())
}

// ID returns 'id' stanza attribute.
func (s Stanza) ID() string {
	return s.el.ID()
}

// SetID sets 'id' stanza attribute.
func (s Stanza) SetID(identifier string) {
	s.el.SetID(identifier)
}

// Type returns 'type' stanza attribute.
func (s Stanza) Type() string {
	return s.el.Type()
}

// SetType sets 'type' stanza attribute.
func (s Stanza) SetType(tp string) {
	s.el.SetType(tp)
}

// Lang returns 'xml:lang' stanza attribute.
func (s Stanza) Lang() string {
	return s.el.Language()
}

// SetLang sets 'xml:lang' stanza attribute.
func (s Stanza) SetLang(lang string) {
	s.el.SetLanguage(lang)
}

// IsGet returns true if this is a 'get' type IQ stanza.
func (s Stanza) IsGet() bool {
	return s.Kind() == IQ && s.Type() == GetType
}

// IsSet returns true if this is a 'set' type IQ stanza.
func (s Stanza) IsSet() bool {
	return s.Kind() == IQ && s.Type() == SetType
}

// IsResult returns true if this is a 'result' type IQ stanza.
func (s Stanza) IsResult() bool {
	return s.Kind() == IQ && s.Type() == ResultType
}

// IsError returns true if the stanza has a 'type' attribute of value 'error'.
func (s Stanza) IsError() bool {
	return s.Type() == ErrType
}

// Error returns the stanza structured error, or nil when the backing
// element carries no error child.
func (s Stanza) Error() *Error {
	errEl := s.el.Error()
	if errEl == nil {
		return nil
	}
	return NewErrorFromElement(errEl, s.baseNS)
}

// SetError attaches a structured error to the stanza,
// replacing any existing one.
func (s Stanza) SetError(err *Error) {
	s.el.RemoveElements("error")
	s.el.AppendElement(err.Element(s.baseNS))
}

// ClearError removes the stanza error child.
func (s Stanza) ClearError() {
	s.el.RemoveElements("error")
}

// ErrorReply returns an error reply copy of the stanza: addresses are
// swapped, type is set to 'error' and the structured error is attached
// to the original payload.
func (s Stanza) ErrorReply(err *Error) Stanza {
	reply := Stanza{el: NewElementFromElement(s.el), baseNS: s.baseNS}
	reply.el.SetFrom(s.el.To())
	reply.el.SetTo(s.el.From())
	reply.SetType(ErrType)
	reply.SetError(err)
	return reply
}

func stanzaJID(addr string) *jid.JID {
	if len(addr) == 0 {
		return nil
	}
	j, err := jid.NewWithString(addr, true)
	if err != nil {
		return nil
	}
	return j
}
