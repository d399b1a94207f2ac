/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"fmt"
	"io"

	"github.com/sonne-im/sonne/pool"
)

var bufPool = pool.NewBufferPool()

const (
	// ClientNamespace is the default stream base namespace
	// of a client-to-server connection.
	ClientNamespace = "jabber:client"

	// StanzasNamespace qualifies the defined stanza error conditions.
	StanzasNamespace = "urn:ietf:params:xml:ns:xmpp-stanzas"
)

const (
	// GetType represents a 'get' IQ type.
	GetType = "get"

	// SetType represents a 'set' IQ type.
	SetType = "set"

	// ResultType represents a 'result' IQ type.
	ResultType = "result"

	// ErrType represents an 'error' stanza type.
	ErrType = "error"
)

// XElement represents a generic XML node element.
type XElement interface {
	fmt.Stringer

	Name() string
	Attributes() AttributeSet
	Elements() ElementSet

	Text() string

	ID() string
	Namespace() string
	Language() string
	From() string
	To() string
	Type() string

	IsStanza() bool

	IsError() bool
	Error() XElement

	ToXML(w io.Writer, includeClosing bool)
}
