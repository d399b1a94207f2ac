/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package transport

import (
	"crypto/tls"
	"io"

	"github.com/sonne-im/sonne/xmpp"
)

// Type represents a stream transport type.
type Type int

const (
	// Socket represents a socket transport type.
	Socket Type = iota + 1
)

// String returns Type string representation.
func (tt Type) String() string {
	switch tt {
	case Socket:
		return "socket"
	}
	return ""
}

// Transport represents a stream transport mechanism.
type Transport interface {
	io.ReadWriteCloser

	// Type returns transport type value.
	Type() Type

	// WriteString writes a raw string to the transport.
	WriteString(s string) error

	// WriteElement writes an XML element to the transport.
	WriteElement(elem xmpp.XElement, includeClosing bool) error

	// StartTLS secures the transport using SSL/TLS.
	StartTLS(cfg *tls.Config)
}
