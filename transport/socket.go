/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package transport

import (
	"bufio"
	"crypto/tls"
	"io"
	"net"
	"time"

	"github.com/sonne-im/sonne/xmpp"
)

const socketBuffSize = 4096

type socketTransport struct {
	conn      net.Conn
	rw        io.ReadWriter
	br        *bufio.Reader
	bw        *bufio.Writer
	keepAlive time.Duration
}

// NewSocketTransport creates a socket class stream transport.
// A zero keepAlive disables read deadlines.
func NewSocketTransport(conn net.Conn, keepAlive time.Duration) Transport {
	return &socketTransport{
		conn:      conn,
		rw:        conn,
		br:        bufio.NewReaderSize(conn, socketBuffSize),
		bw:        bufio.NewWriterSize(conn, socketBuffSize),
		keepAlive: keepAlive,
	}
}

func (s *socketTransport) Type() Type {
	return Socket
}

func (s *socketTransport) Read(p []byte) (n int, err error) {
	if s.keepAlive > 0 {
		s.conn.SetReadDeadline(time.Now().Add(s.keepAlive))
	}
	return s.br.Read(p)
}

func (s *socketTransport) Write(p []byte) (n int, err error) {
	defer s.bw.Flush()
	return s.bw.Write(p)
}

func (s *socketTransport) Close() error {
	return s.conn.Close()
}

func (s *socketTransport) WriteString(str string) error {
	defer s.bw.Flush()
	_, err := io.WriteString(s.bw, str)
	return err
}

func (s *socketTransport) WriteElement(elem xmpp.XElement, includeClosing bool) error {
	defer s.bw.Flush()
	elem.ToXML(s.bw, includeClosing)
	return nil
}

func (s *socketTransport) StartTLS(cfg *tls.Config) {
	if _, ok := s.conn.(*tls.Conn); !ok {
		s.conn = tls.Client(s.conn, cfg)
		s.rw = s.conn
		s.bw.Reset(s.rw)
		s.br.Reset(s.rw)
	}
}
