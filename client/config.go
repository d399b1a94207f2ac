/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package client

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sonne-im/sonne/xmpp"
	"github.com/sonne-im/sonne/xmpp/jid"
)

const defaultMaxStanzaSize = 32768

// Config represents a client connection configuration.
type Config struct {
	// JID is the full address the stream is bound to.
	JID *jid.JID

	// Server is the connection's server address.
	// Defaults to the JID domain.
	Server *jid.JID

	// BaseNS is the stream base namespace.
	// Defaults to the 'jabber:client' namespace.
	BaseNS string

	// MaxStanzaSize is the maximum size of an incoming stanza.
	MaxStanzaSize int

	// KeepAlive is the transport read deadline.
	KeepAlive time.Duration
}

type configProxy struct {
	JID           string `yaml:"jid"`
	Server        string `yaml:"server"`
	BaseNS        string `yaml:"base_ns"`
	MaxStanzaSize int    `yaml:"max_stanza_size"`
	KeepAlive     int    `yaml:"keep_alive"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := configProxy{}
	if err := unmarshal(&p); err != nil {
		return err
	}
	if len(p.JID) == 0 {
		return errors.New("client.Config: jid value is mandatory")
	}
	j, err := jid.NewWithString(p.JID, false)
	if err != nil {
		return err
	}
	c.JID = j
	if len(p.Server) > 0 {
		srv, err := jid.NewWithString(p.Server, false)
		if err != nil {
			return err
		}
		if !srv.IsServer() {
			return errors.Errorf("client.Config: invalid server value: %s", p.Server)
		}
		c.Server = srv
	}
	c.BaseNS = p.BaseNS
	c.MaxStanzaSize = p.MaxStanzaSize
	c.KeepAlive = time.Duration(p.KeepAlive) * time.Second
	return nil
}

func (c *Config) normalize() error {
	if c.JID == nil || len(c.JID.Domain()) == 0 {
		return errors.New("client.Config: a valid jid is mandatory")
	}
	if c.Server == nil {
		srv, err := jid.New("", c.JID.Domain(), "", true)
		if err != nil {
			return err
		}
		c.Server = srv
	}
	if len(c.BaseNS) == 0 {
		c.BaseNS = xmpp.ClientNamespace
	}
	if c.MaxStanzaSize == 0 {
		c.MaxStanzaSize = defaultMaxStanzaSize
	}
	return nil
}
