/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sonne-im/sonne/client"
	"github.com/sonne-im/sonne/log"
	"github.com/sonne-im/sonne/transport"
	"github.com/sonne-im/sonne/version"
	"github.com/sonne-im/sonne/xmpp"
)

const defaultPort = 5222

const dialTimeout = time.Second * 15

const usageStr = `
Usage: sonne [options]

Options:
    -c, --config <file>    Configuration file path
    -h, --help             Show this message
    -v, --version          Show version
`

func main() {
	var configFile string
	var showVersion, showUsage bool

	fs := flag.NewFlagSet("sonne", flag.ExitOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&configFile, "config", "/etc/sonne/sonne.yml", "Configuration file path.")
	fs.StringVar(&configFile, "c", "/etc/sonne/sonne.yml", "Configuration file path.")
	fs.BoolVar(&showVersion, "version", false, "Show version.")
	fs.BoolVar(&showVersion, "v", false, "Show version.")
	fs.BoolVar(&showUsage, "help", false, "Show this message.")
	fs.BoolVar(&showUsage, "h", false, "Show this message.")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usageStr)
	}
	_ = fs.Parse(os.Args[1:])

	switch {
	case showUsage:
		fs.Usage()
		return
	case showVersion:
		fmt.Fprintf(os.Stdout, "sonne version: %v\n", version.Version)
		return
	}
	var cfg Config
	if err := cfg.FromFile(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "sonne: %v\n", err)
		os.Exit(1)
	}
	if err := run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "sonne: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *Config) error {
	if err := log.Initialize(&cfg.Logger); err != nil {
		return err
	}
	defer log.Shutdown()

	addr := cfg.Address
	if len(addr) == 0 {
		addr = cfg.Client.JID.Domain()
	}
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(addr, strconv.Itoa(port)), dialTimeout)
	if err != nil {
		return err
	}
	c, err := client.New(&cfg.Client, transport.NewSocketTransport(conn, cfg.Client.KeepAlive))
	if err != nil {
		_ = conn.Close()
		return err
	}
	disconnected := make(chan error, 1)
	c.OnDisconnect(func(err error) {
		disconnected <- err
	})
	c.Start()
	log.Infof("sonne %v: stream bound to %s", version.Version, c.JID())

	// announce availability
	pr := xmpp.NewStanza(xmpp.Presence, c.StreamBaseNS())
	c.Send(pr.Element())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sig:
		c.Close()
		<-disconnected
	case err := <-disconnected:
		return err
	}
	return nil
}
