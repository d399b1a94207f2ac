/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package main

import (
	"bytes"
	"io/ioutil"

	"github.com/sonne-im/sonne/client"
	"github.com/sonne-im/sonne/log"
	"gopkg.in/yaml.v2"
)

// Config represents a global configuration.
type Config struct {
	Address string        `yaml:"address"`
	Port    int           `yaml:"port"`
	Logger  log.Config    `yaml:"logger"`
	Client  client.Config `yaml:"client"`
}

// FromFile loads default global configuration from
// a specified file.
func (cfg *Config) FromFile(configFile string) error {
	b, err := ioutil.ReadFile(configFile)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, cfg)
}

// FromBuffer loads default global configuration from
// a specified byte buffer.
func (cfg *Config) FromBuffer(buf *bytes.Buffer) error {
	return yaml.Unmarshal(buf.Bytes(), cfg)
}
