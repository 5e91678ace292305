// Copyright 2024 Quarry Data, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package client

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// Config is the on-disk client configuration, usually
// quarry.yaml. Token is a credential specification
// (see ParseToken), so config files can reference the
// environment or a token file instead of embedding a
// secret.
type Config struct {
	Endpoint    string `json:"endpoint"`
	Token       string `json:"token,omitempty"`
	Database    string `json:"database,omitempty"`
	TimeoutSec  int    `json:"timeout,omitempty"`
	DisableGzip bool   `json:"disableGzip,omitempty"`
	MaxRetries  uint64 `json:"maxRetries,omitempty"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("config: endpoint is required")
	}
	if cfg.TimeoutSec < 0 {
		return nil, errors.New("config: timeout cannot be negative")
	}
	return &cfg, nil
}

// Options converts the config to client options.
func (c *Config) Options() Options {
	return Options{
		Endpoint:    c.Endpoint,
		Token:       c.Token,
		Database:    c.Database,
		Timeout:     time.Duration(c.TimeoutSec) * time.Second,
		DisableGzip: c.DisableGzip,
		MaxRetries:  c.MaxRetries,
	}
}
