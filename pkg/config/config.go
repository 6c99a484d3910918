// Copyright 2024 Flint Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads engine configuration from TOML.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/luantruong/flint/pkg/common/ferr"
	"github.com/luantruong/flint/pkg/logutil"
)

// Compression names accepted by [codec].compression.
const (
	CompressionNone = ""
	CompressionLZ4  = "lz4"
	CompressionZstd = "zstd"
)

type CodecConfig struct {
	// Compression selects the IPC body compression: "", "lz4" or "zstd".
	Compression string `toml:"compression"`
}

type ReduceConfig struct {
	// Parallelism is the merge worker count; values below 1 mean
	// sequential reduction.
	Parallelism int `toml:"parallelism"`
}

type Config struct {
	Log    logutil.LogConfig `toml:"log"`
	Codec  CodecConfig       `toml:"codec"`
	Reduce ReduceConfig      `toml:"reduce"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:    logutil.LogConfig{Level: "info"},
		Reduce: ReduceConfig{Parallelism: 1},
	}
}

// Load reads a TOML file on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, ferr.NewBadConfig("cannot decode %s: %s", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Codec.Compression {
	case CompressionNone, CompressionLZ4, CompressionZstd:
	default:
		return ferr.NewBadConfig("unknown codec compression %q", c.Codec.Compression)
	}
	return nil
}
