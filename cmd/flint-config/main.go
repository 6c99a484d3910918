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

// flint-config validates an engine config file and prints the resolved
// configuration, defaults filled in. With no argument it prints the
// default configuration, usable as a starting template.
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/luantruong/flint/pkg/config"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Printf("usage: %s [configFile]\n", os.Args[0])
		os.Exit(2)
	}

	cfg := config.Default()
	if len(os.Args) == 2 {
		loaded, err := config.Load(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid config %s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "encode config: %v\n", err)
		os.Exit(1)
	}
}
