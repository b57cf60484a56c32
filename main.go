// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mathos-ztolic/hackasm/asm"
	"github.com/mathos-ztolic/hackasm/config"
)

var (
	expandOnly bool
	verbose    bool
	configPath string
)

func init() {
	flag.BoolVar(&expandOnly, "expand-macros-only", false, "write post-macro-expansion source instead of binary")
	flag.BoolVar(&verbose, "v", false, "verbose pipeline trace")
	flag.StringVar(&configPath, "config", "", "path to hackasm.toml (default: none)")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: hackasm [--expand-macros-only] [--config path] [-v] <file>...\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[IO] %v\n", err)
		os.Exit(1)
	}
	asm.SetReservedPrefixes(cfg.Symbols.ReservedPrefixes)

	opts := asm.Options{
		Verbose:               verbose || cfg.Diagnostics.Verbose,
		ExpandOnly:            expandOnly,
		VariableBase:          cfg.Symbols.VariableBase,
		MaxFixpointIterations: cfg.Macros.MaxFixpointIterations,
	}

	for _, path := range args {
		if err := assembleOne(path, opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func assembleOne(path string, opts asm.Options) error {
	out, err := os.Create(asm.OutputPath(path, opts.ExpandOnly))
	if err != nil {
		return fmt.Errorf("[IO] %v", err)
	}
	defer out.Close()
	return asm.AssembleFile(path, opts, out)
}
