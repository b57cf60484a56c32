// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a two-pass assembler for the Hack 16-bit
// instruction set, including a macro-expansion layer that runs before
// symbol resolution.
package asm

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// defaultVariableBase and defaultMaxFixpointIterations are the fallbacks
// withDefaults applies when Options leaves VariableBase or
// MaxFixpointIterations at zero; the config package's Default carries the
// same values separately.
const (
	defaultVariableBase          = 16
	defaultMaxFixpointIterations = 8
	specFixpointIterationBound   = 3 // the macro catalog's actual deepest recursion
)

// Options configures one assembly run.
type Options struct {
	Verbose               bool
	ExpandOnly            bool
	VariableBase          int
	MaxFixpointIterations int
}

func (o Options) withDefaults() Options {
	if o.VariableBase == 0 {
		o.VariableBase = defaultVariableBase
	}
	if o.MaxFixpointIterations == 0 {
		o.MaxFixpointIterations = defaultMaxFixpointIterations
	}
	// A config file that sets this too low would make even a plain $POW
	// call unexpandable; never honor a cap below the catalog's actual
	// deepest recursion.
	if o.MaxFixpointIterations < specFixpointIterationBound {
		o.MaxFixpointIterations = specFixpointIterationBound
	}
	return o
}

// Result of assembling one source file.
type Result struct {
	// Binary holds one 16-character '0'/'1' line per instruction. Nil when
	// Options.ExpandOnly is set.
	Binary []string
	// Expanded holds the post-macro-expansion, pre-symbol-resolution source
	// text, one line per entry. Always populated.
	Expanded []string
}

// assembler carries the options and logging state of a single Assemble
// call, a small bundle of options plus verbose-mode helpers, rather than
// free-standing package functions threading a bool through every call.
type assembler struct {
	opts Options
}

// Assemble runs the full pipeline over r: strip comments, expand macros to
// a fixpoint, resolve labels and variables, and (unless ExpandOnly) encode
// to binary text.
func Assemble(r io.Reader, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	a := &assembler{opts: opts}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(TagIO, -1, "reading source: %v", err)
	}

	a.logSection("Stripping comments")
	lines := newSource(string(data))
	lines, err = stripComments(lines)
	if err != nil {
		return nil, err
	}
	a.log("%d line(s) after comment stripping", len(lines))

	if err := rejectReservedUserNames(lines); err != nil {
		return nil, err
	}

	a.logSection("Expanding macros")
	lines, err = expandMacros(lines, opts.MaxFixpointIterations, a.traceMacro)
	if err != nil {
		return nil, err
	}
	a.log("%d line(s) after macro expansion", len(lines))

	expanded := make([]string, len(lines))
	for i, ln := range lines {
		expanded[i] = ln.Text
	}

	if opts.ExpandOnly {
		return &Result{Expanded: expanded}, nil
	}

	a.logSection("Resolving labels")
	st := NewSymbolTable(opts.VariableBase)
	lines, err = st.CollectLabels(lines)
	if err != nil {
		return nil, err
	}
	a.log("%d label(s) collected", len(st.labels)-23) // minus the 23 predefined symbols (SP..KBD, R0..R15)

	a.logSection("Resolving variables")
	lines, err = st.ResolveVariables(lines)
	if err != nil {
		return nil, err
	}
	a.log("%d variable(s) allocated", len(st.variables))

	a.logSection("Encoding")
	binary, err := EncodeProgram(lines)
	if err != nil {
		return nil, err
	}
	a.log("%d instruction(s) encoded", len(binary))

	return &Result{Binary: binary, Expanded: expanded}, nil
}

// OutputPath derives the destination filename for an input source path:
// without --expand-macros-only, a trailing ".asm" (matched case-
// insensitively) is replaced with ".hack", else ".hack" is appended; with
// the flag, ".asm" is replaced with ".expanded.asm", else ".asm" is
// appended.
func OutputPath(input string, expandOnly bool) string {
	hasAsmExt := len(input) >= 4 && strings.EqualFold(input[len(input)-4:], ".asm")
	switch {
	case expandOnly && hasAsmExt:
		return input[:len(input)-4] + ".expanded.asm"
	case expandOnly:
		return input + ".asm"
	case hasAsmExt:
		return input[:len(input)-4] + ".hack"
	default:
		return input + ".hack"
	}
}

// AssembleFile assembles the named source file and writes the result
// (binary text or, with ExpandOnly, expanded source) to w, one line per
// entry.
func AssembleFile(path string, opts Options, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return newError(TagIO, -1, "%v", err)
	}
	defer f.Close()

	result, err := Assemble(f, opts)
	if err != nil {
		return err
	}

	lines := result.Binary
	if opts.ExpandOnly {
		lines = result.Expanded
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return newError(TagIO, -1, "writing output: %v", err)
		}
	}
	return nil
}

// log prints a verbose-mode status line to stdout.
func (a *assembler) log(format string, args ...interface{}) {
	if a.opts.Verbose {
		fmt.Printf(format+"\n", args...)
	}
}

// logSection prints a verbose-mode section banner to stdout.
func (a *assembler) logSection(name string) {
	if a.opts.Verbose {
		fmt.Println(strings.Repeat("-", len(name)+6))
		fmt.Printf("-- %s --\n", name)
		fmt.Println(strings.Repeat("-", len(name)+6))
	}
}

// traceMacro prints one verbose-mode line per macro invocation expanded:
// the macro name, the source line it came from, and its assigned
// expansion index p.
func (a *assembler) traceMacro(name string, orig, p int) {
	if a.opts.Verbose {
		fmt.Printf("  $%s at line %d (p=%d)\n", name, orig, p)
	}
}
