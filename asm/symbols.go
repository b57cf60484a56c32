// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strconv"
	"strings"
)

// reservedPrefixes names every prefix a user symbol (label, variable, or
// macro argument) must not begin with, since it is also used to namespace
// generated scratch cells and labels. Configurable via the [symbols] table
// (see the config package); this is the built-in default.
var reservedPrefixes = []string{"__"}

// SetReservedPrefixes overrides the reserved-name prefix list, for the CLI
// to apply a loaded config.Config's [symbols] table before assembling.
func SetReservedPrefixes(prefixes []string) {
	reservedPrefixes = prefixes
}

func isReservedName(name string) bool {
	for _, p := range reservedPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// SymbolTable holds the two disjoint name->address mappings: labels
// (declared with "(NAME)") and variables (allocated on first reference).
type SymbolTable struct {
	labels    map[string]int
	variables map[string]int
	nextVar   int
}

// NewSymbolTable preloads the seven predefined labels and R0..R15, and sets
// the first address handed to a newly seen variable.
func NewSymbolTable(variableBase int) *SymbolTable {
	st := &SymbolTable{
		labels: map[string]int{
			"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
			"SCREEN": 16384, "KBD": 24576,
		},
		variables: map[string]int{},
		nextVar:   variableBase,
	}
	for i := 0; i <= 15; i++ {
		st.labels["R"+strconv.Itoa(i)] = i
	}
	return st
}

// CollectLabels is the label resolution pass: every "(LABEL)" line is
// validated, recorded as labels[LABEL] = current index, and deleted so
// later indices stay correct. Duplicate declarations last-win, matching a
// plain dictionary-assignment semantics (see DESIGN.md).
func (st *SymbolTable) CollectLabels(lines []SourceLine) ([]SourceLine, error) {
	var out []SourceLine
	for _, ln := range lines {
		if !strings.HasPrefix(ln.Text, "(") {
			out = append(out, SourceLine{Text: ln.Text, Orig: ln.Orig})
			continue
		}
		if !strings.HasSuffix(ln.Text, ")") || len(ln.Text) < 3 {
			return nil, newError(TagSYM, ln.Orig, "malformed label declaration %q", ln.Text)
		}
		name := ln.Text[1 : len(ln.Text)-1]
		if name == "" || strings.ContainsAny(name, "() \t") {
			return nil, newError(TagSYM, ln.Orig, "malformed label declaration %q", ln.Text)
		}
		st.labels[name] = len(out)
	}
	return reindex(out), nil
}

// ResolveVariables is the variable resolution pass: every "@name" whose
// suffix is not all-digits is resolved against labels, or else allocated
// as a fresh variable starting at the configured base.
func (st *SymbolTable) ResolveVariables(lines []SourceLine) ([]SourceLine, error) {
	out := make([]SourceLine, len(lines))
	for i, ln := range lines {
		if !strings.HasPrefix(ln.Text, "@") {
			out[i] = ln
			continue
		}
		sym := ln.Text[1:]
		if sym == "" {
			return nil, newError(TagSYM, ln.Orig, "empty address operand")
		}
		if isAllDigits(sym) {
			out[i] = ln
			continue
		}
		addr, ok := st.labels[sym]
		if !ok {
			addr, ok = st.variables[sym]
			if !ok {
				addr = st.nextVar
				st.variables[sym] = addr
				st.nextVar++
			}
		}
		out[i] = SourceLine{Text: "@" + strconv.Itoa(addr), Orig: ln.Orig, Index: ln.Index}
	}
	return out, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
