// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"
)

func init() {
	registerSimple("SWAP", expandSwap)
}

// expandSwap implements $SWAP(X,Y). Both operands must be single
// destinations (a lone register or a single address cell, not a
// multi-register subset). Self-swap is a no-op.
//
// When both operands are registers drawn from {D,M} or {A,M} or {A,D}, A
// itself either never moves or is deliberately one of the two swapped
// values, so there is nothing to restore beyond the swap's own semantics.
// Whenever at least one operand is an address, the expansion must repoint
// A to reach it, and A is left at the last address touched rather than
// restored — SWAP is the one arithmetic macro here that never restores the
// caller's A at the end; __aux serves as a value-transfer cell, or (for an
// M-with-address swap) to find M's cell again after reading the address.
func expandSwap(args []string, p int) (string, error) {
	if len(args) != 2 {
		return "", newError(TagMCR, 0, "SWAP expects 2 arguments, got %d", len(args))
	}
	x, err := ParseDestination(args[0])
	if err != nil {
		return "", newError(TagMCR, 0, "first operand: %v", err)
	}
	y, err := ParseDestination(args[1])
	if err != nil {
		return "", newError(TagMCR, 0, "second operand: %v", err)
	}
	if !isSingleDestination(x) {
		return "", newError(TagMCR, 0, "SWAP operand %q is not a single destination", args[0])
	}
	if !isSingleDestination(y) {
		return "", newError(TagMCR, 0, "SWAP operand %q is not a single destination", args[1])
	}
	if sameDestination(x, y) {
		return "", nil
	}

	// Both registers: classic subtract-swap, or the M-as-scratch trick.
	if x.IsRegisters() && y.IsRegisters() {
		return swapRegisters(x.Registers()[0], y.Registers()[0]), nil
	}

	// Exactly one register, one address.
	if x.IsRegisters() {
		return swapRegisterAddress(x.Registers()[0], y), nil
	}
	if y.IsRegisters() {
		return swapRegisterAddress(y.Registers()[0], x), nil
	}

	// Both addresses.
	return swapAddresses(x, y), nil
}

func swapRegisters(r1, r2 byte) string {
	lo, hi := r1, r2
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case lo == 'D' && hi == 'M':
		return "D=D+M\nM=D-M\nD=D-M"
	case lo == 'A' && hi == 'D':
		return "D=D-A\nA=D+A\nD=A-D"
	case lo == 'A' && hi == 'M':
		return "D=M\nM=A\nA=D"
	}
	return ""
}

// swapRegisterAddress swaps register reg with the cell named by addr.
func swapRegisterAddress(reg byte, addr Destination) string {
	var b strings.Builder
	deref := addr.Dereferences()

	switch reg {
	case 'D':
		fmt.Fprintf(&b, "@%s\n", addr.Location())
		if deref != "" {
			b.WriteString(deref)
			b.WriteString("\n")
		}
		b.WriteString("D=D+M\nM=D-M\nD=D-M")
	case 'A':
		b.WriteString("D=A\n")
		fmt.Fprintf(&b, "@%s\n", addr.Location())
		if deref != "" {
			b.WriteString(deref)
			b.WriteString("\n")
		}
		b.WriteString("D=D+M\nM=D-M\nD=D-M\nA=D")
	case 'M':
		fmt.Fprintf(&b, "D=A\n@%s\nM=D\n", auxCell)
		fmt.Fprintf(&b, "@%s\n", addr.Location())
		if deref != "" {
			b.WriteString(deref)
			b.WriteString("\n")
		}
		b.WriteString("D=M\n")
		fmt.Fprintf(&b, "@%s\nA=M\n", auxCell)
		b.WriteString("D=D+M\nM=D-M\nD=D-M\n")
		fmt.Fprintf(&b, "@%s\n", addr.Location())
		if deref != "" {
			b.WriteString(deref)
			b.WriteString("\n")
		}
		b.WriteString("M=D")
	}
	return b.String()
}

func swapAddresses(a, c Destination) string {
	var b strings.Builder
	d1, d2 := a.Dereferences(), c.Dereferences()

	fmt.Fprintf(&b, "@%s\n", a.Location())
	if d1 != "" {
		b.WriteString(d1)
		b.WriteString("\n")
	}
	b.WriteString("D=M\n")
	fmt.Fprintf(&b, "@%s\nM=D\n", auxCell)

	fmt.Fprintf(&b, "@%s\n", c.Location())
	if d2 != "" {
		b.WriteString(d2)
		b.WriteString("\n")
	}
	b.WriteString("D=M\n")

	fmt.Fprintf(&b, "@%s\n", a.Location())
	if d1 != "" {
		b.WriteString(d1)
		b.WriteString("\n")
	}
	b.WriteString("M=D\n")

	fmt.Fprintf(&b, "@%s\nD=M\n", auxCell)
	fmt.Fprintf(&b, "@%s\n", c.Location())
	if d2 != "" {
		b.WriteString(d2)
		b.WriteString("\n")
	}
	b.WriteString("M=D")
	return b.String()
}
