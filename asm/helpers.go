// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"
)

// auxCell is the scratch data address every macro uses to stash the caller's
// A register across a sequence that must temporarily repoint A.
const auxCell = "__aux"

// saveA emits the instructions that copy the current A register into the
// __aux scratch cell. Clobbers D.
func saveA() string {
	return fmt.Sprintf("D=A\n@%s\nM=D", auxCell)
}

// restoreA emits the instructions that reload A from the __aux scratch cell.
func restoreA() string {
	return fmt.Sprintf("@%s\nA=M", auxCell)
}

// loadConstIntoD emits the instructions that load the signed 16-bit constant
// n into D, using the direct form for n>=0 and the bitwise-complement form
// for n<0: "@n;D=A" or "@~n;A=!A;D=A".
func loadConstIntoD(n int) string {
	if n >= 0 {
		return fmt.Sprintf("@%d\nD=A", n)
	}
	return fmt.Sprintf("@%d\nA=!A\nD=A", -n-1)
}

// addConstToD emits the instructions that update D to D+n (op=='+') or D-n
// (op=='-') for any signed 16-bit n, by bringing |n| into A and combining
// directly — no scratch cell needed, D is never read back through A.
func addConstToD(n int, op byte) string {
	if n == 0 {
		return ""
	}
	want := op // the ALU op we want to apply to D
	mag := n
	if n < 0 {
		mag = -n
		if op == '+' {
			want = '-'
		} else {
			want = '+'
		}
	}
	if mag == 32768 { // beyond an A-instruction's range: apply 32767, then 1
		return fmt.Sprintf("@32767\nD=D%cA\nD=D%c1", want, want)
	}
	if want == '+' {
		return fmt.Sprintf("@%d\nD=D+A", mag)
	}
	return fmt.Sprintf("@%d\nD=D-A", mag)
}

// loadArgumentIntoD emits the instructions that load an Argument's value
// into D: a register read, a dereferenced memory read, or a constant load.
func loadArgumentIntoD(a Argument) string {
	switch {
	case a.IsRegister():
		return fmt.Sprintf("D=%c", a.Register())
	case a.IsConstant():
		return loadConstIntoD(a.Constant())
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "@%s", a.Location())
		if d := a.Dereferences(); d != "" {
			b.WriteString("\n")
			b.WriteString(d)
		}
		b.WriteString("\nD=M")
		return b.String()
	}
}

// combineArgumentIntoD emits the instructions that update D to D+y (op=='+')
// or D-y (op=='-') for an arbitrary Argument y, without ever needing to read
// D back out through A: registers combine directly, constants go through A
// as an immediate, and addresses are dereferenced then combined via M.
func combineArgumentIntoD(y Argument, op byte) string {
	switch {
	case y.IsRegister():
		if op == '+' {
			return fmt.Sprintf("D=D+%c", y.Register())
		}
		return fmt.Sprintf("D=D-%c", y.Register())
	case y.IsConstant():
		return addConstToD(y.Constant(), op)
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "@%s", y.Location())
		if d := y.Dereferences(); d != "" {
			b.WriteString("\n")
			b.WriteString(d)
		}
		if op == '+' {
			b.WriteString("\nD=D+M")
		} else {
			b.WriteString("\nD=D-M")
		}
		return b.String()
	}
}

// writeDToDestination emits the instructions that store D into dst. With
// preserveA set it also reloads A from __aux (which the caller must already
// have saved there): before the write when dst is a register set, after it
// when dst is an Address (the write itself must repoint A). It never saves A.
func writeDToDestination(dst Destination, preserveA bool) string {
	var b strings.Builder
	if dst.IsRegisters() {
		if preserveA {
			b.WriteString(restoreA())
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s=D", dst.Registers())
		return b.String()
	}
	fmt.Fprintf(&b, "@%s", dst.Location())
	if d := dst.Dereferences(); d != "" {
		b.WriteString("\n")
		b.WriteString(d)
	}
	b.WriteString("\nM=D")
	if preserveA {
		b.WriteString("\n")
		b.WriteString(restoreA())
	}
	return b.String()
}

// wrap16 reduces n to the signed 16-bit two's-complement range used when
// constant-folding arithmetic macro calls.
func wrap16(n int) int {
	return ((n+32768)&0xFFFF)&0xFFFF - 32768
}

// uniqueLabel builds a reserved-namespace label for expansion index p.
func uniqueLabel(prefix string, p int) string {
	return fmt.Sprintf("%s_%d", prefix, p)
}

// isSingleDestination holds for a Destination describing exactly one
// register (not a multi-register subset) — required by SWAP's operands.
func isSingleDestination(d Destination) bool {
	return d.IsRegisters() && len(d.Registers()) == 1
}

// sameDestination holds when two Destinations name the identical cell —
// SWAP of a destination with itself is defined as a no-op.
func sameDestination(a, b Destination) bool {
	if a.IsRegisters() != b.IsRegisters() {
		return false
	}
	if a.IsRegisters() {
		return a.Registers() == b.Registers()
	}
	return a.Location() == b.Location() && a.Depth() == b.Depth()
}
