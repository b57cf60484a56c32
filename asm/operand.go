// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// canonical destination register-set spellings, each written with its
// registers in alphabetical order (A, D, M).
var registerSets = map[string]bool{
	"M": true, "D": true, "MD": true, "A": true,
	"AM": true, "AD": true, "AMD": true,
}

// destKind discriminates the two Destination variants.
type destKind byte

const (
	destRegisters destKind = iota
	destAddress
)

// Destination is a tagged union of either a register subset or a
// (possibly multi-level) indirect address.
type Destination struct {
	kind      destKind
	registers string // valid iff kind == destRegisters
	location  string // valid iff kind == destAddress
	depth     int    // valid iff kind == destAddress; always >= 1
}

func (d Destination) IsRegisters() bool { return d.kind == destRegisters }
func (d Destination) IsAddress() bool   { return d.kind == destAddress }

// Registers returns the canonical register-set spelling. Panics if d is not
// a Registers destination; callers must check IsRegisters first.
func (d Destination) Registers() string {
	if d.kind != destRegisters {
		panic("asm: Registers() called on an address Destination")
	}
	return d.registers
}

// Location and Depth describe an address Destination. Depth 1 means "the
// cell named Location directly"; depth k>1 means follow M exactly k-1 times.
func (d Destination) Location() string {
	if d.kind != destAddress {
		panic("asm: Location() called on a register-set Destination")
	}
	return d.location
}

func (d Destination) Depth() int {
	if d.kind != destAddress {
		panic("asm: Depth() called on a register-set Destination")
	}
	return d.depth
}

// Dereferences returns the "follow the indirection chain" primitive block:
// depth-1 copies of "A=M", one per pointer hop beyond the first.
func (d Destination) Dereferences() string {
	if d.depth <= 1 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("A=M\n", d.depth-1), "\n")
}

// argKind discriminates the three Argument variants.
type argKind byte

const (
	argRegister argKind = iota
	argAddress
	argConstant
)

// Argument is a tagged union of a register, a (possibly multi-level)
// indirect address, or a signed constant.
type Argument struct {
	kind     argKind
	register byte // 'A', 'D', or 'M'; valid iff kind == argRegister
	location string
	depth    int
	constant int
}

func (a Argument) IsRegister() bool { return a.kind == argRegister }
func (a Argument) IsAddress() bool  { return a.kind == argAddress }
func (a Argument) IsConstant() bool { return a.kind == argConstant }

// IsOneop holds for every Register variant and for Constants in {-1,0,1}:
// these six tokens are directly encodable as a one-operand ALU computation.
func (a Argument) IsOneop() bool {
	if a.kind == argRegister {
		return true
	}
	return a.kind == argConstant && a.constant >= -1 && a.constant <= 1
}

func (a Argument) Register() byte {
	if a.kind != argRegister {
		panic("asm: Register() called on a non-register Argument")
	}
	return a.register
}

func (a Argument) Location() string {
	if a.kind != argAddress {
		panic("asm: Location() called on a non-address Argument")
	}
	return a.location
}

func (a Argument) Depth() int {
	if a.kind != argAddress {
		panic("asm: Depth() called on a non-address Argument")
	}
	return a.depth
}

func (a Argument) Dereferences() string {
	if a.depth <= 1 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("A=M\n", a.depth-1), "\n")
}

func (a Argument) Constant() int {
	if a.kind != argConstant {
		panic("asm: Constant() called on a non-constant Argument")
	}
	return a.constant
}

// Oneop returns the ALU-encodable spelling of a one-op argument: a register
// letter or one of "-1", "0", "1". Panics if !IsOneop().
func (a Argument) Oneop() string {
	if !a.IsOneop() {
		panic("asm: Oneop() called on a non-oneop Argument")
	}
	if a.kind == argRegister {
		return string(a.register)
	}
	switch a.constant {
	case -1:
		return "-1"
	case 0:
		return "0"
	default:
		return "1"
	}
}

// parseIndirect splits a token of the form `*^k @ loc` (k>=0 leading '*'
// characters followed by '@' and a non-empty location) into (loc, k+1).
// Returns ok=false if the token isn't of that shape.
func parseIndirect(s string) (loc string, depth int, ok bool) {
	stars := 0
	for stars < len(s) && s[stars] == '*' {
		stars++
	}
	rest := s[stars:]
	if len(rest) == 0 || rest[0] != '@' {
		return "", 0, false
	}
	loc = rest[1:]
	if loc == "" {
		return "", 0, false
	}
	return loc, stars + 1, true
}

// parseSignedInt parses an optional leading '-' followed by one or more
// decimal digits. No other sign or base decoration is accepted.
func parseSignedInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	neg := false
	digits := s
	if s[0] == '-' {
		neg = true
		digits = s[1:]
	}
	if digits == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

// ParseDestination parses a destination operand: a register subset or an
// indirect address.
func ParseDestination(s string) (Destination, error) {
	if registerSets[s] {
		return Destination{kind: destRegisters, registers: s}, nil
	}
	if loc, depth, ok := parseIndirect(s); ok {
		return Destination{kind: destAddress, location: loc, depth: depth}, nil
	}
	return Destination{}, errBadDestination
}

// ParseArgument parses an argument operand, trying Register, then Address,
// then Constant in that order.
func ParseArgument(s string) (Argument, error) {
	if len(s) == 1 && (s[0] == 'A' || s[0] == 'D' || s[0] == 'M') {
		return Argument{kind: argRegister, register: s[0]}, nil
	}
	if loc, depth, ok := parseIndirect(s); ok {
		return Argument{kind: argAddress, location: loc, depth: depth}, nil
	}
	if n, ok := parseSignedInt(s); ok {
		if n < -32768 || n > 32767 {
			return Argument{}, errOutOfBoundsConstant
		}
		return Argument{kind: argConstant, constant: n}, nil
	}
	return Argument{}, errBadArgument
}
