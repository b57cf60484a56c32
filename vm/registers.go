// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

// Registers holds the Hack CPU's three user-visible registers: the address
// register A, the data register D, and the program counter PC. M is not a
// register; it denotes Memory[A] and is read/written through the Memory
// interface instead (memory.go).
type Registers struct {
	A  int16
	D  int16
	PC int16
}

// Init resets all registers to zero, the power-on state.
func (r *Registers) Init() {
	r.A = 0
	r.D = 0
	r.PC = 0
}
