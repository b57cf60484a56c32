// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vm is a reference interpreter for the Hack instruction set: a
// register file, a separate data Memory, an opcode-table-driven decoder,
// and a fetch/decode/execute Step loop over the three-register Hack ALU.
// It exists to check the assembler's arithmetic and A-preservation
// properties by actually running assembled programs.
package vm

import (
	"fmt"
	"strings"
)

// CPU is a Harvard-architecture Hack machine: Prog is a fixed instruction
// array addressed by Reg.PC, and Mem is the separate 32768-word data space
// addressed by Reg.A.
type CPU struct {
	Reg  Registers
	Mem  Memory
	Prog []Instruction

	// Halted is set by Step once PC runs off the end of Prog, or when Step
	// takes a self-jump (the HALT macro's idiom).
	Halted bool
}

// NewCPU creates a CPU over the given decoded program, with a fresh
// zeroed data memory unless mem is non-nil.
func NewCPU(prog []Instruction, mem Memory) *CPU {
	if mem == nil {
		mem = NewFlatMemory()
	}
	c := &CPU{Prog: prog, Mem: mem}
	c.Reg.Init()
	return c
}

// Step executes one instruction and advances PC (unless a jump was taken).
func (c *CPU) Step() error {
	if int(c.Reg.PC) < 0 || int(c.Reg.PC) >= len(c.Prog) {
		c.Halted = true
		return nil
	}
	inst := c.Prog[c.Reg.PC]

	if inst.IsAddress {
		c.Reg.A = inst.Value
		c.Reg.PC++
		return nil
	}

	// M is read only when the computation uses it, so an A that is not a
	// data address (e.g. after A=!A) does not fault an instruction that
	// never touches memory.
	entryA := c.Reg.A
	var m int16
	if strings.ContainsRune(inst.Comp, 'M') {
		v, err := c.Mem.Load(entryA)
		if err != nil {
			return err
		}
		m = v
	}
	result, err := evalComp(inst.Comp, c.Reg.A, c.Reg.D, m)
	if err != nil {
		return err
	}

	// All destination writes happen simultaneously against entryA: an
	// AM-destination instruction stores to the address A held at entry,
	// not the address A is updated to by this same instruction.
	for _, r := range inst.Dest {
		switch r {
		case 'A':
			c.Reg.A = result
		case 'D':
			c.Reg.D = result
		case 'M':
			if err := c.Mem.Store(entryA, result); err != nil {
				return err
			}
		}
	}

	if jumpTaken(inst.Jump, result) {
		// Self-jump: the HALT macro's idiom for parking the PC forever. It is
		// either a jump to this instruction itself or, with no destination
		// written, a jump to the "@label" just before it that reloads its
		// own address.
		prev := c.Reg.PC - 1
		if c.Reg.A == c.Reg.PC || (inst.Dest == "" && prev >= 0 && c.Reg.A == prev &&
			c.Prog[prev].IsAddress && c.Prog[prev].Value == prev) {
			c.Halted = true
			return nil
		}
		c.Reg.PC = c.Reg.A
	} else {
		c.Reg.PC++
	}
	return nil
}

// Run steps the CPU until Halted or maxSteps is reached (a runaway guard;
// there is no other termination condition for a Harvard-architecture
// machine whose program never branches outside itself).
func (c *CPU) Run(maxSteps int) error {
	for i := 0; i < maxSteps; i++ {
		if c.Halted {
			return nil
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
	if !c.Halted {
		return fmt.Errorf("program did not halt within %d steps", maxSteps)
	}
	return nil
}

func evalComp(comp string, a, d, m int16) (int16, error) {
	switch comp {
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	case "-1":
		return -1, nil
	case "D":
		return d, nil
	case "A":
		return a, nil
	case "!D":
		return ^d, nil
	case "!A":
		return ^a, nil
	case "-D":
		return -d, nil
	case "-A":
		return -a, nil
	case "D+1":
		return d + 1, nil
	case "A+1":
		return a + 1, nil
	case "D-1":
		return d - 1, nil
	case "A-1":
		return a - 1, nil
	case "D+A":
		return d + a, nil
	case "D-A":
		return d - a, nil
	case "A-D":
		return a - d, nil
	case "D&A":
		return d & a, nil
	case "D|A":
		return d | a, nil
	case "M":
		return m, nil
	case "!M":
		return ^m, nil
	case "-M":
		return -m, nil
	case "M+1":
		return m + 1, nil
	case "M-1":
		return m - 1, nil
	case "D+M":
		return d + m, nil
	case "D-M":
		return d - m, nil
	case "M-D":
		return m - d, nil
	case "D&M":
		return d & m, nil
	case "D|M":
		return d | m, nil
	}
	return 0, fmt.Errorf("unknown computation %q", comp)
}

func jumpTaken(jump string, v int16) bool {
	switch jump {
	case "":
		return false
	case "JGT":
		return v > 0
	case "JEQ":
		return v == 0
	case "JGE":
		return v >= 0
	case "JLT":
		return v < 0
	case "JNE":
		return v != 0
	case "JLE":
		return v <= 0
	case "JMP":
		return true
	}
	return false
}
