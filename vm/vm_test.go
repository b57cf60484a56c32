// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import "testing"

func assembleRaw(t *testing.T, lines []string) []Instruction {
	t.Helper()
	var prog []Instruction
	for _, l := range lines {
		inst, err := Decode(l)
		if err != nil {
			t.Fatalf("decode %q: %v", l, err)
		}
		prog = append(prog, inst)
	}
	return prog
}

func TestStepAInstruction(t *testing.T) {
	prog := assembleRaw(t, []string{"0000000000010100"}) // @20
	c := NewCPU(prog, nil)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 20 {
		t.Errorf("A = %d, want 20", c.Reg.A)
	}
	if c.Reg.PC != 1 {
		t.Errorf("PC = %d, want 1", c.Reg.PC)
	}
}

func TestStepCInstructionArithmetic(t *testing.T) {
	// @5 ; D=A ; @3 ; D=D+A
	prog := []Instruction{
		{IsAddress: true, Value: 5},
		{Dest: "D", Comp: "A"},
		{IsAddress: true, Value: 3},
		{Dest: "D", Comp: "D+A"},
	}
	c := NewCPU(prog, nil)
	for range prog {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.Reg.D != 8 {
		t.Errorf("D = %d, want 8", c.Reg.D)
	}
}

func TestStepMemoryWrite(t *testing.T) {
	// @100 ; M=1 (store 1 at address 100)
	prog := []Instruction{
		{IsAddress: true, Value: 100},
		{Dest: "M", Comp: "1"},
	}
	c := NewCPU(prog, nil)
	for range prog {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	v, err := c.Mem.Load(100)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("M[100] = %d, want 1", v)
	}
}

func TestJumpSelfHalt(t *testing.T) {
	// (loop) @0 ; 0;JMP -- self-jump at PC=0
	prog := []Instruction{
		{IsAddress: true, Value: 0},
		{Comp: "0", Jump: "JMP"},
	}
	c := NewCPU(prog, nil)
	if err := c.Run(1000); err != nil {
		t.Fatal(err)
	}
	if !c.Halted {
		t.Error("expected self-jump to halt the CPU")
	}
}

func TestJumpConditional(t *testing.T) {
	// @0 ; D=A (D=0) ; @6 ; D;JEQ (taken, PC=6 past the end) ; @999 ; D=A
	// (skipped). Not taken, six steps would leave PC=6 too but D=999.
	prog := []Instruction{
		{IsAddress: true, Value: 0},
		{Dest: "D", Comp: "A"},
		{IsAddress: true, Value: 6},
		{Comp: "D", Jump: "JEQ"},
		{IsAddress: true, Value: 999},
		{Dest: "D", Comp: "A"},
	}
	c := NewCPU(prog, nil)
	for i := 0; i < 4; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.Reg.PC != 6 {
		t.Fatalf("PC = %d, want 6 (jump taken)", c.Reg.PC)
	}
	for i := 0; i < 2; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.Reg.D != 0 {
		t.Errorf("D = %d, want 0 (unmodified since skipped)", c.Reg.D)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	cases := []struct{ line, text string }{
		{"1110110111010000", "D=A+1"},
		{"0000000000000101", "@5"},
	}
	for _, tc := range cases {
		inst, err := Decode(tc.line)
		if err != nil {
			t.Fatalf("Decode(%q): %v", tc.line, err)
		}
		if got := Disassemble(inst); got != tc.text {
			t.Errorf("Disassemble(Decode(%q)) = %q, want %q", tc.line, got, tc.text)
		}
	}
}

func TestALUOperations(t *testing.T) {
	cases := []struct {
		comp       string
		a, d, m, w int16
	}{
		{"0", 5, 5, 5, 0},
		{"1", 5, 5, 5, 1},
		{"-1", 5, 5, 5, -1},
		{"D", 7, 9, 2, 9},
		{"A", 7, 9, 2, 7},
		{"M", 7, 9, 2, 2},
		{"!D", 0, 0, 0, -1},
		{"D+A", 3, 4, 0, 7},
		{"D-A", 10, 4, 0, -6},
		{"A-D", 10, 4, 0, 6},
		{"D&A", 0b1100, 0b1010, 0, 0b1000},
		{"D|A", 0b1100, 0b1010, 0, 0b1110},
		{"D+M", 0, 4, 6, 10},
		{"D&M", 0, 0b1100, 0b1010, 0b1000},
	}
	for _, c := range cases {
		got, err := evalComp(c.comp, c.a, c.d, c.m)
		if err != nil {
			t.Fatalf("evalComp(%q): %v", c.comp, err)
		}
		if got != c.w {
			t.Errorf("evalComp(%q, a=%d d=%d m=%d) = %d, want %d", c.comp, c.a, c.d, c.m, got, c.w)
		}
	}
}
