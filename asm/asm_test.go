// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strconv"
	"strings"
	"testing"

	"github.com/mathos-ztolic/hackasm/vm"
)

func assembleSource(t *testing.T, src string) *Result {
	t.Helper()
	result, err := Assemble(strings.NewReader(src), Options{})
	if err != nil {
		t.Fatalf("Assemble(%q): %v", src, err)
	}
	return result
}

func runProgram(t *testing.T, result *Result) *vm.CPU {
	t.Helper()
	var prog []vm.Instruction
	for _, line := range result.Binary {
		inst, err := vm.Decode(line)
		if err != nil {
			t.Fatalf("vm.Decode(%q): %v", line, err)
		}
		prog = append(prog, inst)
	}
	c := vm.NewCPU(prog, nil)
	if err := c.Run(100000); err != nil {
		t.Fatalf("vm.Run: %v", err)
	}
	return c
}

func TestStripCommentsIdempotent(t *testing.T) {
	lines := newSource("D=A // comment\n/* block\ncomment */ @5\n")
	once, err := stripComments(lines)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := stripComments(once)
	if err != nil {
		t.Fatal(err)
	}
	if len(once) != len(twice) {
		t.Fatalf("lengths differ: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Text != twice[i].Text {
			t.Errorf("line %d: %q vs %q", i, once[i].Text, twice[i].Text)
		}
	}
}

func TestMacroFixpointNoDollarTokens(t *testing.T) {
	result, err := Assemble(strings.NewReader(`
$LD(D, 42)
$ADD(D, D, 1)
$POW(D, 2, 10)
`), Options{ExpandOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range result.Expanded {
		if strings.HasPrefix(line, "$") {
			t.Errorf("line %q still starts with $ after expansion", line)
		}
	}
}

func TestDuplicateLabelLastWins(t *testing.T) {
	result := assembleSource(t, `
@0
D=A
(LOOP)
@1
D=A
(LOOP)
@2
D=A
@LOOP
0;JMP
`)
	if len(result.Binary) == 0 {
		t.Fatal("expected encoded output")
	}
	// @LOOP is instruction 6; the second (LOOP) declaration binds index 4.
	if result.Binary[6] != "0000000000000100" {
		t.Errorf("@LOOP encoded as %q, want the last declaration's index 4", result.Binary[6])
	}
}

func TestEncodingShape(t *testing.T) {
	result := assembleSource(t, "@5\nD=A\n0;JMP\n")
	for _, line := range result.Binary {
		if len(line) != 16 {
			t.Fatalf("line %q is not 16 characters", line)
		}
		for _, c := range line {
			if c != '0' && c != '1' {
				t.Fatalf("line %q contains non-binary character", line)
			}
		}
	}
	if result.Binary[0][0] != '0' {
		t.Errorf("A-instruction %q should start with 0", result.Binary[0])
	}
	if !strings.HasPrefix(result.Binary[1], "111") {
		t.Errorf("C-instruction %q should start with 111", result.Binary[1])
	}
}

func TestConstantFoldingLeavesNoArithmeticMacros(t *testing.T) {
	for _, call := range []string{
		"$ADD(D, 2, 3)", "$SUB(D, 5, 2)", "$MULT(D, 4, 5)", "$DIV(D, 20, 4)",
		"$POW(D, 2, 8)", "$AND(D, 1, 0)", "$OR(D, 0, 0)", "$XOR(D, 1, 1)", "$NOT(D, 0)",
	} {
		result, err := Assemble(strings.NewReader(call), Options{ExpandOnly: true})
		if err != nil {
			t.Fatalf("%s: %v", call, err)
		}
		for _, line := range result.Expanded {
			if strings.HasPrefix(line, "$") {
				t.Errorf("%s: residual macro call %q after constant folding", call, line)
			}
		}
	}
}

func TestReservedNameRejected(t *testing.T) {
	_, err := Assemble(strings.NewReader("@__userdefined\nD=A\n"), Options{})
	if err == nil {
		t.Fatal("expected an error for a reserved-prefix symbol")
	}
	pe, ok := err.(*ParserError)
	if !ok || pe.Tag != TagMCR {
		t.Fatalf("expected MCR ParserError, got %v", err)
	}
}

func TestLDPreservesA(t *testing.T) {
	result := assembleSource(t, `
@999
A=A
$LD(D, 42)
M=D
$HALT()
`)
	c := runProgram(t, result)
	if c.Reg.D != 42 {
		t.Errorf("D = %d, want 42", c.Reg.D)
	}
	// M=D right after the LD lands in M[999] only if A was preserved.
	v, _ := c.Mem.Load(999)
	if v != 42 {
		t.Errorf("M[999] = %d, want 42 (A preserved across LD)", v)
	}
}

func TestAddIntoMemoryAddresses(t *testing.T) {
	// x and y are the first variables seen, so they get addresses 16 and 17.
	// The program ends by running off its last instruction, which leaves A
	// as the ADD left it.
	result := assembleSource(t, `
@100
D=A
@x
M=D
@200
D=A
@y
M=D
$ADD(@y, @x, @y)
`)
	c := runProgram(t, result)
	m17, _ := c.Mem.Load(17)
	m16, _ := c.Mem.Load(16)
	if m16 != 100 {
		t.Errorf("M[16] = %d, want 100 (unchanged)", m16)
	}
	if m17 != 300 {
		t.Errorf("M[17] = %d, want 300", m17)
	}
	if c.Reg.A != 17 {
		t.Errorf("A = %d, want 17", c.Reg.A)
	}
}

func TestAndBooleanSemantics(t *testing.T) {
	cases := []struct {
		x, y int
		want int16
	}{
		{0, 5, 0},
		{3, 5, 1},
	}
	for _, tc := range cases {
		result := assembleSource(t, `
@`+strconv.Itoa(tc.x)+`
D=A
@16
M=D
@`+strconv.Itoa(tc.y)+`
D=A
@17
M=D
$AND(D, @16, @17)
$HALT()
`)
		cpu := runProgram(t, result)
		if cpu.Reg.D != tc.want {
			t.Errorf("AND(%d,%d): D = %d, want %d", tc.x, tc.y, cpu.Reg.D, tc.want)
		}
	}
}

func TestMultNegativeOperand(t *testing.T) {
	// r and x are the first variables seen, so they get addresses 16 and 17,
	// clear of the scratch cells MULT allocates after them.
	result := assembleSource(t, `
@r
M=0
@6
D=-A
@x
M=D
$MULT(@r, 7, @x)
$HALT()
`)
	c := runProgram(t, result)
	v, _ := c.Mem.Load(16)
	if v != -42 {
		t.Errorf("M[16] = %d, want -42", v)
	}
}

func TestIfSkipsBodyWhenFalse(t *testing.T) {
	result := assembleSource(t, `
@0
D=A
$IF(D){
@999
D=A
}
`)
	c := runProgram(t, result)
	if c.Reg.D != 0 {
		t.Errorf("D = %d, want 0 (IF body skipped)", c.Reg.D)
	}
}

func TestLoopCountsDownToZero(t *testing.T) {
	// count is the first variable seen, so it gets address 16.
	result := assembleSource(t, `
@5
D=A
@count
M=D
$LOOP(@count){
$ADD(@count, @count, -1)
}
$HALT()
`)
	c := runProgram(t, result)
	v, _ := c.Mem.Load(16)
	if v != 0 {
		t.Errorf("M[16] = %d, want 0", v)
	}
}

func TestHaltSelfLoops(t *testing.T) {
	result := assembleSource(t, "$HALT()\n")
	var prog []vm.Instruction
	for _, line := range result.Binary {
		inst, err := vm.Decode(line)
		if err != nil {
			t.Fatal(err)
		}
		prog = append(prog, inst)
	}
	c := vm.NewCPU(prog, nil)
	if err := c.Run(1000); err != nil {
		t.Fatal(err)
	}
	if !c.Halted {
		t.Error("expected HALT to self-loop and be detected as halted")
	}
}

func TestArithmeticWrapping(t *testing.T) {
	result := assembleSource(t, `
$LD(D, 32767)
$ADD(D, D, 1)
$HALT()
`)
	c := runProgram(t, result)
	if c.Reg.D != -32768 {
		t.Errorf("D = %d, want -32768 (wrapped)", c.Reg.D)
	}
}

func TestDivByZeroIsZero(t *testing.T) {
	result := assembleSource(t, `
$DIV(D, 10, 0)
$HALT()
`)
	c := runProgram(t, result)
	if c.Reg.D != 0 {
		t.Errorf("D = %d, want 0", c.Reg.D)
	}
}

func TestPowNegativeExponentIsZero(t *testing.T) {
	result := assembleSource(t, `
@2
D=A
@x
M=D
$POW(D, @x, -3)
$HALT()
`)
	c := runProgram(t, result)
	if c.Reg.D != 0 {
		t.Errorf("D = %d, want 0", c.Reg.D)
	}
}

func TestSwapRegisters(t *testing.T) {
	// LD into A goes through D, so A is loaded first. The program ends by
	// running off its last instruction, which leaves A as the SWAP left it.
	result := assembleSource(t, `
$LD(A, 9)
$LD(D, 7)
$SWAP(D, A)
`)
	c := runProgram(t, result)
	if c.Reg.D != 9 || c.Reg.A != 7 {
		t.Errorf("D=%d A=%d, want D=9 A=7", c.Reg.D, c.Reg.A)
	}
}

func TestForbiddenAndCombination(t *testing.T) {
	_, err := Assemble(strings.NewReader("$AND(D, M, D)\n"), Options{})
	if err == nil {
		t.Fatal("expected an error for the forbidden (M,D) AND combination")
	}
	pe, ok := err.(*ParserError)
	if !ok || pe.Tag != TagMCR {
		t.Fatalf("expected MCR ParserError, got %v", err)
	}
}

func TestUnbalancedMacroBlock(t *testing.T) {
	_, err := Assemble(strings.NewReader("$IF(D){\n@1\nD=A\n"), Options{ExpandOnly: true})
	if err == nil {
		t.Fatal("expected an error for an unclosed block macro")
	}
}

func TestUnmatchedBlockCommentClose(t *testing.T) {
	_, err := Assemble(strings.NewReader("D=A */\n"), Options{ExpandOnly: true})
	if err == nil {
		t.Fatal("expected an error for an unmatched */")
	}
	pe, ok := err.(*ParserError)
	if !ok || pe.Tag != TagPL {
		t.Fatalf("expected PL ParserError, got %v", err)
	}
}
