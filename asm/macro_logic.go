// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strconv"
	"strings"
)

func init() {
	registerSimple("AND", func(args []string, p int) (string, error) { return expandLogic("AND", args, p) })
	registerSimple("OR", func(args []string, p int) (string, error) { return expandLogic("OR", args, p) })
	registerSimple("XOR", func(args []string, p int) (string, error) { return expandLogic("XOR", args, p) })
	registerSimple("NOT", expandNot)
}

func truthy(n int) bool { return n != 0 }

func boolConst(b bool) int {
	if b {
		return 1
	}
	return 0
}

func destIncludesM(dst Destination) bool {
	return dst.IsRegisters() && strings.Contains(dst.Registers(), "M")
}

// isUnorderedRegPair holds iff {x,y} is exactly the register pair {r1,r2} in
// either order.
func isUnorderedRegPair(x, y Argument, r1, r2 byte) bool {
	match := func(a, b Argument) bool {
		return a.IsRegister() && a.Register() == r1 && b.IsRegister() && b.Register() == r2
	}
	return match(x, y) || match(y, x)
}

// forbiddenLogicCombo implements the forbidden-operand rule: the
// (M,D)/(D,M) and (A,D)/(D,A) operand pairs are rejected for AND/XOR
// whenever DST cannot absorb M as a scratch register.
func forbiddenLogicCombo(x, y Argument, dst Destination) bool {
	if destIncludesM(dst) {
		return false
	}
	return isUnorderedRegPair(x, y, 'M', 'D') || isUnorderedRegPair(x, y, 'A', 'D')
}

// expandLogic implements $AND/$OR/$XOR(DST,X,Y). These synthesize logical
// (not bitwise) booleans via short-circuit jumps: any nonzero 16-bit value
// is "true". Constants fold immediately when both X and Y are constants.
//
// The caller's A register is not guaranteed to survive: the short-circuit
// tests and the final write may both repoint A, and nothing here restores
// it afterward.
func expandLogic(op string, args []string, p int) (string, error) {
	if len(args) != 3 {
		return "", newError(TagMCR, 0, "%s expects 3 arguments, got %d", op, len(args))
	}
	dst, err := ParseDestination(args[0])
	if err != nil {
		return "", newError(TagMCR, 0, "destination: %v", err)
	}
	x, err := ParseArgument(args[1])
	if err != nil {
		return "", newError(TagMCR, 0, "first argument: %v", err)
	}
	y, err := ParseArgument(args[2])
	if err != nil {
		return "", newError(TagMCR, 0, "second argument: %v", err)
	}

	if op != "OR" && forbiddenLogicCombo(x, y, dst) {
		return "", newError(TagMCR, 0, "Nemoguća operacija: %s cannot combine %s and %s into %s", op, args[1], args[2], args[0])
	}

	if x.IsConstant() && y.IsConstant() {
		xt, yt := truthy(x.Constant()), truthy(y.Constant())
		var result bool
		switch op {
		case "AND":
			result = xt && yt
		case "OR":
			result = xt || yt
		case "XOR":
			result = xt != yt
		}
		folded, _ := ParseArgument(strconv.Itoa(boolConst(result)))
		return ldBody(dst, folded), nil
	}

	checkFailed := uniqueLabel(fmt.Sprintf("__%scheckfailed", strings.ToLower(op)), p)
	end := uniqueLabel(fmt.Sprintf("__end%soperation", strings.ToLower(op)), p)

	var b strings.Builder
	b.WriteString(loadArgumentIntoD(x))
	b.WriteString("\n")

	switch op {
	case "AND":
		fmt.Fprintf(&b, "@%s\nD;JEQ\n", checkFailed)
		b.WriteString(loadArgumentIntoD(y))
		b.WriteString("\n")
		fmt.Fprintf(&b, "@%s\nD;JEQ\n", checkFailed)
		b.WriteString(ldBody(dst, mustConst(1)))
		fmt.Fprintf(&b, "\n@%s\n0;JMP\n", end)
		fmt.Fprintf(&b, "(%s)\n", checkFailed)
		b.WriteString(ldBody(dst, mustConst(0)))
		fmt.Fprintf(&b, "\n(%s)", end)
	case "OR":
		fmt.Fprintf(&b, "@%s\nD;JNE\n", checkFailed)
		b.WriteString(loadArgumentIntoD(y))
		b.WriteString("\n")
		fmt.Fprintf(&b, "@%s\nD;JNE\n", checkFailed)
		b.WriteString(ldBody(dst, mustConst(0)))
		fmt.Fprintf(&b, "\n@%s\n0;JMP\n", end)
		fmt.Fprintf(&b, "(%s)\n", checkFailed)
		b.WriteString(ldBody(dst, mustConst(1)))
		fmt.Fprintf(&b, "\n(%s)", end)
	case "XOR":
		firstFalse := uniqueLabel("__xorfirstfalse", p)
		fmt.Fprintf(&b, "@%s\nD;JEQ\n", firstFalse)
		// first operand true: result = !second
		b.WriteString(loadArgumentIntoD(y))
		b.WriteString("\n")
		fmt.Fprintf(&b, "@%s\nD;JNE\n", checkFailed) // second also true -> result 0
		b.WriteString(ldBody(dst, mustConst(1)))
		fmt.Fprintf(&b, "\n@%s\n0;JMP\n", end)
		fmt.Fprintf(&b, "(%s)\n", checkFailed)
		b.WriteString(ldBody(dst, mustConst(0)))
		fmt.Fprintf(&b, "\n@%s\n0;JMP\n", end)
		fmt.Fprintf(&b, "(%s)\n", firstFalse)
		b.WriteString(loadArgumentIntoD(y))
		b.WriteString("\n")
		fmt.Fprintf(&b, "@%s\nD;JEQ\n", end+"_bothfalse")
		b.WriteString(ldBody(dst, mustConst(1)))
		fmt.Fprintf(&b, "\n@%s\n0;JMP\n", end)
		fmt.Fprintf(&b, "(%s)\n", end+"_bothfalse")
		b.WriteString(ldBody(dst, mustConst(0)))
		fmt.Fprintf(&b, "\n(%s)", end)
	}
	return b.String(), nil
}

// expandNot implements $NOT(DST,X): logical NOT, 0->1 and nonzero->0.
// Constants fold at expansion time.
//
// The caller's A register is not preserved, for the same reason as
// AND/OR/XOR above.
func expandNot(args []string, p int) (string, error) {
	if len(args) != 2 {
		return "", newError(TagMCR, 0, "NOT expects 2 arguments, got %d", len(args))
	}
	dst, err := ParseDestination(args[0])
	if err != nil {
		return "", newError(TagMCR, 0, "destination: %v", err)
	}
	x, err := ParseArgument(args[1])
	if err != nil {
		return "", newError(TagMCR, 0, "argument: %v", err)
	}
	if x.IsConstant() {
		folded, _ := ParseArgument(strconv.Itoa(boolConst(!truthy(x.Constant()))))
		return ldBody(dst, folded), nil
	}

	falseLbl := uniqueLabel("__notfalse", p)
	end := uniqueLabel("__endnotoperation", p)

	var b strings.Builder
	b.WriteString(loadArgumentIntoD(x))
	b.WriteString("\n")
	fmt.Fprintf(&b, "@%s\nD;JEQ\n", falseLbl)
	b.WriteString(ldBody(dst, mustConst(0)))
	fmt.Fprintf(&b, "\n@%s\n0;JMP\n", end)
	fmt.Fprintf(&b, "(%s)\n", falseLbl)
	b.WriteString(ldBody(dst, mustConst(1)))
	fmt.Fprintf(&b, "\n(%s)", end)
	return b.String(), nil
}

func mustConst(n int) Argument {
	a, _ := ParseArgument(strconv.Itoa(n))
	return a
}
