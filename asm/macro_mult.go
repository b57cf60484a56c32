// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"
)

func init() {
	registerSimple("MULT", expandMult)
}

func scratchArg(name string) Argument {
	a, _ := ParseArgument("@" + name)
	return a
}

func storeArgTo(name string, a Argument) string {
	return loadArgumentIntoD(a) + fmt.Sprintf("\n@%s\nM=D", name)
}

// expandMult implements $MULT(DST,X,Y): signed 16-bit modular multiplication
// by shift-and-add. Bit k of __multarg1 (k=0..14) is tested by bitwise-
// ANDing against the compile-time mask 2^k (a literal immediate, not a
// runtime shift) and, when set, __multhelper — which is doubled once per
// iteration so it always equals __multarg2*2^k — is added into
// __multresult. Bit 15 (the sign bit) is handled afterward by testing
// __multarg1's sign directly and subtracting rather than adding.
//
// The caller's A register is saved to __aux at entry and restored before
// the final write.
func expandMult(args []string, p int) (string, error) {
	if len(args) != 3 {
		return "", newError(TagMCR, 0, "MULT expects 3 arguments, got %d", len(args))
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
	if isUnorderedRegPair(x, y, 'M', 'D') {
		return "", newError(TagMCR, 0, "Nemoguća operacija: MULT cannot combine %s and %s", args[1], args[2])
	}
	if x.IsConstant() && y.IsConstant() {
		folded := wrap16(x.Constant() * y.Constant())
		return ldBody(dst, mustConst(folded)), nil
	}

	var b strings.Builder
	b.WriteString(saveA())
	b.WriteString("\n")
	b.WriteString(storeArgTo("__multarg1", x))
	b.WriteString("\n")
	b.WriteString(storeArgTo("__multarg2", y))
	b.WriteString("\n@__multresult\nM=0\n")
	b.WriteString("@__multarg2\nD=M\n@__multhelper\nM=D\n")

	for k := 0; k <= 14; k++ {
		mask := 1 << uint(k)
		skip := uniqueLabel(fmt.Sprintf("__multskip%d", k), p)
		fmt.Fprintf(&b, "@__multarg1\nD=M\n@%d\nD=D&A\n@%s\nD;JEQ\n", mask, skip)
		b.WriteString("@__multresult\nD=M\n@__multhelper\nD=D+M\n@__multresult\nM=D\n")
		fmt.Fprintf(&b, "(%s)\n", skip)
		if k < 14 {
			b.WriteString("@__multhelper\nD=M\nM=D+M\n")
		}
	}

	skip15 := uniqueLabel("__multskip15", p)
	b.WriteString("@__multhelper\nD=M\nM=D+M\n") // final doubling: weight 2^15
	fmt.Fprintf(&b, "@__multarg1\nD=M\n@%s\nD;JGE\n", skip15)
	b.WriteString("@__multresult\nD=M\n@__multhelper\nD=D-M\n@__multresult\nM=D\n")
	fmt.Fprintf(&b, "(%s)\n", skip15)

	b.WriteString(restoreA())
	b.WriteString("\n")
	b.WriteString(ldBody(dst, scratchArg("__multresult")))
	return b.String(), nil
}
