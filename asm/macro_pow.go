// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

func init() {
	registerSimple("POW", expandPow)
}

func powFold(x, y int) int {
	switch {
	case y == 1:
		return x
	case y == 0:
		return 1
	case x == 1:
		return 1
	case x == 0:
		if y == 0 {
			return 1
		}
		return 0
	case x == -1:
		if y%2 != 0 {
			return -1
		}
		return 1
	case y < 0:
		return 0
	}
	result, base, exp := 1, x, y
	for exp > 0 {
		if exp&1 == 1 {
			result = wrap16(result * base)
		}
		base = wrap16(base * base)
		exp >>= 1
	}
	return wrap16(result)
}

// expandPow implements $POW(DST,X,Y). When both operands are literal
// constants the whole computation folds per powFold (which implements
// every special case: Y=1, Y=0, X=1, X=0, X=-1, and Y<0 for |X|>=2, which
// folds to 0). Otherwise it emits the general
// square-and-multiply loop as nested
// macro calls — $LOOP halving __powexponent each iteration, $IF
// conditionally multiplying __powresult by the current __powbase on an odd
// exponent bit, $MULT squaring __powbase — which the fixpoint driver
// expands in the following passes. A correct square-and-multiply loop
// already reproduces every special case's result when Y>=0, so only the
// Y<0 guard is handled explicitly at runtime.
//
// The caller's A register is not preserved: the nested macro calls each
// save and restore A, but the exponent-sign test and the jumps between them
// repoint A, so the final LD saves and restores that value, not the
// caller's.
func expandPow(args []string, p int) (string, error) {
	if len(args) != 3 {
		return "", newError(TagMCR, 0, "POW expects 3 arguments, got %d", len(args))
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

	if x.IsConstant() && y.IsConstant() {
		return ldBody(dst, mustConst(powFold(x.Constant(), y.Constant()))), nil
	}

	done := uniqueLabel("__powdone", p)
	negend := uniqueLabel("__pownegend", p)

	return fmt.Sprintf(`$LD(@__powbase, %s)
$LD(@__powexponent, %s)
$LD(@__powresult, 1)
@__powexponent
D=M
@%s
D;JLT
$LOOP(@__powexponent){
$DIV(@__powaux, @__powexponent, 2)
$MULT(@__powaux, @__powaux, 2)
$SUB(@__powaux, @__powexponent, @__powaux)
$IF(@__powaux){
$MULT(@__powresult, @__powresult, @__powbase)
}
$MULT(@__powbase, @__powbase, @__powbase)
$DIV(@__powexponent, @__powexponent, 2)
}
@%s
0;JMP
(%s)
@__powresult
M=0
(%s)
`, args[1], args[2], done, negend, done, negend) + ldBody(dst, scratchArg("__powresult")), nil
}
