// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strconv"

func init() {
	registerSimple("ADD", func(args []string, p int) (string, error) { return expandAddSub('+', args, p) })
	registerSimple("SUB", func(args []string, p int) (string, error) { return expandAddSub('-', args, p) })
}

// expandAddSub implements $ADD(DST,X,Y) and $SUB(DST,X,Y).
//
// Constant+constant folds to one wrapped 16-bit constant and is emitted as
// a plain load — no arithmetic primitives appear in the output.
//
// A-preservation: when neither X nor Y is a register, the caller's A is
// restored. X is loaded into D, Y is combined into D without ever reading D
// back out through A (constant combine routes the magnitude through A as an
// immediate operand of "D+A"/"D-A"; address combine dereferences then
// combines via M) — so a single save/restore of the caller's A around the
// whole sequence suffices.
//
// When X or Y is a register, its value has to be read before anything
// overwrites D or repoints A, so nothing is saved: the register operand is
// taken as the first term (SUB negates the result when the operands were
// swapped for that), and A is left wherever the combine and the final write
// put it.
func expandAddSub(op byte, args []string, p int) (string, error) {
	if len(args) != 3 {
		return "", newError(TagMCR, 0, "ADD/SUB expects 3 arguments, got %d", len(args))
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
		var result int
		if op == '+' {
			result = wrap16(x.Constant() + y.Constant())
		} else {
			result = wrap16(x.Constant() - y.Constant())
		}
		folded, _ := ParseArgument(strconv.Itoa(result))
		return ldBody(dst, folded), nil
	}

	if x.IsRegister() || y.IsRegister() {
		neg := ""
		if !x.IsRegister() || (y.IsRegister() && y.Register() == 'D') {
			x, y = y, x
			if op == '-' {
				neg = "\nD=-D"
			}
		}
		body := loadArgumentIntoD(x) + "\n" + combineArgumentIntoD(y, op)
		if y.IsRegister() && y.Register() == 'D' { // both operands are D
			body = "@" + auxCell + "\nM=D\n" + combineArgumentIntoD(scratchArg(auxCell), op)
		}
		return body + neg + "\n" + writeDToDestination(dst, false), nil
	}

	body := saveA() + "\n" + loadArgumentIntoD(x) + "\n" + combineArgumentIntoD(y, op) + "\n"
	return body + writeDToDestination(dst, true), nil
}
