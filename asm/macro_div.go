// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"
)

func init() {
	registerSimple("DIV", expandDiv)
}

// expandDiv implements $DIV(DST,X,Y): truncated signed integer division,
// |q| = floor(|X|/|Y|), sign(q) = sign(X)*sign(Y), with Y=0 defined to
// produce 0. Signs are peeled off into __divsign and the magnitudes divided
// by binary long division: the fifteen powers __divpow0..__divpow14 (|Y|,
// 2|Y|, 4|Y|, ...) are precomputed by doubling (a power that overflows 16
// bits is stored as -1 and skipped), then tested from the largest power
// down, subtracting and setting the corresponding bit of __divresult
// whenever the remaining dividend in __divhelper does not go negative.
//
// This uses more dedicated reserved scratch cells than the base set
// (__divarg1/__divarg2/__divresult/__divsign/__divhelper) — the
// __divpowN family is additional, reserved the same way (see DESIGN.md).
//
// The caller's A register is always restored.
func expandDiv(args []string, p int) (string, error) {
	if len(args) != 3 {
		return "", newError(TagMCR, 0, "DIV expects 3 arguments, got %d", len(args))
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
		var q int
		if y.Constant() == 0 {
			q = 0
		} else {
			q = x.Constant() / y.Constant() // Go's / already truncates toward zero
		}
		return ldBody(dst, mustConst(wrap16(q))), nil
	}

	zero := uniqueLabel("__divzero", p)
	end := uniqueLabel("__divend", p)
	xnonneg := uniqueLabel("__divxnonneg", p)
	ynonneg := uniqueLabel("__divynonneg", p)
	resultnonneg := uniqueLabel("__divresultnonneg", p)

	var b strings.Builder
	b.WriteString(saveA())
	b.WriteString("\n@__divsign\nM=1\n")

	b.WriteString(loadArgumentIntoD(x))
	fmt.Fprintf(&b, "\n@%s\nD;JGE\nD=-D\n@__divsign\nM=-M\n(%s)\n@__divarg1\nM=D\n", xnonneg, xnonneg)

	b.WriteString(loadArgumentIntoD(y))
	fmt.Fprintf(&b, "\n@%s\nD;JGE\nD=-D\n@__divsign\nM=-M\n(%s)\n@__divpow0\nM=D\n", ynonneg, ynonneg)

	fmt.Fprintf(&b, "@__divpow0\nD=M\n@%s\nD;JEQ\n", zero)

	for k := 1; k <= 14; k++ {
		ok := uniqueLabel(fmt.Sprintf("__divpowok%d", k), p)
		fmt.Fprintf(&b, "@__divpow%d\nD=M\n@__divpow%d\nM=D\nMD=D+M\n@%s\nD;JGE\n@__divpow%d\nM=-1\n(%s)\n", k-1, k, ok, k, ok)
	}

	b.WriteString("@__divarg1\nD=M\n@__divhelper\nM=D\n@__divresult\nM=0\n")

	for k := 14; k >= 0; k-- {
		skip := uniqueLabel(fmt.Sprintf("__divskip%d", k), p)
		fmt.Fprintf(&b, "@__divpow%d\nD=M\n@%s\nD;JLT\n", k, skip)
		fmt.Fprintf(&b, "@__divhelper\nD=M\n@__divpow%d\nD=D-M\n@%s\nD;JLT\n", k, skip)
		fmt.Fprintf(&b, "@__divhelper\nM=D\n@__divresult\nD=M\n@%d\nD=D+A\n@__divresult\nM=D\n", 1<<uint(k))
		fmt.Fprintf(&b, "(%s)\n", skip)
	}

	fmt.Fprintf(&b, "@%s\n0;JMP\n(%s)\n@__divresult\nM=0\n(%s)\n", end, zero, end)

	fmt.Fprintf(&b, "@__divsign\nD=M\n@%s\nD;JGT\n@__divresult\nD=M\nD=-D\nM=D\n(%s)\n", resultnonneg, resultnonneg)

	b.WriteString(restoreA())
	b.WriteString("\n")
	b.WriteString(ldBody(dst, scratchArg("__divresult")))
	return b.String(), nil
}
