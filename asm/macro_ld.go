// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

func init() {
	registerSimple("LD", expandLD)
}

// expandLD implements $LD(DST, SRC).
//
// The caller's A register is restored whenever SRC is an address and A must
// be repointed to load it (A is saved to __aux and restored), but not
// restored for the DST-is-address/SRC-is-a-register shortcut, since writing
// to an address destination always repoints A.
func expandLD(args []string, p int) (string, error) {
	if len(args) != 2 {
		return "", newError(TagMCR, 0, "LD expects 2 arguments, got %d", len(args))
	}
	dst, err := ParseDestination(args[0])
	if err != nil {
		return "", newError(TagMCR, 0, "LD destination: %v", err)
	}
	src, err := ParseArgument(args[1])
	if err != nil {
		return "", newError(TagMCR, 0, "LD source: %v", err)
	}
	return ldBody(dst, src), nil
}

// ldBody emits the instruction block for an already-validated DST/SRC pair;
// shared with every macro whose constant-folded result collapses to a load.
func ldBody(dst Destination, src Argument) string {
	if dst.IsRegisters() && src.IsOneop() {
		return fmt.Sprintf("%s=%s", dst.Registers(), src.Oneop())
	}
	if dst.IsAddress() && src.IsRegister() {
		body := ""
		if src.Register() != 'D' {
			body = loadArgumentIntoD(src) + "\n"
		}
		return body + writeDToDestination(dst, false)
	}

	body := saveA() + "\n" + loadArgumentIntoD(src) + "\n"
	return body + writeDToDestination(dst, true)
}
