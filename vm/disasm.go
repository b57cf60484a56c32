// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import "fmt"

// Disassemble renders a decoded Instruction back to assembly text
// ("@15" or "dest=comp;jump"), the inverse of asm.EncodeLine.
func Disassemble(inst Instruction) string {
	if inst.IsAddress {
		return fmt.Sprintf("@%d", inst.Value)
	}
	s := inst.Comp
	if inst.Dest != "" {
		s = inst.Dest + "=" + s
	}
	if inst.Jump != "" {
		s = s + ";" + inst.Jump
	}
	return s
}

// DisassembleLine decodes and disassembles one binary line in one step.
func DisassembleLine(line string) (string, error) {
	inst, err := Decode(line)
	if err != nil {
		return "", err
	}
	return Disassemble(inst), nil
}
