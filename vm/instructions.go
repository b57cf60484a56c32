// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"fmt"
	"strconv"
)

// Instruction is a decoded Hack instruction: either an A-instruction
// (IsAddress true, Value the 15-bit operand) or a C-instruction (Dest/Comp/
// Jump mnemonics).
type Instruction struct {
	IsAddress bool
	Value     int16

	Dest string
	Comp string
	Jump string
}

// compByBits maps each 7-bit comp field back to its mnemonic, for decode
// and disassembly. This table is kept independent of the assembler's own
// encoding table (see DESIGN.md) even though both describe the same bit
// layout.
var compByBits = map[string]string{
	"0101010": "0",
	"0111111": "1",
	"0111010": "-1",
	"0001100": "D",
	"0110000": "A",
	"0001101": "!D",
	"0110001": "!A",
	"0001111": "-D",
	"0110011": "-A",
	"0011111": "D+1",
	"0110111": "A+1",
	"0001110": "D-1",
	"0110010": "A-1",
	"0000010": "D+A",
	"0010011": "D-A",
	"0000111": "A-D",
	"0000000": "D&A",
	"0010101": "D|A",
	"1110000": "M",
	"1110001": "!M",
	"1110011": "-M",
	"1110111": "M+1",
	"1110010": "M-1",
	"1000010": "D+M",
	"1010011": "D-M",
	"1000111": "M-D",
	"1000000": "D&M",
	"1010101": "D|M",
}

var destByBits = map[string]string{
	"000": "", "001": "M", "010": "D", "011": "MD",
	"100": "A", "101": "AM", "110": "AD", "111": "AMD",
}

var jumpByBits = map[string]string{
	"000": "", "001": "JGT", "010": "JEQ", "011": "JGE",
	"100": "JLT", "101": "JNE", "110": "JLE", "111": "JMP",
}

// Decode parses one 16-character '0'/'1' line into an Instruction.
func Decode(line string) (Instruction, error) {
	if len(line) != 16 {
		return Instruction{}, fmt.Errorf("instruction %q is not 16 bits", line)
	}
	if line[0] == '0' {
		n, err := strconv.ParseInt(line[1:], 2, 32)
		if err != nil {
			return Instruction{}, fmt.Errorf("invalid A-instruction %q: %w", line, err)
		}
		return Instruction{IsAddress: true, Value: int16(n)}, nil
	}
	comp, ok := compByBits[line[3:10]]
	if !ok {
		return Instruction{}, fmt.Errorf("unknown comp bits %q", line[3:10])
	}
	dest, ok := destByBits[line[10:13]]
	if !ok {
		return Instruction{}, fmt.Errorf("unknown dest bits %q", line[10:13])
	}
	jump, ok := jumpByBits[line[13:16]]
	if !ok {
		return Instruction{}, fmt.Errorf("unknown jump bits %q", line[13:16])
	}
	return Instruction{Dest: dest, Comp: comp, Jump: jump}, nil
}
