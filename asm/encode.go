// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// compTable is the seven-bit comp field table, including the commutative
// aliases (D+A/A+D, D&A/A&D, D|A/A|D, D+M/M+D, D&M/M&D, D|M/M|D) that a
// terser mnemonic listing would omit for brevity.
var compTable = map[string]string{
	"0":   "0101010",
	"1":   "0111111",
	"-1":  "0111010",
	"D":   "0001100",
	"A":   "0110000",
	"!D":  "0001101",
	"!A":  "0110001",
	"-D":  "0001111",
	"-A":  "0110011",
	"D+1": "0011111",
	"A+1": "0110111",
	"D-1": "0001110",
	"A-1": "0110010",
	"D+A": "0000010",
	"A+D": "0000010",
	"D-A": "0010011",
	"A-D": "0000111",
	"D&A": "0000000",
	"A&D": "0000000",
	"D|A": "0010101",
	"A|D": "0010101",
	"M":   "1110000",
	"!M":  "1110001",
	"-M":  "1110011",
	"M+1": "1110111",
	"M-1": "1110010",
	"D+M": "1000010",
	"M+D": "1000010",
	"D-M": "1010011",
	"M-D": "1000111",
	"D&M": "1000000",
	"M&D": "1000000",
	"D|M": "1010101",
	"M|D": "1010101",
}

var destTable = map[string]string{
	"":    "000",
	"M":   "001",
	"D":   "010",
	"MD":  "011",
	"A":   "100",
	"AM":  "101",
	"AD":  "110",
	"AMD": "111",
}

var jumpTable = map[string]string{
	"":    "000",
	"JGT": "001",
	"JEQ": "010",
	"JGE": "011",
	"JLT": "100",
	"JNE": "101",
	"JLE": "110",
	"JMP": "111",
}

// EncodeLine encodes one already-symbol-resolved instruction line into 16
// ASCII '0'/'1' characters.
func EncodeLine(text string, orig int) (string, error) {
	if strings.HasPrefix(text, "@") {
		n, err := strconv.Atoi(text[1:])
		if err != nil || n < 0 {
			return "", newError(TagSYM, orig, "address operand %q is not a non-negative integer", text[1:])
		}
		return fmt.Sprintf("0%015b", n), nil
	}

	dest, compJump := "", text
	if idx := strings.IndexByte(text, '='); idx >= 0 {
		dest, compJump = text[:idx], text[idx+1:]
	}
	comp, jump := compJump, ""
	if idx := strings.IndexByte(compJump, ';'); idx >= 0 {
		comp, jump = compJump[:idx], compJump[idx+1:]
	}

	compBits, ok := compTable[comp]
	if !ok {
		return "", newError(TagCOM, orig, "unknown computation %q", comp)
	}
	destBits, ok := destTable[dest]
	if !ok {
		return "", newError(TagCOM, orig, "unknown destination %q", dest)
	}
	jumpBits, ok := jumpTable[jump]
	if !ok {
		return "", newError(TagCOM, orig, "unknown jump %q", jump)
	}
	return "111" + compBits + destBits + jumpBits, nil
}

// EncodeProgram runs Pass C across an entire resolved program.
func EncodeProgram(lines []SourceLine) ([]string, error) {
	out := make([]string, len(lines))
	for i, ln := range lines {
		enc, err := EncodeLine(ln.Text, ln.Orig)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}
