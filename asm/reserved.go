// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// rejectReservedUserNames scans the source before any macro expansion runs
// and rejects every user-written "@name" or "(name)" token that begins with
// a reserved prefix. It must run pre-expansion: once macros expand, the
// catalog's own scratch cells and labels (__aux, __multarg1, __halt_7, ...)
// are indistinguishable from hand-written text and would otherwise trip the
// same check.
func rejectReservedUserNames(lines []SourceLine) error {
	for _, ln := range lines {
		text := ln.Text
		for i := 0; i < len(text); i++ {
			switch text[i] {
			case '@':
				j := i + 1
				for j < len(text) && identifierChar(text[j]) {
					j++
				}
				if isReservedName(text[i+1 : j]) {
					return newError(TagMCR, ln.Orig, "symbol %q uses a reserved name", text[i+1:j])
				}
				i = j - 1
			case '(':
				j := i + 1
				for j < len(text) && identifierChar(text[j]) {
					j++
				}
				if j < len(text) && text[j] == ')' && isReservedName(text[i+1:j]) {
					return newError(TagMCR, ln.Orig, "symbol %q uses a reserved name", text[i+1:j])
				}
				i = j - 1
			}
		}
	}
	return nil
}
