// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// reindex assigns fresh, contiguous index values to a line list, the
// re-linearization every pipeline stage performs on its output.
func reindex(lines []SourceLine) []SourceLine {
	for i := range lines {
		lines[i].Index = i
	}
	return lines
}

// newSource builds the initial line list from raw file text: one SourceLine
// per physical line, 1-based Orig, Index assigned in order. Blank lines are
// kept here; stripComments drops them.
func newSource(text string) []SourceLine {
	var out []SourceLine
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, r := range raw {
		out = append(out, SourceLine{Text: r, Orig: i + 1})
	}
	return reindex(out)
}

// LineTransform is the uniform per-line stage shape: a pure function of a
// line's text (plus its current index and original line number) that
// returns replacement text, possibly spanning several lines or none.
type LineTransform func(line SourceLine) (string, error)

// applyPass drives one pipeline stage: feed every line to f, split the
// result on newlines, drop blanks, and re-linearise.
func applyPass(lines []SourceLine, f LineTransform) ([]SourceLine, error) {
	var out []SourceLine
	for _, ln := range lines {
		text, err := f(ln)
		if err != nil {
			return nil, err
		}
		out = append(out, splitNonBlank(text, ln.Orig)...)
	}
	return reindex(out), nil
}

// stripComments is the first pipeline stage: it strips "//" line comments and
// "/* ... */" block comments (which may span lines), trims surrounding
// whitespace, and drops blank lines. An unmatched "*/" raises a PL error
// immediately rather than only once the whole file has been scanned.
//
// Block-comment state is the one piece of cross-line memory in the whole
// pipeline, so this stage is written as its own scan (using fstring, a
// small scanning cursor) instead of through applyPass.
func stripComments(lines []SourceLine) ([]SourceLine, error) {
	var out []SourceLine
	inBlock := false
	for _, ln := range lines {
		f := newFstring(ln.Text)
		var b strings.Builder
		for !f.isEmpty() {
			if inBlock {
				if f.startsWithString("*/") {
					inBlock = false
					f = f.consume(2)
					continue
				}
				f = f.consume(1)
				continue
			}
			if f.startsWithString("//") {
				break
			}
			if f.startsWithString("/*") {
				inBlock = true
				f = f.consume(2)
				continue
			}
			if f.startsWithString("*/") {
				return nil, newError(TagPL, ln.Orig, "unmatched block-comment close \"*/\"")
			}
			b.WriteByte(f.str[0])
			f = f.consume(1)
		}
		text := trimSpace(b.String())
		if text == "" {
			continue
		}
		out = append(out, SourceLine{Text: text, Orig: ln.Orig})
	}
	if inBlock {
		return nil, newError(TagPL, -1, "unterminated block comment")
	}
	return reindex(out), nil
}
