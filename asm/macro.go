// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// SimpleExpander expands a simple (non-block) macro invocation into a block
// of primitive instruction text, given its raw argument tokens and a unique
// expansion index p, stable per instance and used to namespace any labels
// the expansion generates.
type SimpleExpander func(args []string, p int) (string, error)

// BlockExpander expands a block macro's two halves. Open runs when the
// invocation is first seen; Close runs when its matching "}" (explicit or
// implicit) is reached. Both receive the same p, assigned at Open time.
type BlockExpander interface {
	Open(args []string, p int) (string, error)
	Close(p int) (string, error)
}

var simpleMacros = map[string]SimpleExpander{}
var blockMacros = map[string]BlockExpander{}

func registerSimple(name string, fn SimpleExpander) { simpleMacros[name] = fn }
func registerBlock(name string, b BlockExpander)    { blockMacros[name] = b }

// macroInstance identifies one live invocation of a block macro: its name
// plus the open_p it was assigned.
type macroInstance struct {
	name string
	p    int
}

// atLine rewrites a *ParserError's Line to the original source line the
// macro invocation came from; expanders themselves don't know it.
func atLine(err error, orig int) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*ParserError); ok {
		pe.Line = orig
		return pe
	}
	return newError(TagMCR, orig, "%v", err)
}

// macroTracer is notified once per macro invocation expanded (by name,
// source line, and assigned expansion index p), for verbose-mode tracing.
// A nil tracer is a valid no-op.
type macroTracer func(name string, orig, p int)

func (t macroTracer) trace(name string, orig, p int) {
	if t != nil {
		t(name, orig, p)
	}
}

// hasMacroToken holds iff any line in the list still begins with "$" — the
// condition that keeps macro expansion iterating.
func hasMacroToken(lines []SourceLine) bool {
	for _, ln := range lines {
		if strings.HasPrefix(ln.Text, "$") {
			return true
		}
	}
	return false
}

// expandMacros iterates expandMacrosOnce to a fixpoint, capped at
// maxIterations safety rounds (the macro catalog's actual maximum recursion
// depth is 3; the cap here is a runaway guard, not a budget). trace, if
// non-nil, is notified of every macro invocation expanded across every
// pass.
func expandMacros(lines []SourceLine, maxIterations int, trace macroTracer) ([]SourceLine, error) {
	for i := 0; i < maxIterations; i++ {
		if !hasMacroToken(lines) {
			return lines, nil
		}
		next, err := expandMacrosOnce(lines, trace)
		if err != nil {
			return nil, err
		}
		lines = next
	}
	if hasMacroToken(lines) {
		return nil, newError(TagMCR, -1, "macro expansion did not reach a fixpoint within %d passes", maxIterations)
	}
	return lines, nil
}

// expandMacrosOnce is one pass over the line list: every "$NAME(...)"
// invocation is replaced by its expansion, and every "}" closes
// the innermost explicitly-opened block macro. Two parallel stacks are kept:
// explicitStack, for block macros opened with a trailing "{", and
// implicitStack, for block macros opened with no body marker at all, whose
// single following statement is their implicit body.
func expandMacrosOnce(lines []SourceLine, trace macroTracer) ([]SourceLine, error) {
	var out []SourceLine
	emit := func(text string, orig int) {
		out = append(out, splitNonBlank(text, orig)...)
	}

	var explicitStack []macroInstance
	var implicitStack []macroInstance

	for _, ln := range lines {
		pendingBefore := len(implicitStack)

		text := ln.Text
		switch {
		case text == "}":
			if len(explicitStack) == 0 {
				return nil, newError(TagMCR, ln.Orig, "unmatched '}'")
			}
			top := explicitStack[len(explicitStack)-1]
			explicitStack = explicitStack[:len(explicitStack)-1]
			closed, err := blockMacros[top.name].Close(top.p)
			if err != nil {
				return nil, atLine(err, ln.Orig)
			}
			emit(closed, ln.Orig)

		case strings.HasPrefix(text, "$"):
			name, args, hasBrace, inlineClose, ok := parseMacroCall(text)
			if !ok {
				return nil, newError(TagMCR, ln.Orig, "malformed macro invocation %q", text)
			}
			p := ln.Index
			trace.trace(name, ln.Orig, p)
			if se, isSimple := simpleMacros[name]; isSimple {
				if hasBrace || inlineClose {
					return nil, newError(TagMCR, ln.Orig, "%q is not a block macro", name)
				}
				expanded, err := se(args, p)
				if err != nil {
					return nil, atLine(err, ln.Orig)
				}
				emit(expanded, ln.Orig)
			} else if be, isBlock := blockMacros[name]; isBlock {
				opened, err := be.Open(args, p)
				if err != nil {
					return nil, atLine(err, ln.Orig)
				}
				emit(opened, ln.Orig)
				switch {
				case inlineClose:
					closed, err := be.Close(p)
					if err != nil {
						return nil, atLine(err, ln.Orig)
					}
					emit(closed, ln.Orig)
				case hasBrace:
					explicitStack = append(explicitStack, macroInstance{name, p})
				default:
					implicitStack = append(implicitStack, macroInstance{name, p})
				}
			} else {
				return nil, newError(TagMCR, ln.Orig, "unknown macro %q", name)
			}

		default:
			emit(text, ln.Orig)
		}

		if pendingBefore > 0 {
			mi := implicitStack[pendingBefore-1]
			implicitStack = append(implicitStack[:pendingBefore-1], implicitStack[pendingBefore:]...)
			closed, err := blockMacros[mi.name].Close(mi.p)
			if err != nil {
				return nil, atLine(err, ln.Orig)
			}
			emit(closed, ln.Orig)
		}
	}

	if len(explicitStack) > 0 || len(implicitStack) > 0 {
		return nil, newError(TagMCR, -1, "unbalanced macro block: missing '}' or implicit body")
	}

	return reindex(out), nil
}

// parseMacroCall recognizes "$NAME(arg1, arg2, ...)" optionally followed by
// "{" (open a block) or "{}" (open and immediately close).
func parseMacroCall(s string) (name string, args []string, hasBrace, inlineClose bool, ok bool) {
	if !strings.HasPrefix(s, "$") {
		return
	}
	rest := s[1:]
	i := 0
	for i < len(rest) && identifierChar(rest[i]) {
		i++
	}
	if i == 0 {
		return
	}
	name = strings.ToUpper(rest[:i])
	rest = strings.TrimSpace(rest[i:])
	if !strings.HasPrefix(rest, "(") {
		return
	}
	rest = rest[1:]
	closeIdx := strings.IndexByte(rest, ')')
	if closeIdx < 0 {
		return
	}
	argsStr := strings.TrimSpace(rest[:closeIdx])
	rest = strings.TrimSpace(rest[closeIdx+1:])
	if argsStr != "" {
		for _, a := range strings.Split(argsStr, ",") {
			args = append(args, strings.TrimSpace(a))
		}
	}
	switch rest {
	case "":
	case "{":
		hasBrace = true
	case "{}":
		inlineClose = true
	default:
		return "", nil, false, false, false
	}
	ok = true
	return
}
