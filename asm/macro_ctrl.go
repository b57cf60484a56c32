// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

func init() {
	registerSimple("HALT", expandHalt)
	registerBlock("IF", &condExpander{skipWhenZero: true})
	registerBlock("IFN", &condExpander{skipWhenZero: false})
	registerBlock("LOOP", &loopExpander{})
}

// expandHalt implements $HALT(): an infinite self-jump that parks the
// program counter.
func expandHalt(args []string, p int) (string, error) {
	if len(args) != 0 {
		return "", newError(TagMCR, 0, "HALT expects 0 arguments, got %d", len(args))
	}
	label := uniqueLabel("__halt", p)
	return fmt.Sprintf("(%s)\n@%s\n0;JMP", label, label), nil
}

// condExpander implements $IF/$IFN(X){...}: a forward jump over the body.
// skipWhenZero distinguishes the two (IF skips the body when X==0, IFN
// skips it when X!=0). A literal constant X folds the runtime test away
// entirely: the body is either left unguarded or jumped over
// unconditionally.
type condExpander struct {
	skipWhenZero bool
	after        map[int]string
}

func (c *condExpander) Open(args []string, p int) (string, error) {
	if len(args) != 1 {
		return "", newError(TagMCR, 0, "conditional block expects 1 argument, got %d", len(args))
	}
	x, err := ParseArgument(args[0])
	if err != nil {
		return "", newError(TagMCR, 0, "condition: %v", err)
	}
	if c.after == nil {
		c.after = map[int]string{}
	}
	after := uniqueLabel("__condafter", p)
	c.after[p] = after

	if x.IsConstant() {
		isZero := x.Constant() == 0
		if isZero == c.skipWhenZero {
			return fmt.Sprintf("@%s\n0;JMP", after), nil
		}
		return "", nil
	}

	jump := "D;JNE"
	if c.skipWhenZero {
		jump = "D;JEQ"
	}
	return loadArgumentIntoD(x) + fmt.Sprintf("\n@%s\n%s", after, jump), nil
}

func (c *condExpander) Close(p int) (string, error) {
	after := c.after[p]
	delete(c.after, p)
	return fmt.Sprintf("(%s)", after), nil
}

// loopExpander implements $LOOP(X){...}: a pre-tested loop. Open tests X
// and jumps past the body entirely when it's already false; Close re-tests
// X and jumps back to the top when it's still true. A literal constant X
// folds the per-iteration test into an unconditional skip (always-false)
// or an unconditional back-jump (always-true).
type loopExpander struct {
	start map[int]string
	after map[int]string
	cond  map[int]Argument
}

func (l *loopExpander) Open(args []string, p int) (string, error) {
	if len(args) != 1 {
		return "", newError(TagMCR, 0, "LOOP expects 1 argument, got %d", len(args))
	}
	x, err := ParseArgument(args[0])
	if err != nil {
		return "", newError(TagMCR, 0, "condition: %v", err)
	}
	if l.start == nil {
		l.start = map[int]string{}
		l.after = map[int]string{}
		l.cond = map[int]Argument{}
	}
	start := uniqueLabel("__loopstart", p)
	after := uniqueLabel("__loopafter", p)
	l.start[p] = start
	l.after[p] = after
	l.cond[p] = x

	if x.IsConstant() {
		if x.Constant() == 0 {
			return fmt.Sprintf("@%s\n0;JMP", after), nil
		}
		return fmt.Sprintf("(%s)", start), nil
	}

	return loadArgumentIntoD(x) + fmt.Sprintf("\n@%s\nD;JEQ\n(%s)", after, start), nil
}

func (l *loopExpander) Close(p int) (string, error) {
	start, after, x := l.start[p], l.after[p], l.cond[p]
	delete(l.start, p)
	delete(l.after, p)
	delete(l.cond, p)

	if x.IsConstant() {
		if x.Constant() == 0 {
			return fmt.Sprintf("(%s)", after), nil
		}
		return fmt.Sprintf("@%s\n0;JMP\n(%s)", start, after), nil
	}

	return loadArgumentIntoD(x) + fmt.Sprintf("\n@%s\nD;JNE\n(%s)", start, after), nil
}
