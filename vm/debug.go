// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"fmt"
	"strings"
)

// Dump formats the register file and a window of memory starting at addr,
// a register-dump-plus-memory-window rendering for the Hack register set.
func Dump(c *CPU, addr int16, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC=%d A=%d D=%d\n", c.Reg.PC, c.Reg.A, c.Reg.D)
	for i := 0; i < count; i++ {
		v, err := c.Mem.Load(addr + int16(i))
		if err != nil {
			break
		}
		fmt.Fprintf(&b, "M[%d]=%d\n", int(addr)+i, v)
	}
	return b.String()
}
