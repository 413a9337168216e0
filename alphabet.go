// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bufio"
	"io"
)

// ParseAlphabet reads an alphabet file: one byte per line (only the first
// byte of each line matters; empty lines are ignored), bytes accumulated
// in first-seen order with duplicates dropped.
// CR (0x0D) and LF (0x0A) are unconditionally added first, guaranteeing
// they are always part of the alphabet regardless of what the file
// contains. LF, CRLF, and a bare trailing CR are all recognized as line
// boundaries; the file is consumed one byte at a time rather than by a
// line-oriented scanner so a lone CR can be detected without look-ahead.
func ParseAlphabet(r io.Reader) ([]byte, error) {
	var seen [256]bool
	order := make([]byte, 0, 16)
	add := func(b byte) {
		if !seen[b] {
			seen[b] = true
			order = append(order, b)
		}
	}
	add('\r')
	add('\n')

	br := bufio.NewReader(r)
	var first byte
	haveFirst := false
	pendingCR := false

	flush := func() {
		if haveFirst {
			add(first)
		}
		haveFirst = false
	}

	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		if c == '\n' {
			flush()
			pendingCR = false
			continue
		}
		if pendingCR {
			flush() // the earlier lone CR ended its own line
		}
		if c == '\r' {
			pendingCR = true
			continue
		}
		pendingCR = false
		if !haveFirst {
			first = c
			haveFirst = true
		}
	}
	flush()

	if len(order) == 0 {
		return nil, ErrAlphabet
	}
	return order, nil
}
