// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "testing"

func TestParsePolicy(t *testing.T) {
	cases := map[string]Policy{
		"freeze":    PolicyFreeze,
		"reset":     PolicyReset,
		"lru":       PolicyLRU,
		"lfu":       PolicyLFU,
		"bogus":     PolicyFreeze,
		"":          PolicyFreeze,
		"LRU":       PolicyFreeze, // case-sensitive; unrecognized falls back
	}
	for name, want := range cases {
		if got := ParsePolicy(name); got != want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestPolicyString(t *testing.T) {
	cases := map[Policy]string{
		PolicyFreeze:  "freeze",
		PolicyReset:   "reset",
		PolicyLRU:     "lru",
		PolicyLFU:     "lfu",
		Policy(99):    "freeze",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Errorf("Policy(%d).String() = %q, want %q", p, got, want)
		}
	}
}
