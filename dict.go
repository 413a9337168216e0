// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// prefixTable is the encoder-side codebook: a mapping from a
// non-empty byte-string prefix to the integer code that denotes it.
//
// The dominant inner-loop operation is extending a mutable "current" byte
// slice by one byte and asking whether the result is already present.
// Using a Go map keyed by a string conversion of that slice gives O(1)
// amortized lookup without reallocating "current" itself: the compiler
// recognizes the `m[string(b)]` shape in a read-only position and avoids
// allocating a new string for the lookup, while an assignment such as
// `m[string(b)] = code` necessarily copies b into the map's own key
// storage (Go strings are immutable), so stored keys are unaffected by
// later mutation of the lookup buffer.
type prefixTable struct {
	m map[string]int
}

func (t *prefixTable) Init() {
	t.m = make(map[string]int)
}

// contains reports whether s is a key in the table, without allocating.
func (t *prefixTable) contains(s []byte) (code int, ok bool) {
	code, ok = t.m[string(s)]
	return code, ok
}

// put inserts an owned copy of s mapped to code, returning the key string
// so a caller tracking LRU/LFU recency can reuse it without re-hashing s.
func (t *prefixTable) put(s []byte, code int) string {
	key := string(s)
	t.m[key] = code
	return key
}

// remove deletes the entry for the given key, previously returned by put.
func (t *prefixTable) remove(key string) {
	delete(t.m, key)
}

// len reports the number of live entries.
func (t *prefixTable) len() int {
	return len(t.m)
}

// codeTable is the decoder-side codebook: a dense, index-addressable
// table of size M. Entries 0..alphabetSize-1 hold the single-byte
// alphabet strings; others are present (non-nil) or absent. All
// operations are O(1).
type codeTable struct {
	entries [][]byte
}

func (t *codeTable) Init(m int) {
	if cap(t.entries) >= m {
		t.entries = t.entries[:m]
		for i := range t.entries {
			t.entries[i] = nil
		}
	} else {
		t.entries = make([][]byte, m)
	}
}

// get returns the byte string at code, and whether it is present.
func (t *codeTable) get(code int) ([]byte, bool) {
	if code < 0 || code >= len(t.entries) {
		return nil, false
	}
	s := t.entries[code]
	return s, s != nil
}

// put stores an owned byte string at code.
func (t *codeTable) put(code int, s []byte) {
	t.entries[code] = s
}

// remove clears the slot at code.
func (t *codeTable) remove(code int) {
	t.entries[code] = nil
}

// clearAbove removes every entry at or beyond index (used for the
// reset policy, which keeps only the alphabet-only prefix of the table).
func (t *codeTable) clearAbove(index int) {
	for i := index; i < len(t.entries); i++ {
		t.entries[i] = nil
	}
}
