// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore

// Generates repeats.bin, a synthetic corpus whose redundancy is phrase
// shaped rather than match shaped: output is assembled from a growing
// pool of phrases that are re-emitted verbatim or extended one byte at a
// time, the same prefix-plus-byte rule an LZW dictionary coins entries
// by, so encoding the file keeps producing useful dictionary entries at
// every code width. Re-emission is skewed toward recently coined phrases
// to keep the working set small enough for LRU/LFU eviction to matter
// once the table fills.
package main

import (
	"math/rand"
	"os"
)

const (
	name = "repeats.bin"
	size = 1 << 18

	maxPhraseLen = 32
	maxPoolSize  = 1 << 14
	recentWindow = 64
)

func main() {
	r := rand.New(rand.NewSource(0))

	alphabet := make([]byte, 0, 95)
	for c := byte(' '); c <= '~'; c++ {
		alphabet = append(alphabet, c)
	}
	symbol := func() byte { return alphabet[r.Intn(len(alphabet))] }

	var out []byte
	var pool [][]byte
	for len(out) < size {
		switch p := r.Float32(); {
		case p <= 0.15 || len(pool) == 0:
			// A fresh single symbol seeds a new phrase.
			b := symbol()
			out = append(out, b)
			pool = append(pool, []byte{b})
		case p <= 0.60:
			// Re-emit a recently coined phrase.
			w := recentWindow
			if w > len(pool) {
				w = len(pool)
			}
			out = append(out, pool[len(pool)-1-r.Intn(w)]...)
		default:
			// Extend an existing phrase by one symbol and emit the
			// extension.
			ph := pool[r.Intn(len(pool))]
			ext := append(append([]byte(nil), ph...), symbol())
			out = append(out, ext...)
			if len(ext) <= maxPhraseLen && len(pool) < maxPoolSize {
				pool = append(pool, ext)
			}
		}
	}

	if err := os.WriteFile(name, out[:size], 0664); err != nil {
		panic(err)
	}
}
