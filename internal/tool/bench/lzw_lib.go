// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"

	"github.com/dsnet/lzw"
)

// fullByteAlphabet exercises every policy over the widest possible
// alphabet so ratio comparisons are not skewed by alphabet restriction.
func fullByteAlphabet() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func registerPolicy(name string, p lzw.Policy) {
	RegisterEncoder(name, func(w io.Writer, _ int) io.WriteCloser {
		zw, err := lzw.NewWriter(w, lzw.WriterConfig{
			Policy:   p,
			Alphabet: fullByteAlphabet(),
		})
		if err != nil {
			panic(err)
		}
		return zw
	})
	RegisterDecoder(name, func(r io.Reader) io.ReadCloser {
		zr, err := lzw.NewReader(r)
		if err != nil {
			panic(err)
		}
		return zr
	})
}

func init() {
	registerPolicy("lzw-freeze", lzw.PolicyFreeze)
	registerPolicy("lzw-reset", lzw.PolicyReset)
	registerPolicy("lzw-lru", lzw.PolicyLRU)
	registerPolicy("lzw-lfu", lzw.PolicyLFU)
}
