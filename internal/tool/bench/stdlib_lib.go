// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"compress/lzw"
	"io"
)

func init() {
	RegisterEncoder("stdlib", func(w io.Writer, _ int) io.WriteCloser {
		return lzw.NewWriter(w, lzw.MSB, 8)
	})
	RegisterDecoder("stdlib", func(r io.Reader) io.ReadCloser {
		return lzw.NewReader(r, lzw.MSB, 8)
	})
}
