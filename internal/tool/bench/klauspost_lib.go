// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"

	"github.com/klauspost/compress/flate"
)

func init() {
	RegisterEncoder("klauspost-flate", func(w io.Writer, lvl int) io.WriteCloser {
		if lvl == 0 {
			lvl = flate.DefaultCompression
		}
		zw, err := flate.NewWriter(w, lvl)
		if err != nil {
			panic(err)
		}
		return zw
	})
	RegisterDecoder("klauspost-flate", func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})
}
