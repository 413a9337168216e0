// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"

	"github.com/ulikunitz/xz"
)

type xzReadCloser struct {
	io.Reader
}

func (xzReadCloser) Close() error { return nil }

func init() {
	RegisterEncoder("xz", func(w io.Writer, _ int) io.WriteCloser {
		zw, err := xz.NewWriter(w)
		if err != nil {
			panic(err)
		}
		return zw
	})
	RegisterDecoder("xz", func(r io.Reader) io.ReadCloser {
		zr, err := xz.NewReader(r)
		if err != nil {
			panic(err)
		}
		return xzReadCloser{zr}
	})
}
