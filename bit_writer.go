// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "io"

// bitWriter buffers codewords of a requested bit width and packs them
// most-significant-bit first into whole bytes written to an underlying
// io.Writer.
//
// Bits accumulate in bufBits starting at the top of the buffer; numBits
// counts how many of the leading bits are valid. This mirrors the shape of
// flate's bitReader (buffer + count, fed/drained across byte boundaries)
// but packs in the opposite bit order, since DEFLATE is LSB-first and this
// codec's header and codeword stream are MSB-first.
type bitWriter struct {
	wr      io.Writer
	bufBits uint64 // valid bits held left-justified within the top numBits
	numBits uint   // number of valid bits currently buffered
	offset  int64  // number of bytes written to wr so far

	arr [8]byte // scratch buffer for draining whole bytes
}

func (bw *bitWriter) Init(w io.Writer) {
	*bw = bitWriter{wr: w}
}

// maxWriteWidth bounds a single WriteBits call. The invariant that numBits
// stays below 8 between calls (drain empties whole bytes every time)
// guarantees 64-bw.numBits-width never underflows as long as width fits
// this bound.
const maxWriteWidth = 56

// WriteBits appends the low-order width bits of val, most-significant bit
// first, buffering across byte boundaries as needed.
func (bw *bitWriter) WriteBits(val uint64, width uint) error {
	if width == 0 {
		return nil
	}
	if width > maxWriteWidth {
		panic(Error("bit width too large"))
	}
	// Left-justify the width valid bits within a 64-bit word positioned
	// right after the bits already buffered, then merge.
	v := val & (1<<width - 1)
	bw.bufBits |= v << (64 - bw.numBits - width)
	bw.numBits += width
	return bw.drain()
}

// drain flushes any whole bytes currently buffered to the underlying writer.
func (bw *bitWriter) drain() error {
	n := 0
	for bw.numBits >= 8 {
		bw.arr[n] = byte(bw.bufBits >> 56)
		bw.bufBits <<= 8
		bw.numBits -= 8
		n++
		if n == len(bw.arr) {
			if _, err := bw.wr.Write(bw.arr[:n]); err != nil {
				return err
			}
			bw.offset += int64(n)
			n = 0
		}
	}
	if n > 0 {
		if _, err := bw.wr.Write(bw.arr[:n]); err != nil {
			return err
		}
		bw.offset += int64(n)
	}
	return nil
}

// Close flushes any partial trailing byte, padding with zero bits on the
// least-significant side, and writes it out.
func (bw *bitWriter) Close() error {
	if bw.numBits == 0 {
		return nil
	}
	b := byte(bw.bufBits >> 56)
	bw.bufBits, bw.numBits = 0, 0
	if _, err := bw.wr.Write([]byte{b}); err != nil {
		return err
	}
	bw.offset++
	return nil
}
