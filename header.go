// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// header is the fixed preamble preceding the codeword stream. Fields are
// packed big-endian with no byte alignment between them, using the same
// bitWriter/bitReader the codeword stream itself uses, so a single
// bit-level framing discipline governs the whole file.
type header struct {
	minW     uint8
	maxW     uint8
	policy   Policy
	alphabet []byte
}

func writeHeader(bw *bitWriter, h header) error {
	if err := bw.WriteBits(uint64(h.minW), 8); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(h.maxW), 8); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(h.policy), 8); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(len(h.alphabet)), 16); err != nil {
		return err
	}
	for _, b := range h.alphabet {
		if err := bw.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// readHeader parses a header from br. An unrecognized policy byte is
// mapped to PolicyFreeze, mirroring ParsePolicy's fallback for an
// unrecognized policy name.
func readHeader(br *bitReader) header {
	var h header
	h.minW = uint8(br.ReadBits(8))
	h.maxW = uint8(br.ReadBits(8))

	p := Policy(br.ReadBits(8))
	switch p {
	case PolicyFreeze, PolicyReset, PolicyLRU, PolicyLFU:
		h.policy = p
	default:
		h.policy = PolicyFreeze
	}

	n := int(br.ReadBits(16))
	h.alphabet = make([]byte, n)
	for i := range h.alphabet {
		h.alphabet[i] = byte(br.ReadBits(8))
	}
	return h
}
