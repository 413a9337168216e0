// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"

	"github.com/dsnet/lzw/internal/evict"
)

// Reader decompresses the bit stream produced by a Writer, reproducing
// the original byte stream. Its control flow mirrors Writer step for
// step, applying the same growth, reset, and eviction decisions to an
// identical history, so the two codebooks never diverge; see the
// classical code == nextCode special case in decodeOne.
type Reader struct {
	InputOffset  int64
	OutputOffset int64

	br bitReader

	policy   Policy
	alphabet []byte

	codes codeTable

	lruDec *evict.LRU[int]
	lfuDec *evict.LFU[int]

	prev   []byte
	toRead []byte

	aSize           int
	eofCode         int
	resetCode       int
	initialNextCode int
	nextCode        int
	m               int
	w               uint
	t               uint64
	minWidth        uint
	maxWidth        uint

	started bool
	eof     bool
	closed  bool
	err     error
}

// NewReader creates a Reader that decompresses from r. The header is read
// eagerly so that a corrupt or truncated header is reported immediately.
func NewReader(r io.Reader) (*Reader, error) {
	zr := &Reader{}
	zr.br.Init(r)

	var h header
	err := func() (err error) {
		defer errRecover(&err)
		h = readHeader(&zr.br)
		return nil
	}()
	if err != nil {
		return nil, ErrCorrupt
	}
	if h.minW < 1 || h.maxW < h.minW || h.maxW > maxSupportedWidth || len(h.alphabet) == 0 {
		return nil, ErrCorrupt
	}

	zr.policy = h.policy
	zr.alphabet = h.alphabet
	zr.aSize = len(h.alphabet)
	zr.m = 1 << uint(h.maxW)
	reserved := 1
	if zr.policy == PolicyReset {
		reserved = 2
	}
	// The first codeword is read at width minW, so every initial code,
	// reserved codes included, must already fit in minW bits.
	if 1<<uint(h.minW) < zr.aSize+reserved {
		return nil, ErrCorrupt
	}

	zr.codes.Init(zr.m)
	for i, b := range h.alphabet {
		zr.codes.put(i, []byte{b})
	}
	zr.nextCode = zr.aSize
	zr.eofCode = zr.nextCode
	zr.nextCode++
	if zr.policy == PolicyReset {
		zr.resetCode = zr.nextCode
		zr.nextCode++
	}
	zr.initialNextCode = zr.nextCode
	zr.minWidth = uint(h.minW)
	zr.maxWidth = uint(h.maxW)
	zr.w = zr.minWidth
	zr.t = 1 << zr.w

	if zr.policy.tracked() {
		zr.lruDec = evict.NewLRU[int]()
		zr.lfuDec = evict.NewLFU[int]()
	}
	return zr, nil
}

// Read implements io.Reader, decompressing into buf.
func (zr *Reader) Read(buf []byte) (int, error) {
	if zr.closed {
		return 0, ErrClosed
	}
	if zr.err != nil {
		return 0, zr.err
	}
	for len(zr.toRead) == 0 && !zr.eof {
		func() {
			defer errRecover(&zr.err)
			zr.decodeOne()
		}()
		if zr.err != nil {
			return 0, zr.err
		}
	}
	n := copy(buf, zr.toRead)
	zr.toRead = zr.toRead[n:]
	zr.InputOffset = zr.br.offset
	zr.OutputOffset += int64(n)
	if n == 0 && zr.eof {
		return 0, io.EOF
	}
	return n, nil
}

// Close releases the Reader. It performs no I/O of its own beyond what
// Read already did; it exists for symmetry with Writer and so callers can
// treat both ends of the stream uniformly.
func (zr *Reader) Close() error {
	zr.closed = true
	return nil
}

// emit appends an owned copy of s to the pending output buffer.
func (zr *Reader) emit(s []byte) {
	zr.toRead = append(zr.toRead, s...)
}

// decodeOne reads and processes exactly one codeword, possibly producing
// output bytes, advancing the codebook, or (for EOF_CODE) setting zr.eof.
func (zr *Reader) decodeOne() {
	if !zr.started {
		zr.readFirst()
		return
	}

	// Width check before reading. The encoder raises w between one emit
	// and the next, checking nextCode after the earlier step's insert; at
	// this point the codebook here has caught up to exactly that state, so
	// the same comparison raises w at the same codeword boundary.
	if zr.nextCode >= int(zr.t) && zr.w < zr.maxWidth {
		zr.w++
		zr.t = 1 << zr.w
	}

	code := int(zr.br.ReadBits(zr.w))

	if code == zr.eofCode {
		zr.eof = true
		return
	}
	if zr.policy == PolicyReset && code == zr.resetCode {
		zr.rebuild()
		return
	}

	var out []byte
	if victim, ok := zr.pendingVictim(); ok && code == victim {
		// Full-table analog of the classical edge case below: one codeword
		// ago the encoder evicted this code's entry and reassigned the code
		// to its newest string, while the slot here still holds the victim
		// (the matching eviction runs in growAndInsert below). A reused
		// code arriving this early always names that newest string, which
		// is prev + prev's own first byte, exactly as in the classical case.
		out = append(append([]byte(nil), zr.prev...), zr.prev[0])
	} else if s, ok := zr.codes.get(code); ok {
		out = s
	} else if code == zr.nextCode {
		// Classical LZW edge case: the encoder just emitted a code for an
		// entry it had not yet finished inserting when it wrote this very
		// codeword. The missing entry is always prev + prev's own first
		// byte.
		out = append(append([]byte(nil), zr.prev...), zr.prev[0])
	} else {
		panic(ErrCorrupt)
	}

	zr.emit(out)
	zr.growAndInsert(out)
	zr.use(code)
	zr.prev = append(zr.prev[:0], out...)
}

// pendingVictim returns the code that growAndInsert's eviction is about to
// free and reuse, if the insert pending for this step is an eviction (table
// full under lru/lfu). The tracker is not consulted again between this peek
// and the eviction itself, so both see the same victim.
func (zr *Reader) pendingVictim() (int, bool) {
	if !zr.policy.tracked() || zr.nextCode < zr.m {
		return 0, false
	}
	return zr.findVictim()
}

// readFirst handles both the very first codeword of the stream and the
// first codeword following a reset: in both cases there is no prior
// "prev" to extend, so the code must already name a live table entry, and
// nothing is inserted.
//
// A compressed stream for an empty input is header-only: the encoder's
// Close short-circuits before ever writing EOF_CODE (see Writer.Close), so
// the decoder must recognize a stream with no codewords at all as a clean
// end rather than a truncation.
func (zr *Reader) readFirst() {
	if zr.br.atEOF() {
		zr.eof = true
		zr.started = true
		return
	}
	code := int(zr.br.ReadBits(zr.w))
	zr.started = true
	if code == zr.eofCode {
		zr.eof = true
		return
	}
	s, ok := zr.codes.get(code)
	if !ok {
		panic(ErrCorrupt)
	}
	zr.emit(s)
	zr.prev = append(zr.prev[:0], s...)
}

// growAndInsert inserts newEntry = prev+out[0] into the codebook, applying
// the same fill and eviction rules as Writer.emitAndGrow so that the two
// codebooks never diverge.
func (zr *Reader) growAndInsert(out []byte) {
	entry := append(append([]byte(nil), zr.prev...), out[0])

	if zr.nextCode < zr.m {
		zr.codes.put(zr.nextCode, entry)
		zr.trackNew(zr.nextCode)
		zr.nextCode++
		return
	}

	switch zr.policy {
	case PolicyFreeze:
		// No further insertions once full.
	case PolicyReset:
		// The matching encoder-side reset emission already happened
		// before this codeword; the decoder's own rebuild happens when it
		// next reads resetCode, not here.
	case PolicyLRU, PolicyLFU:
		zr.evictAndInsert(entry)
	}
}

// evictAndInsert evicts the policy's chosen victim code and inserts entry
// at the freed code, mirroring Writer.evictAndInsert.
func (zr *Reader) evictAndInsert(entry []byte) {
	victim, ok := zr.findVictim()
	if !ok {
		return
	}
	zr.codes.remove(victim)
	zr.removeTracked(victim)
	zr.codes.put(victim, entry)
	zr.trackNew(victim)
}

func (zr *Reader) findVictim() (int, bool) {
	switch zr.policy {
	case PolicyLRU:
		return zr.lruDec.FindLRU()
	case PolicyLFU:
		return zr.lfuDec.FindLFU()
	default:
		return 0, false
	}
}

func (zr *Reader) removeTracked(code int) {
	switch zr.policy {
	case PolicyLRU:
		zr.lruDec.Remove(code)
	case PolicyLFU:
		zr.lfuDec.Remove(code)
	}
}

func (zr *Reader) trackNew(code int) {
	switch zr.policy {
	case PolicyLRU:
		zr.lruDec.Use(code)
	case PolicyLFU:
		zr.lfuDec.Use(code)
	}
}

// use records a reference to an existing codebook entry. Alphabet codes
// are never tracked, mirroring Writer.use. It runs after growAndInsert:
// the encoder's use of this code happened one step earlier than its insert
// for this step, and this side's insert lags one codeword behind, so
// insert-then-use here lines the two tracker histories up exactly.
func (zr *Reader) use(code int) {
	if !zr.policy.tracked() || code < zr.aSize {
		return
	}
	zr.trackNew(code)
}

// rebuild restores the codebook to its initial alphabet-only state and
// re-arms readFirst for the codeword that follows RESET_CODE.
func (zr *Reader) rebuild() {
	zr.codes.clearAbove(zr.aSize)
	zr.nextCode = zr.initialNextCode
	zr.w = zr.minWidth
	zr.t = 1 << zr.w
	zr.started = false
}
