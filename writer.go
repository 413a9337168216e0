// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"

	"github.com/dsnet/lzw/internal/evict"
)

// WriterConfig configures a Writer. Alphabet must include both CR (0x0D)
// and LF (0x0A); ParseAlphabet guarantees this for alphabets sourced from
// an alphabet file.
type WriterConfig struct {
	MinWidth int
	MaxWidth int
	Policy   Policy
	Alphabet []byte
}

const (
	// DefaultMinWidth and DefaultMaxWidth are the widths used when the
	// corresponding WriterConfig fields are zero; cmd/lzw exposes them as
	// its flag defaults.
	DefaultMinWidth = 9
	DefaultMaxWidth = 16

	// maxSupportedWidth bounds MaxWidth. A decode-side code table is a
	// dense slice of 2^MaxWidth entries, so this is a real resource bound:
	// cmd/lzw warns about widths above it, and the library refuses
	// to allocate a table larger than it.
	maxSupportedWidth = 32
)

func (cfg WriterConfig) normalize() (WriterConfig, error) {
	out := cfg
	if out.MinWidth == 0 {
		out.MinWidth = DefaultMinWidth
	}
	if out.MaxWidth == 0 {
		out.MaxWidth = DefaultMaxWidth
	}
	if out.MinWidth < 1 || out.MaxWidth < out.MinWidth || out.MaxWidth > maxSupportedWidth {
		return out, ErrConfig
	}
	if len(out.Alphabet) == 0 || len(out.Alphabet) > 65535 {
		return out, ErrConfig
	}
	var hasCR, hasLF bool
	seen := make(map[byte]bool, len(out.Alphabet))
	for _, b := range out.Alphabet {
		if seen[b] {
			return out, ErrConfig
		}
		seen[b] = true
		if b == '\r' {
			hasCR = true
		}
		if b == '\n' {
			hasLF = true
		}
	}
	if !hasCR || !hasLF {
		return out, ErrConfig
	}

	reserved := 1
	if out.Policy == PolicyReset {
		reserved = 2
	}
	// The first codeword is emitted at width MinWidth, so every initial
	// code, reserved codes included, must already fit in MinWidth bits.
	if (1 << uint(out.MinWidth)) < len(out.Alphabet)+reserved {
		return out, ErrConfig
	}
	return out, nil
}

// Writer compresses a raw byte stream restricted to cfg.Alphabet into a
// header followed by a variable-width codeword stream.
type Writer struct {
	InputOffset  int64
	OutputOffset int64

	bw  bitWriter
	cfg WriterConfig

	accept [256]bool
	codes  prefixTable

	lruEnc *evict.LRU[string]
	lfuEnc *evict.LFU[string]

	current []byte // mutable prefix buffer, reused across steps
	hasByte bool   // whether any input byte has ever been seen

	aSize           int
	eofCode         int
	resetCode       int
	initialNextCode int
	nextCode        int
	m               int // M = 1 << MaxWidth
	w               uint
	t               uint64 // threshold = 1 << w

	closed bool
	err    error
}

// NewWriter creates a Writer that compresses to w using cfg.
func NewWriter(w io.Writer, cfg WriterConfig) (*Writer, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	zw := &Writer{cfg: cfg}
	zw.bw.Init(w)

	for _, b := range cfg.Alphabet {
		zw.accept[b] = true
	}

	zw.aSize = len(cfg.Alphabet)
	zw.m = 1 << uint(cfg.MaxWidth)
	zw.codes.Init()
	for i, b := range cfg.Alphabet {
		zw.codes.put([]byte{b}, i)
	}
	zw.nextCode = zw.aSize
	zw.eofCode = zw.nextCode
	zw.nextCode++
	if cfg.Policy == PolicyReset {
		zw.resetCode = zw.nextCode
		zw.nextCode++
	}
	zw.initialNextCode = zw.nextCode
	zw.w = uint(cfg.MinWidth)
	zw.t = 1 << zw.w

	if cfg.Policy.tracked() {
		zw.lruEnc = evict.NewLRU[string]()
		zw.lfuEnc = evict.NewLFU[string]()
	}

	hdr := header{
		minW:     uint8(cfg.MinWidth),
		maxW:     uint8(cfg.MaxWidth),
		policy:   cfg.Policy,
		alphabet: cfg.Alphabet,
	}
	if err := writeHeader(&zw.bw, hdr); err != nil {
		return nil, err
	}
	zw.current = make([]byte, 0, 64)
	return zw, nil
}

// Write compresses buf, per io.Writer. Every byte must belong to the
// configured alphabet; the first byte outside it stops the Write with
// ErrAlphabet, and the Writer reports that error from then on.
func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.closed {
		return 0, ErrClosed
	}
	if zw.err != nil {
		return 0, zw.err
	}
	var n int
	func() {
		defer errRecover(&zw.err)
		for n < len(buf) {
			zw.step(buf[n])
			n++
		}
	}()
	zw.InputOffset += int64(n)
	zw.OutputOffset = zw.bw.offset
	return n, zw.err
}

// step processes one input byte, extending the current prefix while it
// still names a codebook entry and emitting its code once it cannot.
func (zw *Writer) step(c byte) {
	if !zw.accept[c] {
		panic(ErrAlphabet)
	}
	if !zw.hasByte {
		zw.hasByte = true
		zw.current = append(zw.current[:0], c)
		return
	}

	next := append(zw.current, c)
	if _, ok := zw.codes.contains(next); ok {
		zw.current = next
		return
	}

	zw.emitAndGrow(next)
	zw.current = append(zw.current[:0], c)
}

// emitAndGrow emits the code for zw.current (the longest match found so
// far) and then inserts next = current++c into the codebook, applying
// growth, reset, or eviction as the active policy demands.
func (zw *Writer) emitAndGrow(next []byte) {
	current := next[:len(next)-1]
	code, ok := zw.codes.contains(current)
	if !ok {
		panic(Error("internal: current not in codebook"))
	}
	zw.emitCode(code)
	zw.use(current, code)

	if zw.nextCode < zw.m {
		if zw.nextCode >= int(zw.t) && zw.w < uint(zw.cfg.MaxWidth) {
			zw.w++
			zw.t = 1 << zw.w
		}
		// This insertion may be the one that brings the codebook to exactly
		// M entries; that is still a plain insert, not an eviction. Only
		// once nextCode has reached M on a later step does the table count
		// as full (handled in the switch below).
		key := zw.codes.put(next, zw.nextCode)
		zw.trackNew(key)
		zw.nextCode++
		return
	}

	switch zw.cfg.Policy {
	case PolicyFreeze:
		// No further insertions once full.
	case PolicyReset:
		if zw.nextCode >= int(zw.t) && zw.w < uint(zw.cfg.MaxWidth) {
			zw.w++
			zw.t = 1 << zw.w
		}
		zw.emitCode(zw.resetCode)
		zw.rebuild()
	case PolicyLRU, PolicyLFU:
		zw.evictAndInsert(next)
	}
}

// evictAndInsert evicts the policy's chosen victim (if any) and inserts
// next at the code the victim frees, so nextCode stays pinned at M once
// the table fills. If no victim is available (a maximum codebook with no
// non-alphabet entries to evict) the codebook is left as-is for this
// step, behaving like freeze.
func (zw *Writer) evictAndInsert(next []byte) {
	victim, ok := zw.findVictim()
	if !ok {
		return
	}
	victimCode := zw.codes.m[victim]
	zw.codes.remove(victim)
	zw.removeTracked(victim)

	key := zw.codes.put(next, victimCode)
	zw.trackNew(key)
}

func (zw *Writer) findVictim() (string, bool) {
	switch zw.cfg.Policy {
	case PolicyLRU:
		return zw.lruEnc.FindLRU()
	case PolicyLFU:
		return zw.lfuEnc.FindLFU()
	default:
		return "", false
	}
}

func (zw *Writer) removeTracked(key string) {
	switch zw.cfg.Policy {
	case PolicyLRU:
		zw.lruEnc.Remove(key)
	case PolicyLFU:
		zw.lfuEnc.Remove(key)
	}
}

func (zw *Writer) trackNew(key string) {
	switch zw.cfg.Policy {
	case PolicyLRU:
		zw.lruEnc.Use(key)
	case PolicyLFU:
		zw.lfuEnc.Use(key)
	}
}

// use records a reference to an existing codebook entry. Alphabet entries
// (code < aSize) are never tracked; the trackers only ever see keys for
// entries the codec itself inserted.
func (zw *Writer) use(s []byte, code int) {
	if !zw.cfg.Policy.tracked() || code < zw.aSize {
		return
	}
	zw.trackNew(string(s))
}

// rebuild restores the codebook to its initial alphabet-only state, for
// the reset policy.
func (zw *Writer) rebuild() {
	zw.codes.Init()
	for i, b := range zw.cfg.Alphabet {
		zw.codes.put([]byte{b}, i)
	}
	zw.nextCode = zw.initialNextCode
	zw.w = uint(zw.cfg.MinWidth)
	zw.t = 1 << zw.w
}

// emitCode writes code at the current width, panicking (to be recovered
// by the Write/Close boundary) on a write failure.
func (zw *Writer) emitCode(code int) {
	if err := zw.bw.WriteBits(uint64(code), zw.w); err != nil {
		panic(err)
	}
}

// Close flushes any pending prefix, writes EOF_CODE, and closes the
// underlying bit stream. If no byte was ever written, the stream is the
// header alone: no codeword, EOF_CODE included, is emitted. Close is
// idempotent.
func (zw *Writer) Close() error {
	if zw.closed {
		return zw.err
	}
	zw.closed = true
	if zw.err != nil {
		return zw.err
	}
	func() {
		defer errRecover(&zw.err)
		if !zw.hasByte {
			return
		}
		if len(zw.current) > 0 {
			code, ok := zw.codes.contains(zw.current)
			if !ok {
				panic(Error("internal: current not in codebook"))
			}
			zw.emitCode(code)
			zw.use(zw.current, code)
		}
		if zw.nextCode >= int(zw.t) && zw.w < uint(zw.cfg.MaxWidth) {
			zw.w++
			zw.t = 1 << zw.w
		}
		zw.emitCode(zw.eofCode)
	}()
	if zw.err != nil {
		return zw.err
	}
	if err := zw.bw.Close(); err != nil {
		zw.err = err
	}
	zw.OutputOffset = zw.bw.offset
	return zw.err
}
