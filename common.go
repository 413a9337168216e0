// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements a Lempel-Ziv-Welch codec with a variable-width
// codeword stream and four selectable policies for what happens once the
// codebook fills: freeze, reset, LRU eviction, and LFU eviction.
package lzw

import "runtime"

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }

var (
	// ErrConfig reports an invalid Writer/Reader configuration.
	ErrConfig error = Error("invalid configuration")

	// ErrAlphabet reports an alphabet that is malformed, empty, or a byte
	// in the input stream that does not belong to it.
	ErrAlphabet error = Error("byte not in alphabet")

	// ErrCorrupt reports a structurally invalid compressed stream.
	ErrCorrupt error = Error("stream is corrupted")

	// ErrClosed reports use of a Writer or Reader after Close.
	ErrClosed error = Error("reader/writer is closed")
)

// errRecover is deferred by public entry points whose inner steps signal
// fatal conditions by panicking. Runtime errors (out-of-bounds, nil
// dereference, and the like) always propagate; only values satisfying
// error are converted into a returned error.
func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
