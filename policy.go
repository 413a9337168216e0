// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// Policy selects what happens when the codebook reaches its maximum size M.
type Policy uint8

const (
	// PolicyFreeze stops all codebook growth once full; codes continue to
	// be emitted against the frozen dictionary.
	PolicyFreeze Policy = 0

	// PolicyReset clears the codebook back to its initial alphabet-only
	// state once full, signaled by a RESET_CODE written into the stream.
	PolicyReset Policy = 1

	// PolicyLRU evicts the least-recently-used non-alphabet entry once
	// full, reusing its code for the new entry.
	PolicyLRU Policy = 2

	// PolicyLFU evicts the least-frequently-used non-alphabet entry once
	// full (oldest-in-bucket on ties), reusing its code for the new entry.
	PolicyLFU Policy = 3
)

// String returns the canonical lower-case name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyFreeze:
		return "freeze"
	case PolicyReset:
		return "reset"
	case PolicyLRU:
		return "lru"
	case PolicyLFU:
		return "lfu"
	default:
		return "freeze"
	}
}

// ParsePolicy maps a policy name to its Policy value. An unrecognized
// name is not an error: it silently falls back to freeze, the
// same behavior the encoder and decoder fall back to for an unrecognized
// policy byte in the stream header.
func ParsePolicy(name string) Policy {
	switch name {
	case "reset":
		return PolicyReset
	case "lru":
		return PolicyLRU
	case "lfu":
		return PolicyLFU
	case "freeze":
		return PolicyFreeze
	default:
		return PolicyFreeze
	}
}

// tracked reports whether policy p requires LRU/LFU bookkeeping.
func (p Policy) tracked() bool {
	return p == PolicyLRU || p == PolicyLFU
}
