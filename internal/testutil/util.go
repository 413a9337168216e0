// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"io"
	"os"
)

// LoadFile returns the first n bytes of the named corpus file. A negative
// n returns the whole file. A file shorter than n is tiled until it
// reaches n, with every repetition shifted by one extra byte value so the
// tiling does not hand a dictionary coder the same phrases over and over.
func LoadFile(file string, n int) ([]byte, error) {
	input, err := os.ReadFile(file)
	switch {
	case err != nil:
		return nil, err
	case n < 0:
		return input, nil
	case len(input) >= n:
		return input[:n], nil
	case len(input) == 0:
		return nil, io.ErrNoProgress // nothing to tile
	}

	output := make([]byte, n)
	var shift byte
	for i := range output {
		j := i % len(input)
		output[i] = input[j] + shift
		if j == len(input)-1 {
			shift++
		}
	}
	return output, nil
}
