// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command lzw compresses and expands a raw byte stream using this
// module's policy-driven LZW codec.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dsnet/lzw"
)

func main() {
	mode := flag.String("mode", "", "operating mode: compress or expand")
	alphabetPath := flag.String("alphabet", "", "path to an alphabet file (required for compress)")
	minW := flag.Int("minW", lzw.DefaultMinWidth, "minimum codeword width in bits")
	maxW := flag.Int("maxW", lzw.DefaultMaxWidth, "maximum codeword width in bits")
	policy := flag.String("policy", "freeze", "dictionary-full policy: freeze, reset, lru, lfu")
	flag.Parse() // an unrecognized option exits with code 2

	switch *mode {
	case "compress":
		compress(*alphabetPath, *minW, *maxW, *policy)
	case "expand":
		expand()
	default:
		fatal("lzw: --mode must be compress or expand")
	}
}

// fatal reports a user-visible error on stderr and exits with code 1.
func fatal(v interface{}) {
	fmt.Fprintln(os.Stderr, v)
	os.Exit(1)
}

func compress(alphabetPath string, minW, maxW int, policyName string) {
	if alphabetPath == "" {
		fatal("lzw: --alphabet is required for --mode compress")
	}
	if maxW > 32 {
		fmt.Fprintf(os.Stderr, "lzw: warning: --maxW %d exceeds 32; this is unusual and memory-intensive\n", maxW)
	}

	f, err := os.Open(alphabetPath)
	if err != nil {
		fatal(err)
	}
	defer f.Close()

	alphabet, err := lzw.ParseAlphabet(f)
	if err != nil {
		fatal(err)
	}

	zw, err := lzw.NewWriter(os.Stdout, lzw.WriterConfig{
		MinWidth: minW,
		MaxWidth: maxW,
		Policy:   lzw.ParsePolicy(policyName),
		Alphabet: alphabet,
	})
	if err != nil {
		fatal(err)
	}
	if _, err := io.Copy(zw, os.Stdin); err != nil {
		fatal(err)
	}
	if err := zw.Close(); err != nil {
		fatal(err)
	}
}

func expand() {
	zr, err := lzw.NewReader(os.Stdin)
	if err != nil {
		fatal(err)
	}
	if _, err := io.Copy(os.Stdout, zr); err != nil {
		fatal(err)
	}
	zr.Close()
}
