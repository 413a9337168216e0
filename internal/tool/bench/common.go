// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the encode rate, decode rate, and compression
// ratio of this package's four dictionary policies against a handful of
// competing codecs, over a small corpus of sample files.
package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/dsnet/golib/unitconv"
	"github.com/dsnet/lzw/internal/testutil"
)

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

var (
	Encoders = make(map[string]Encoder)
	Decoders = make(map[string]Decoder)

	// Paths lists search directories for test files named by relative path.
	Paths []string
)

func RegisterEncoder(name string, enc Encoder) { Encoders[name] = enc }
func RegisterDecoder(name string, dec Decoder) { Decoders[name] = dec }

// BenchmarkEncoder benchmarks a single encoder on the given input data
// using the given level and reports the result.
func BenchmarkEncoder(input []byte, enc Encoder, lvl int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			wr := enc(ioutil.Discard, lvl)
			_, err := io.Copy(wr, bytes.NewBuffer(input))
			if cerr := wr.Close(); cerr != nil {
				b.Fatalf("unexpected error: %v", cerr)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

// BenchmarkDecoder benchmarks a single decoder on pre-compressed input and
// reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd := dec(bufio.NewReader(bytes.NewBuffer(input)))
			cnt, err := io.Copy(ioutil.Discard, rd)
			if cerr := rd.Close(); cerr != nil {
				b.Fatalf("unexpected error: %v", cerr)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(cnt)
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta relative to the first codec in the suite
}

type benchFunc func(input []byte, codec string, level int) Result

// Suite runs run across every (codec, file, level, size) combination.
//
// Returned results have shape [len(files)*len(levels)*len(sizes)][len(codecs)]Result.
func Suite(codecs, files []string, levels, sizes []int, tick func(), run benchFunc) (results [][]Result, names []string) {
	d0 := len(files) * len(levels) * len(sizes)
	d1 := len(codecs)
	results = make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names = make([]string, d0)

	var i int
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := testutil.LoadFile(getPath(f), n)
				names[i] = getName(f, l, len(b))
				for j, c := range codecs {
					if tick != nil {
						tick()
					}
					if err == nil {
						results[i][j] = run(b, c, l)
					}
					if results[i][0].R != 0 {
						results[i][j].D = results[i][j].R / results[i][0].R
					}
				}
				i++
			}
		}
	}
	return results, names
}

// EncodeRateSuite compares encoder throughput across codecs.
func EncodeRateSuite(codecs, files []string, levels, sizes []int, tick func()) ([][]Result, []string) {
	return Suite(codecs, files, levels, sizes, tick, func(input []byte, codec string, lvl int) Result {
		result := BenchmarkEncoder(input, Encoders[codec], lvl)
		if result.N == 0 {
			return Result{}
		}
		us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
		return Result{R: float64(result.Bytes) / us}
	})
}

// DecodeRateSuite compares decoder throughput across codecs. The codecs
// here do not share a wire format, so each decoder is fed the output of
// its own encoder rather than a common reference stream.
func DecodeRateSuite(codecs, files []string, levels, sizes []int, tick func()) ([][]Result, []string) {
	return Suite(codecs, files, levels, sizes, tick, func(input []byte, codec string, lvl int) Result {
		enc, ok := Encoders[codec]
		if !ok {
			return Result{}
		}
		buf := new(bytes.Buffer)
		wr := enc(buf, lvl)
		if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
			return Result{}
		}
		if wr.Close() != nil {
			return Result{}
		}
		result := BenchmarkDecoder(buf.Bytes(), Decoders[codec])
		if result.N == 0 {
			return Result{}
		}
		us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
		return Result{R: float64(result.Bytes) / us}
	})
}

// RatioSuite compares compression ratio across codecs.
func RatioSuite(codecs, files []string, levels, sizes []int, tick func()) ([][]Result, []string) {
	return Suite(codecs, files, levels, sizes, tick, func(input []byte, codec string, lvl int) Result {
		buf := new(bytes.Buffer)
		wr := Encoders[codec](buf, lvl)
		if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
			return Result{}
		}
		if wr.Close() != nil {
			return Result{}
		}
		return Result{R: float64(len(input)) / float64(buf.Len())}
	})
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile(`\.0*e\+0*`)
		sn = re.ReplaceAllString(s, "e")
	default:
		s := unitconv.FormatPrefix(float64(n), unitconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", path.Base(f), l, sn)
}
