// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore

// Benchmark tool to compare this package's encode rate, decode rate, and
// compression ratio against a handful of competing codecs.
//
// Example usage:
//
//	$ go run main.go \
//		-tests  encRate,decRate,ratio \
//		-codecs lzw-freeze,lzw-lru,lzw-lfu,stdlib,xz \
//		-files  twain.txt \
//		-sizes  1e4,1e5,1e6
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/dsnet/lzw/internal/tool/bench"
)

const (
	defaultLevels = "0" // ignored by the lzw, stdlib and xz codecs; klauspost-flate maps 0 to its default level
	defaultSizes  = "1e4,1e5,1e6"
)

func defaultTests() string { return "encRate,decRate,ratio" }

func defaultFiles() string {
	fis, err := ioutil.ReadDir(".")
	if err != nil {
		return ""
	}
	var s []string
	for _, fi := range fis {
		if !strings.HasSuffix(fi.Name(), ".go") {
			s = append(s, fi.Name())
		}
	}
	return strings.Join(s, ",")
}

func defaultCodecs() string {
	m := make(map[string]bool)
	for k := range bench.Encoders {
		m[k] = true
	}
	for k := range bench.Decoders {
		m[k] = true
	}
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	return strings.Join(s, ",")
}

func main() {
	f1 := flag.String("tests", defaultTests(), "List of benchmark tests: encRate,decRate,ratio")
	f2 := flag.String("codecs", defaultCodecs(), "List of codecs to benchmark")
	f3 := flag.String("paths", "", "List of paths to search for test files")
	f4 := flag.String("files", defaultFiles(), "List of input files to benchmark")
	f5 := flag.String("levels", defaultLevels, "List of codec-specific levels")
	f6 := flag.String("sizes", defaultSizes, "List of input sizes to benchmark")
	flag.Parse()

	sep := regexp.MustCompile("[,:]")
	codecs := sep.Split(*f2, -1)
	var paths, files []string
	if *f3 != "" {
		paths = sep.Split(*f3, -1)
	}
	files = sep.Split(*f4, -1)

	var tests, levels, sizes []int
	testToEnum := map[string]int{"encRate": 0, "decRate": 1, "ratio": 2}
	for _, s := range sep.Split(*f1, -1) {
		v, ok := testToEnum[s]
		if !ok {
			panic("invalid test: " + s)
		}
		tests = append(tests, v)
	}
	for _, s := range sep.Split(*f5, -1) {
		lvl, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
		if err != nil {
			panic("invalid level: " + s)
		}
		levels = append(levels, int(lvl))
	}
	for _, s := range sep.Split(*f6, -1) {
		nf, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
		if err != nil {
			panic("invalid size: " + s)
		}
		sizes = append(sizes, int(nf))
	}

	ts := time.Now()
	bench.Paths = paths
	runBenchmarks(files, codecs, tests, levels, sizes)
	fmt.Printf("RUNTIME: %v\n", time.Since(ts))
}

func runBenchmarks(files, codecs []string, tests, levels, sizes []int) {
	var encs, decs []string
	for _, c := range codecs {
		if _, ok := bench.Encoders[c]; ok {
			encs = append(encs, c)
		}
		if _, ok := bench.Decoders[c]; ok {
			decs = append(decs, c)
		}
	}

	for _, t := range tests {
		var results [][]bench.Result
		var names, used []string
		var title, suffix string
		enumToTest := map[int]string{0: "encRate", 1: "decRate", 2: "ratio"}

		fmt.Printf("BENCHMARK: %s\n", enumToTest[t])
		if len(encs) == 0 {
			fmt.Println("\tSKIP: no encoders available")
			continue
		}

		var cnt int
		tick := func() {
			total := len(used) * len(files) * len(levels) * len(sizes)
			if total == 0 {
				return
			}
			fmt.Printf("\t[%6.2f%%] %d of %d\r", 100*float64(cnt)/float64(total), cnt, total)
			cnt++
		}

		switch t {
		case 0:
			used, title, suffix = encs, "MB/s", ""
			results, names = bench.EncodeRateSuite(encs, files, levels, sizes, tick)
		case 1:
			if len(decs) == 0 {
				fmt.Println("\tSKIP: no decoders available")
				continue
			}
			used, title, suffix = decs, "MB/s", ""
			results, names = bench.DecodeRateSuite(decs, files, levels, sizes, tick)
		case 2:
			used, title, suffix = encs, "ratio", "x"
			results, names = bench.RatioSuite(encs, files, levels, sizes, tick)
		}

		printResults(results, names, used, title, suffix)
		fmt.Println()
	}
}

func printResults(results [][]bench.Result, names, codecs []string, title, suffix string) {
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(codecs))
	}

	cells[0][0] = "benchmark"
	for i, c := range codecs {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	maxLens := make([]int, 1+2*len(codecs))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	for _, row := range cells {
		fmt.Print("\t")
		for i, s := range row {
			switch {
			case i == 0:
				row[i] = s + strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1:
				row[i] = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			default:
				row[i] = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Print(row[i])
		}
		fmt.Println()
	}
}
