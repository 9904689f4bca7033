// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/gob"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/danieldk/wordbeam/cmd/common"
	"github.com/danieldk/wordbeam/decoder"
	"github.com/danieldk/wordbeam/model"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] config samples.tsv\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Each sample line holds a matrix filename and the ground truth,\n")
		fmt.Fprintf(os.Stderr, "separated by a tab. Matrix paths are relative to the sample file.\n\n")
		flag.PrintDefaults()
	}
}

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
var applySoftmax = flag.Bool("softmax", false, "apply a softmax to every matrix row")

func main() {
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	config := common.MustParseConfig(flag.Arg(0))

	modelFile, err := os.Open(config.Model)
	common.ExitIfError("Cannot open model", err)
	defer modelFile.Close()

	var m model.Model
	err = gob.NewDecoder(modelFile).Decode(&m)
	common.ExitIfError("Could not load model", err)

	mode, err := config.DecodingMode()
	common.ExitIfError("Invalid decoding mode", err)

	d, err := decoder.New(config.BeamWidth, mode, m, config.Smoothing)
	common.ExitIfError("Could not construct decoder", err)

	samplesFile, err := os.Open(flag.Arg(1))
	common.ExitIfError("Cannot open sample file", err)
	defer samplesFile.Close()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		common.ExitIfError("cannot create CPU profile", err)
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	eval := common.NewEvaluator(m.CharSet())
	scanner := bufio.NewScanner(samplesFile)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			fmt.Fprintf(os.Stderr, "Incorrect sample line: %s\n", line)
			os.Exit(1)
		}

		matPath := parts[0]
		if !filepath.IsAbs(matPath) {
			matPath = filepath.Join(filepath.Dir(flag.Arg(1)), matPath)
		}

		got := decodeSample(d, m, matPath)
		want := parts[1]
		eval.AddSample(got, want)

		fmt.Printf("Sample %d: %s\n", eval.Samples(), parts[0])
		fmt.Printf("Result:       %q\n", got)
		fmt.Printf("Ground truth: %q\n", want)
		fmt.Printf("Accumulated CER: %2f, WER: %2f\n\n", eval.CER(), eval.WER())
	}
	common.ExitIfError("Cannot read sample file", scanner.Err())

	fmt.Printf("Overall CER: %2f, WER: %2f (%d samples)\n", eval.CER(), eval.WER(), eval.Samples())
}

func decodeSample(d *decoder.Decoder, m model.Model, matPath string) string {
	f, err := os.Open(matPath)
	common.ExitIfError("Cannot open matrix", err)
	defer f.Close()

	mat, err := common.ReadMatrix(f, *applySoftmax)
	common.ExitIfError("Cannot read probability matrix", err)

	labels, err := d.Decode(mat)
	common.ExitIfError("Cannot decode matrix", err)

	return m.CharSet().Text(labels[0])
}
