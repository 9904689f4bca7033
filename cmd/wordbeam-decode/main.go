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
	"runtime/pprof"

	"github.com/danieldk/wordbeam/cmd/common"
	"github.com/danieldk/wordbeam/decoder"
	"github.com/danieldk/wordbeam/model"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] config [input.csv] [output.txt]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
var applySoftmax = flag.Bool("softmax", false, "apply a softmax to every matrix row")

func main() {
	flag.Parse()

	if flag.NArg() == 0 || flag.NArg() > 3 {
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

	inputFile := common.FileOrStdin(flag.Args(), 1)
	defer inputFile.Close()

	outputFile := common.FileOrStdout(flag.Args(), 2)
	defer outputFile.Close()

	mat, err := common.ReadMatrix(inputFile, *applySoftmax)
	common.ExitIfError("Cannot read probability matrix", err)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		common.ExitIfError("cannot create CPU profile", err)
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	labels, err := d.Decode(mat)
	common.ExitIfError("Cannot decode matrix", err)

	bufWriter := bufio.NewWriter(outputFile)
	defer bufWriter.Flush()

	for _, batchLabels := range labels {
		fmt.Fprintln(bufWriter, m.CharSet().Text(batchLabels))
	}
}
