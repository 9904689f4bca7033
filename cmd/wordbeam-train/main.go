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

	"github.com/danieldk/wordbeam/cmd/common"
	"github.com/danieldk/wordbeam/model"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] config chars.txt wordchars.txt corpus\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Corpora with a .conll or .conllx extension are read as CoNLL-X.\n\n")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if flag.NArg() != 4 {
		flag.Usage()
		os.Exit(1)
	}

	config := common.MustParseConfig(flag.Arg(0))

	chars := common.MustLoadChars(flag.Arg(1))
	wordChars := common.MustLoadChars(flag.Arg(2))

	charSet, err := model.NewCharSet(chars, wordChars)
	common.ExitIfError("Cannot construct character set", err)

	corpus := common.MustLoadCorpus(flag.Arg(3))

	collector := model.NewFrequencyCollector(charSet)
	collector.Process(corpus)
	m := collector.Model()

	out, err := os.Create(config.Model)
	common.ExitIfError("Cannot open model for writing", err)
	defer out.Close()

	bufOut := bufio.NewWriter(out)
	defer bufOut.Flush()

	enc := gob.NewEncoder(bufOut)
	err = enc.Encode(m)
	common.ExitIfError("Cannot encode model", err)

	fmt.Printf("Model: %s\n", m)
}
