// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"github.com/danieldk/wordbeam/model"
)

// The Evaluator type accumulates the character error rate and word error
// rate of decoded samples against their ground truth.
type Evaluator struct {
	charSet    model.CharSet
	charErrors int
	charTotal  int
	wordErrors int
	wordTotal  int
	samples    int
}

// NewEvaluator creates an evaluator. The character set is used to
// tokenize transcriptions into words for the word error rate.
func NewEvaluator(charSet model.CharSet) *Evaluator {
	return &Evaluator{charSet: charSet}
}

// AddSample adds a decoded transcription and its ground truth.
func (e *Evaluator) AddSample(got, want string) {
	gotRunes := []rune(got)
	wantRunes := []rune(want)
	e.charErrors += editDistance(gotRunes, wantRunes)
	e.charTotal += len(wantRunes)

	gotWords := e.charSet.Tokenize(got)
	wantWords := e.charSet.Tokenize(want)
	e.wordErrors += editDistance(gotWords, wantWords)
	e.wordTotal += len(wantWords)

	e.samples++
}

// Samples returns the number of samples added.
func (e *Evaluator) Samples() int {
	return e.samples
}

// CER returns the character error rate: the summed character edit
// distance divided by the summed ground-truth length.
func (e *Evaluator) CER() float64 {
	if e.charTotal == 0 {
		return 0
	}

	return float64(e.charErrors) / float64(e.charTotal)
}

// WER returns the word error rate: the summed word edit distance
// divided by the summed ground-truth word count.
func (e *Evaluator) WER() float64 {
	if e.wordTotal == 0 {
		return 0
	}

	return float64(e.wordErrors) / float64(e.wordTotal)
}

// editDistance computes the Levenshtein distance between two sequences
// using two rolling rows.
func editDistance[T comparable](a, b []T) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i

		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(b)]
}
