// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decoder

import (
	"github.com/danieldk/wordbeam/dict"
)

// wordState is the word-boundary state of a hypothesis.
type wordState uint8

const (
	// beforeWord: no partial word is open and nothing was emitted
	// since the start of the sequence.
	beforeWord wordState = iota

	// inWord: a partial word is open; the suffix of the labels beyond
	// the last non-word character spells the path from the root of the
	// prefix tree to the beam's node.
	inWord

	// afterNonWord: the last emitted character is a non-word
	// character. Extension legality is the same as for beforeWord; the
	// states are kept apart for separator-level scoring extensions.
	afterNonWord
)

// A beam is a single decoding hypothesis.
type beam struct {
	// Label sequence emitted so far, without blanks and collapsed
	// repeats. The key is the sequence mapped to a string, used for
	// merging hypotheses.
	labels []int
	key    string

	// CTC path probabilities: pb is the probability that the paths of
	// this hypothesis end in a blank, pnb that they end in a non-blank.
	pb  float64
	pnb float64

	// Language-model probability of the completed words.
	pText float64

	state    wordState
	node     *dict.Node // prefix-tree node of the open word, when inWord
	lastWord string     // most recently completed word, for bigram scoring
}

// newBeam returns the hypothesis of the empty label sequence.
func newBeam() *beam {
	return &beam{pb: 1, pText: 1, state: beforeWord}
}

// total returns the path probability of the hypothesis.
func (b *beam) total() float64 {
	return b.pb + b.pnb
}

// lastLabel returns the last emitted label, or -1 for the empty
// hypothesis.
func (b *beam) lastLabel() int {
	if len(b.labels) == 0 {
		return -1
	}

	return b.labels[len(b.labels)-1]
}

// wordOpen reports whether the hypothesis ends inside a partial word
// that is not a complete dictionary word.
func (b *beam) wordOpen() bool {
	return b.state == inWord && !b.node.IsWord()
}
