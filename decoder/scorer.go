// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decoder

import (
	"sync"

	"github.com/danieldk/wordbeam/dict"
	"github.com/danieldk/wordbeam/ngrams"
)

// forecastSampleCap is the number of completions summed per prefix in
// NGramsForecastAndSample mode. Completions are taken from the
// lexicographically sorted subtree enumeration, so sampled forecasts are
// reproducible.
const forecastSampleCap = 30

// A scorer computes the joint score of a hypothesis under the decoding
// mode. It is shared by all batch workers of a decoder; the forecast
// memo is the only mutable state and is guarded by a mutex.
type scorer struct {
	mode  Mode
	words ngrams.WordModel

	mu        sync.RWMutex
	forecasts map[forecastKey]float64
}

type forecastKey struct {
	node     *dict.Node
	lastWord string
}

func newScorer(mode Mode, words ngrams.WordModel) *scorer {
	return &scorer{
		mode:      mode,
		words:     words,
		forecasts: make(map[forecastKey]float64),
	}
}

// transition returns the language-model probability of completing the
// word w after last. In Words mode the dictionary constraint is the only
// restriction and the probability is 1.
func (s *scorer) transition(last, w string) float64 {
	if !s.mode.useNGrams() {
		return 1
	}

	return s.words.TransitionProb(last, w)
}

// score returns the joint score of a hypothesis during search: the path
// probability times the text probability. In forecast modes an open word
// prefix contributes the summed probability of its completions.
func (s *scorer) score(b *beam) float64 {
	return b.total() * s.textProb(b)
}

func (s *scorer) textProb(b *beam) float64 {
	p := b.pText

	if s.mode.useForecast() && b.state == inWord {
		p *= s.forecast(b.node, b.lastWord)
	}

	return p
}

// finalScore returns the joint score of a hypothesis after the last
// timestep. A hypothesis that ends exactly at a dictionary word is
// scored as if the word had completed.
func (s *scorer) finalScore(b *beam) float64 {
	if b.state == inWord && b.node.IsWord() {
		return b.total() * b.pText * s.transition(b.lastWord, b.node.Word())
	}

	return s.score(b)
}

// forecast returns the summed transition probability over the dictionary
// words that complete the prefix of the node. Sums are memoized per
// (node, last word) pair.
func (s *scorer) forecast(node *dict.Node, lastWord string) float64 {
	key := forecastKey{node: node, lastWord: lastWord}

	s.mu.RLock()
	sum, ok := s.forecasts[key]
	s.mu.RUnlock()
	if ok {
		return sum
	}

	limit := 0
	if s.mode == NGramsForecastAndSample {
		limit = forecastSampleCap
	}

	for _, w := range node.Words(limit) {
		sum += s.words.TransitionProb(lastWord, w)
	}

	s.mu.Lock()
	s.forecasts[key] = sum
	s.mu.Unlock()

	return sum
}
