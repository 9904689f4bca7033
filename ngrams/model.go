// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ngrams

// A WordModel estimates word probabilities: the unigram probability
// P(w) and the transition probability p(w2|w1).
type WordModel interface {
	WordProb(w string) float64
	TransitionProb(w1, w2 string) float64
}
