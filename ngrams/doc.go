// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ngrams provides word-level n-gram models.
//
// An n-gram model estimates the probability of a word P(w) and the
// probability of a word given its predecessor P(w2|w1). The decoder uses
// these probabilities to rescore hypotheses whenever a word completes.
package ngrams
