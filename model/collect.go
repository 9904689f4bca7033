// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"golang.org/x/exp/slices"
)

// A FrequencyCollector collects the word frequencies from a corpus that
// are relevant to a word beam search decoder: the vocabulary and the
// unigram and bigram counts.
type FrequencyCollector struct {
	charSet      CharSet
	unigramFreqs map[string]int
	bigramFreqs  map[Bigram]int
	tokens       int
}

// NewFrequencyCollector constructs a FrequencyCollector that tokenizes
// corpus text using the given character set.
func NewFrequencyCollector(charSet CharSet) FrequencyCollector {
	return FrequencyCollector{
		charSet:      charSet,
		unigramFreqs: make(map[string]int),
		bigramFreqs:  make(map[Bigram]int),
	}
}

// Model returns the collected frequencies as a model.
func (c FrequencyCollector) Model() Model {
	vocab := make([]string, 0, len(c.unigramFreqs))
	for w := range c.unigramFreqs {
		vocab = append(vocab, w)
	}
	slices.Sort(vocab)

	return newModel(c.charSet, vocab, c.unigramFreqs, c.bigramFreqs, c.tokens)
}

// Process tokenizes a corpus segment and adds its word frequencies.
// Bigrams are counted over adjacent words within the segment; words of
// different segments are never adjacent.
func (c *FrequencyCollector) Process(text string) {
	words := c.charSet.Tokenize(text)

	for i, w := range words {
		c.unigramFreqs[w]++
		c.tokens++

		if i > 0 {
			c.bigramFreqs[Bigram{W1: words[i-1], W2: w}]++
		}
	}
}

// FromCorpus collects the frequencies of a complete corpus into a model.
func FromCorpus(corpus string, charSet CharSet) Model {
	c := NewFrequencyCollector(charSet)
	c.Process(corpus)
	return c.Model()
}
