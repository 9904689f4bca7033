// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strings"
)

var _ gob.GobEncoder = CharSet{}
var _ gob.GobDecoder = &CharSet{}

// ErrNotSubset is returned when the word characters are not a subset of
// the recognized characters.
var ErrNotSubset = fmt.Errorf("word characters are not a subset of the character set")

// A CharSet is the bijection between recognized characters and CTC label
// indices, together with the partition into word characters and non-word
// characters. Label index i refers to the i-th code point of the
// character string; the CTC blank label equals the number of characters.
type CharSet struct {
	chars     []rune
	labels    map[rune]int
	wordChars map[rune]struct{}
}

// NewCharSet creates a CharSet from the recognized characters in label
// order and the subset of characters that form words. It returns an
// error when the character string contains duplicates or when the word
// characters are not a subset of the recognized characters.
func NewCharSet(chars, wordChars string) (CharSet, error) {
	cs := CharSet{
		labels:    make(map[rune]int),
		wordChars: make(map[rune]struct{}),
	}

	for _, r := range chars {
		if _, ok := cs.labels[r]; ok {
			return CharSet{}, fmt.Errorf("duplicate character %q in character set", r)
		}

		cs.labels[r] = len(cs.chars)
		cs.chars = append(cs.chars, r)
	}

	if len(cs.chars) == 0 {
		return CharSet{}, fmt.Errorf("empty character set")
	}

	for _, r := range wordChars {
		if _, ok := cs.labels[r]; !ok {
			return CharSet{}, fmt.Errorf("%w: %q", ErrNotSubset, r)
		}

		cs.wordChars[r] = struct{}{}
	}

	return cs, nil
}

// Size returns the number of recognized characters, excluding the blank.
func (cs CharSet) Size() int {
	return len(cs.chars)
}

// NumLabels returns the number of CTC labels, i.e. the number of
// recognized characters plus the blank.
func (cs CharSet) NumLabels() int {
	return len(cs.chars) + 1
}

// Blank returns the label index of the CTC blank.
func (cs CharSet) Blank() int {
	return len(cs.chars)
}

// Label returns the label index of a character. The second return value
// is false when the character is not recognized.
func (cs CharSet) Label(r rune) (int, bool) {
	label, ok := cs.labels[r]
	return label, ok
}

// Rune returns the character of a non-blank label.
func (cs CharSet) Rune(label int) rune {
	return cs.chars[label]
}

// IsWordChar reports whether a character participates in words.
func (cs CharSet) IsWordChar(r rune) bool {
	_, ok := cs.wordChars[r]
	return ok
}

// NonWordLabels returns the labels of all non-word characters, in label
// order.
func (cs CharSet) NonWordLabels() []int {
	var labels []int

	for label, r := range cs.chars {
		if !cs.IsWordChar(r) {
			labels = append(labels, label)
		}
	}

	return labels
}

// Text maps a label sequence to the corresponding character string.
func (cs CharSet) Text(labels []int) string {
	var sb strings.Builder

	for _, label := range labels {
		sb.WriteRune(cs.chars[label])
	}

	return sb.String()
}

// Tokenize splits a text into words. A word is a maximal run of word
// characters; all other characters act purely as separators.
func (cs CharSet) Tokenize(text string) []string {
	var words []string
	var sb strings.Builder

	for _, r := range text {
		if cs.IsWordChar(r) {
			sb.WriteRune(r)
			continue
		}

		if sb.Len() > 0 {
			words = append(words, sb.String())
			sb.Reset()
		}
	}

	if sb.Len() > 0 {
		words = append(words, sb.String())
	}

	return words
}

type encodedCharSet struct {
	Chars     string
	WordChars string
}

// GobDecode decodes a CharSet from a gob.
func (cs *CharSet) GobDecode(data []byte) error {
	var ec encodedCharSet
	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&ec); err != nil {
		return err
	}

	decoded, err := NewCharSet(ec.Chars, ec.WordChars)
	if err != nil {
		return err
	}

	*cs = decoded

	return nil
}

// GobEncode encodes a CharSet as a gob.
func (cs CharSet) GobEncode() ([]byte, error) {
	var wordChars strings.Builder
	for _, r := range cs.chars {
		if cs.IsWordChar(r) {
			wordChars.WriteRune(r)
		}
	}

	ec := encodedCharSet{
		Chars:     string(cs.chars),
		WordChars: wordChars.String(),
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)

	if err := encoder.Encode(ec); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
