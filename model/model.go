package model

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

var _ gob.GobEncoder = Model{}
var _ gob.GobDecoder = &Model{}

// Model stores the character set and the word frequencies collected from
// a corpus.
type Model struct {
	charSet      CharSet
	vocab        []string
	unigramFreqs map[string]int
	bigramFreqs  map[Bigram]int
	tokens       int
}

type encodedModel struct {
	CharSet      CharSet
	Vocab        []string
	UnigramFreqs map[string]int
	BigramFreqs  map[Bigram]int
	Tokens       int
}

func newModel(charSet CharSet, vocab []string, unigramFreqs map[string]int,
	bigramFreqs map[Bigram]int, tokens int) Model {
	return Model{
		charSet:      charSet,
		vocab:        vocab,
		unigramFreqs: unigramFreqs,
		bigramFreqs:  bigramFreqs,
		tokens:       tokens,
	}
}

// CharSet returns the character set of the model.
func (m Model) CharSet() CharSet {
	return m.charSet
}

// Vocab returns the vocabulary in lexicographic order.
func (m Model) Vocab() []string {
	return m.vocab
}

// VocabSize returns the number of distinct words in the vocabulary.
func (m Model) VocabSize() int {
	return len(m.vocab)
}

// UnigramFreq returns the corpus frequency of a word.
func (m Model) UnigramFreq(w string) int {
	return m.unigramFreqs[w]
}

// BigramFreq returns the corpus frequency of an ordered adjacent word
// pair.
func (m Model) BigramFreq(w1, w2 string) int {
	return m.bigramFreqs[Bigram{W1: w1, W2: w2}]
}

// Tokens returns the total number of word tokens in the corpus.
func (m Model) Tokens() int {
	return m.tokens
}

// String returns a summary of the model as a string.
func (m Model) String() string {
	return fmt.Sprintf("%d words, %d unigrams, %d bigrams, %d tokens",
		len(m.vocab), len(m.unigramFreqs), len(m.bigramFreqs), m.tokens)
}

// GobDecode decodes a Model from a gob.
func (m *Model) GobDecode(data []byte) error {
	var em encodedModel
	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&em); err != nil {
		return err
	}

	m.charSet = em.CharSet
	m.vocab = em.Vocab
	m.unigramFreqs = em.UnigramFreqs
	m.bigramFreqs = em.BigramFreqs
	m.tokens = em.Tokens

	return nil
}

// GobEncode encodes a Model as a gob.
func (m Model) GobEncode() ([]byte, error) {
	em := encodedModel{
		CharSet:      m.charSet,
		Vocab:        m.vocab,
		UnigramFreqs: m.unigramFreqs,
		BigramFreqs:  m.bigramFreqs,
		Tokens:       m.tokens,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)

	if err := encoder.Encode(em); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
