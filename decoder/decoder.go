// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decoder

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/danieldk/wordbeam/dict"
	"github.com/danieldk/wordbeam/model"
	"github.com/danieldk/wordbeam/ngrams"
)

var (
	// ErrInvalidBeamWidth is returned when a decoder is constructed
	// with a beam width smaller than 1.
	ErrInvalidBeamWidth = errors.New("beam width must be at least 1")

	// ErrInvalidMode is returned when a decoder is constructed with an
	// unknown decoding mode.
	ErrInvalidMode = errors.New("invalid decoding mode")

	// ErrEmptyVocabulary is returned when an n-gram mode is requested
	// but the corpus tokenized to zero words.
	ErrEmptyVocabulary = errors.New("empty vocabulary")

	// ErrShape is returned when the probability matrix does not have
	// the shape [T][B][len(chars)+1] with T >= 1 and B >= 1.
	ErrShape = errors.New("invalid probability matrix shape")
)

// A Decoder decodes CTC probability matrices into label sequences whose
// words are constrained to a dictionary. A Decoder is immutable and safe
// for concurrent use.
type Decoder struct {
	width   int
	mode    Mode
	charSet model.CharSet
	tree    *dict.Tree
	scorer  *scorer

	blank         int
	nonWordLabels []int
	rootLabels    []labelEdge
}

// A labelEdge pairs the label of a word character with the prefix-tree
// node that emitting it leads to from the root.
type labelEdge struct {
	label int
	node  *dict.Node
}

// New constructs a decoder from a data model. The beam width must be at
// least 1 and the smoothing constant non-negative; modes other than
// Words require a non-empty vocabulary.
func New(width int, mode Mode, m model.Model, smoothing float64) (*Decoder, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBeamWidth, width)
	}

	if !mode.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	if mode.useNGrams() && m.VocabSize() == 0 {
		return nil, fmt.Errorf("%w: mode %s requires a corpus with words", ErrEmptyVocabulary, mode)
	}

	words, err := ngrams.NewAddKModel(m, smoothing)
	if err != nil {
		return nil, err
	}

	charSet := m.CharSet()
	tree := dict.NewTree(m.Vocab())

	d := &Decoder{
		width:         width,
		mode:          mode,
		charSet:       charSet,
		tree:          tree,
		scorer:        newScorer(mode, words),
		blank:         charSet.Blank(),
		nonWordLabels: charSet.NonWordLabels(),
	}

	for _, r := range tree.Root().NextChars() {
		label, ok := charSet.Label(r)
		if !ok {
			// Unreachable: vocabulary words consist of word
			// characters, which are part of the character set.
			return nil, fmt.Errorf("dictionary character %q outside character set", r)
		}

		d.rootLabels = append(d.rootLabels, labelEdge{label: label, node: tree.Root().Child(r)})
	}

	return d, nil
}

// FromCorpus constructs a decoder directly from a corpus and the
// character partitions. All three arguments are interpreted as UTF-8.
func FromCorpus(width int, mode Mode, smoothing float64, corpus, chars, wordChars string) (*Decoder, error) {
	charSet, err := model.NewCharSet(chars, wordChars)
	if err != nil {
		return nil, err
	}

	return New(width, mode, model.FromCorpus(corpus, charSet), smoothing)
}

// Tree returns the dictionary prefix tree of the decoder.
func (d *Decoder) Tree() *dict.Tree {
	return d.tree
}

// Decode decodes a probability matrix of shape [T][B][len(chars)+1]. For
// every batch element it returns the label sequence of the most probable
// hypothesis that does not end inside a partial word, or of the most
// probable hypothesis when there is no such hypothesis with a non-zero
// score; blanks are never part of the result. Batch elements are decoded
// in parallel.
func (d *Decoder) Decode(mat [][][]float64) ([][]int, error) {
	return d.DecodeContext(context.Background(), mat)
}

// DecodeContext decodes like Decode, but checks for cancellation between
// timesteps.
func (d *Decoder) DecodeContext(ctx context.Context, mat [][][]float64) ([][]int, error) {
	if err := d.checkShape(mat); err != nil {
		return nil, err
	}

	batchSize := len(mat[0])
	results := make([][]int, batchSize)

	workers := runtime.GOMAXPROCS(0)
	if workers > batchSize {
		workers = batchSize
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			for idx := range jobs {
				results[idx] = d.decodeBatch(ctx, mat, idx)
			}
		}()
	}

	for idx := 0; idx < batchSize; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (d *Decoder) checkShape(mat [][][]float64) error {
	if len(mat) == 0 {
		return fmt.Errorf("%w: zero timesteps", ErrShape)
	}

	batchSize := len(mat[0])
	if batchSize == 0 {
		return fmt.Errorf("%w: zero batch elements", ErrShape)
	}

	numLabels := d.charSet.NumLabels()

	for t, batch := range mat {
		if len(batch) != batchSize {
			return fmt.Errorf("%w: timestep %d has %d batch elements, want %d",
				ErrShape, t, len(batch), batchSize)
		}

		for b, probs := range batch {
			if len(probs) != numLabels {
				return fmt.Errorf("%w: element [%d][%d] has %d labels, want %d",
					ErrShape, t, b, len(probs), numLabels)
			}
		}
	}

	return nil
}

// decodeBatch runs the timestep loop for a single batch element.
func (d *Decoder) decodeBatch(ctx context.Context, mat [][][]float64, idx int) []int {
	beams := []*beam{newBeam()}

	for t := range mat {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		next := newBeamList()
		for _, b := range beams {
			d.expand(b, mat[t][idx], next)
		}

		beams = next.best(d.width, d.scorer.score)
	}

	return d.finish(beams)
}

// expand applies the blank, repeat, and character extensions of a
// hypothesis for one timestep.
func (d *Decoder) expand(b *beam, probs []float64, out *beamList) {
	// Blank extension: the label sequence stays the same and a word is
	// never closed by a blank.
	e := out.carry(b)
	e.pb += b.total() * probs[d.blank]

	// Repeat extension: only the non-blank paths may absorb a repeated
	// character without emitting a new label.
	if last := b.lastLabel(); last >= 0 {
		e.pnb += b.pnb * probs[last]
	}

	switch b.state {
	case beforeWord, afterNonWord:
		d.expandNonWord(b, probs, out, "")
		for _, edge := range d.rootLabels {
			d.expandWord(b, edge, probs, out)
		}
	case inWord:
		for _, r := range b.node.NextChars() {
			label, _ := d.charSet.Label(r)
			d.expandWord(b, labelEdge{label: label, node: b.node.Child(r)}, probs, out)
		}

		if b.node.IsWord() {
			d.expandNonWord(b, probs, out, b.node.Word())
		}
	}
}

// expandWord extends a hypothesis with a word character, opening or
// continuing a word.
func (d *Decoder) expandWord(b *beam, edge labelEdge, probs []float64, out *beamList) {
	// A character of the reachable alphabet that is not a direct edge of
	// the node does not continue any dictionary word.
	if edge.node == nil {
		return
	}

	p := d.extensionProb(b, edge.label, probs)
	if p == 0 {
		return
	}

	nb := out.child(b, edge.label, func(nb *beam) {
		nb.state = inWord
		nb.node = edge.node
	})
	nb.pnb += p
}

// expandNonWord extends a hypothesis with every non-word character.
// When the extension closes the word given by closed, the text
// probability picks up the language-model transition.
func (d *Decoder) expandNonWord(b *beam, probs []float64, out *beamList, closed string) {
	for _, label := range d.nonWordLabels {
		p := d.extensionProb(b, label, probs)
		if p == 0 {
			continue
		}

		nb := out.child(b, label, func(nb *beam) {
			nb.state = afterNonWord
			nb.node = nil

			if closed != "" {
				nb.pText = b.pText * d.scorer.transition(b.lastWord, closed)
				nb.lastWord = closed
			}
		})
		nb.pnb += p
	}
}

// extensionProb is the CTC prefix-probability recurrence for emitting a
// label: when the label repeats the last emitted label, only paths that
// end in a blank may extend the label sequence; the non-blank paths are
// covered by the repeat extension.
func (d *Decoder) extensionProb(b *beam, label int, probs []float64) float64 {
	if b.lastLabel() == label {
		return b.pb * probs[label]
	}

	return b.total() * probs[label]
}

// finish selects the output sequence from the final hypotheses. A
// hypothesis that ends exactly at a dictionary word is rescored with the
// completed word. The highest-scoring hypothesis without an open partial
// word wins; when every surviving hypothesis ends inside a partial word,
// the best partial prefix is emitted as-is. When every hypothesis has
// reached joint score zero, the result is the empty sequence.
func (d *Decoder) finish(beams []*beam) []int {
	if len(beams) == 0 {
		return nil
	}

	final := newBeamList()
	for _, b := range beams {
		final.entries[b.key] = b
	}
	ranked := final.rank(d.scorer.finalScore)

	if ranked[0].score == 0 {
		return nil
	}

	for _, sb := range ranked {
		if sb.score == 0 {
			break
		}

		if !sb.beam.wordOpen() {
			return sb.beam.labels
		}
	}

	return ranked[0].beam.labels
}
