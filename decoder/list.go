// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decoder

import (
	"golang.org/x/exp/slices"
)

// A beamList is the set of hypotheses of one timestep, keyed by label
// sequence. Inserting a label sequence twice merges the path
// probabilities; the text probability and word state are a function of
// the label sequence and are set once, on creation.
type beamList struct {
	entries map[string]*beam
}

func newBeamList() *beamList {
	return &beamList{entries: make(map[string]*beam)}
}

// carry returns the entry with the same label sequence as b, creating it
// with zero path probabilities when it does not exist. It is used for
// the blank and repeat extensions, which leave the labels unchanged.
func (l *beamList) carry(b *beam) *beam {
	if e, ok := l.entries[b.key]; ok {
		return e
	}

	e := &beam{
		labels:   b.labels,
		key:      b.key,
		pText:    b.pText,
		state:    b.state,
		node:     b.node,
		lastWord: b.lastWord,
	}
	l.entries[b.key] = e

	return e
}

// child returns the entry that extends b by one label, creating it when
// it does not exist. The init function fills in the word state of a
// newly created entry; it is not called on merges, since the state only
// depends on the label sequence.
func (l *beamList) child(b *beam, label int, init func(nb *beam)) *beam {
	key := b.key + string(rune(label))
	if e, ok := l.entries[key]; ok {
		return e
	}

	labels := make([]int, len(b.labels)+1)
	copy(labels, b.labels)
	labels[len(b.labels)] = label

	nb := &beam{
		labels:   labels,
		key:      key,
		pText:    b.pText,
		lastWord: b.lastWord,
	}
	init(nb)
	l.entries[key] = nb

	return nb
}

type scoredBeam struct {
	beam  *beam
	score float64
}

// rank scores all hypotheses and sorts them by descending score. Ties
// are broken by the lexicographic order of the label sequences, so that
// decoding is deterministic.
func (l *beamList) rank(score func(*beam) float64) []scoredBeam {
	ranked := make([]scoredBeam, 0, len(l.entries))
	for _, b := range l.entries {
		ranked = append(ranked, scoredBeam{beam: b, score: score(b)})
	}

	slices.SortFunc(ranked, func(a, b scoredBeam) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		case a.beam.key < b.beam.key:
			return -1
		case a.beam.key > b.beam.key:
			return 1
		default:
			return 0
		}
	})

	return ranked
}

// best prunes the list to the width highest-scoring hypotheses.
func (l *beamList) best(width int, score func(*beam) float64) []*beam {
	ranked := l.rank(score)
	if len(ranked) > width {
		ranked = ranked[:width]
	}

	beams := make([]*beam, len(ranked))
	for i, sb := range ranked {
		beams[i] = sb.beam
	}

	return beams
}
