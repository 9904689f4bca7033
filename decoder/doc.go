// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decoder implements word beam search decoding.
//
// Word beam search is a CTC beam search in which hypotheses are only
// extended with characters that lead to a dictionary word. Per timestep,
// every hypothesis is extended by the blank, by a repetition of its last
// character, and by the characters that the dictionary prefix tree
// permits in its current word state. Hypotheses with equal label
// sequences are merged and the list is pruned to the beam width. Of the
// hypotheses of the final timestep, the most probable one that does not
// end inside a partial word is returned; when there is none, the most
// probable partial prefix is returned as-is.
//
// Depending on the decoding mode, completed words are additionally
// rescored with a word-level n-gram model (see the ngrams package).
package decoder
