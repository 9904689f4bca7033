// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wordbeam provides a dictionary-constrained CTC decoder.
//
// wordbeam decodes the output of a Connectionist Temporal Classification
// sequence classifier into text, constrained so that every emitted word
// belongs to a vocabulary learned from a text corpus. It is meant for
// handwriting and speech recognition pipelines where a neural model emits
// per-timestep character probabilities and the consumer requires
// vocabulary-valid transcriptions. The decoder can be used as a set of
// command-line utilities or as a Go package for integration in Go
// applications.
//
// The algorithm is a CTC beam search whose extension step is gated by a
// dictionary prefix tree and optionally rescored by a word-level n-gram
// language model:
//
// Word Beam Search: A Connectionist Temporal Classification Decoding
// Algorithm, Harald Scheidl, Stefan Fiel and Robert Sablatnig, 16th
// International Conference on Frontiers in Handwriting Recognition,
// ICFHR '18
package wordbeam
