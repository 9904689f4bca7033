// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model provides the data model of the decoder.
//
// The model consists of two parts: the character set, which maps between
// characters and CTC label indices and partitions the characters into
// word characters and non-word characters, and the word frequencies
// collected from a training corpus. Smoothed probabilities are derived
// from the frequencies by the ngrams package.
package model
