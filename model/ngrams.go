// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Bigram stores an ordered pair of adjacent words.
type Bigram struct {
	W1 string
	W2 string
}
