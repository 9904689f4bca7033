// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dict provides the dictionary prefix tree.
//
// The tree answers the two questions the decoder asks at every timestep:
// which characters may legally extend the current word prefix toward some
// dictionary word, and whether the current prefix is itself a complete
// word. The reachable next-character alphabet of every node is
// precomputed during construction, so both queries are independent of the
// dictionary size.
package dict
