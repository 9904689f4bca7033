// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dict

import (
	"golang.org/x/exp/slices"
)

// A Tree is a prefix tree over the word characters of a dictionary. The
// tree is immutable after construction and safe for concurrent readers.
type Tree struct {
	root *Node
	size int
}

// A Node represents a dictionary prefix. The zero-length prefix is the
// root node; a path from the root spells a prefix of at least one
// dictionary word.
type Node struct {
	children map[rune]*Node
	next     []rune
	word     string
	isWord   bool
}

func newNode() *Node {
	return &Node{children: make(map[rune]*Node)}
}

// NewTree constructs a prefix tree from a set of words. Duplicate and
// empty words are ignored.
func NewTree(words []string) *Tree {
	t := &Tree{root: newNode()}

	for _, w := range words {
		t.add(w)
	}

	t.root.freeze()

	return t
}

func (t *Tree) add(word string) {
	if len(word) == 0 {
		return
	}

	node := t.root
	for _, r := range word {
		child, ok := node.children[r]
		if !ok {
			child = newNode()
			node.children[r] = child
		}

		node = child
	}

	if !node.isWord {
		node.isWord = true
		node.word = word
		t.size++
	}
}

// freeze computes the reachable next-character alphabet of every node:
// the direct edge labels plus the next characters of every child. The
// sets are sorted so that traversal order is deterministic.
func (n *Node) freeze() {
	seen := make(map[rune]struct{})

	for r, child := range n.children {
		child.freeze()

		seen[r] = struct{}{}
		for _, cr := range child.next {
			seen[cr] = struct{}{}
		}
	}

	n.next = make([]rune, 0, len(seen))
	for r := range seen {
		n.next = append(n.next, r)
	}
	slices.Sort(n.next)
}

// Root returns the node of the zero-length prefix.
func (t *Tree) Root() *Node {
	return t.root
}

// Size returns the number of words in the tree.
func (t *Tree) Size() int {
	return t.size
}

// Child descends one edge. It returns nil when no dictionary word
// continues the prefix with the given character.
func (n *Node) Child(r rune) *Node {
	return n.children[r]
}

// NextChars returns the reachable next-character alphabet of this
// prefix: every character that labels an edge anywhere in the subtree of
// the node, in rune order. A character in the set is not necessarily a
// direct edge; Child returns nil for such characters. The returned slice
// must not be modified.
func (n *Node) NextChars() []rune {
	return n.next
}

// IsWord reports whether the prefix of this node is a complete
// dictionary word. It is always false for the root.
func (n *Node) IsWord() bool {
	return n.isWord
}

// Word returns the dictionary word terminating at this node. It is the
// empty string for non-word nodes.
func (n *Node) Word() string {
	return n.word
}

// Words returns the dictionary words in the subtree of the node in
// lexicographic order. A positive limit caps the number of collected
// words; a limit of zero or less collects all of them.
func (n *Node) Words(limit int) []string {
	var words []string
	n.collect(limit, &words)
	return words
}

func (n *Node) collect(limit int, words *[]string) {
	if limit > 0 && len(*words) >= limit {
		return
	}

	if n.isWord {
		*words = append(*words, n.word)
	}

	for _, r := range n.edges() {
		n.children[r].collect(limit, words)
	}
}

// edges returns the direct edge labels in rune order.
func (n *Node) edges() []rune {
	edges := make([]rune, 0, len(n.children))
	for r := range n.children {
		edges = append(edges, r)
	}
	slices.Sort(edges)

	return edges
}
