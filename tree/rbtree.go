/*
* The MIT License (MIT)
* =====================
*
* Copyright (c) 2015, Cagatay Dogan
*
* Permission is hereby granted, free of charge, to any person obtaining a copy
* of this software and associated documentation files (the "Software"), to deal
* in the Software without restriction, including without limitation the rights
* to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
* copies of the Software, and to permit persons to whom the Software is
* furnished to do so, subject to the following conditions:
*
* The above copyright notice and this permission notice shall be included in
* all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
* IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
* FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
* AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
* LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
* OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
* THE SOFTWARE.
 */

// Package tree holds the ordered frequency table used by the stats package:
// a left-leaning red-black tree mapping a float64 value to the number of
// times it was observed.
//
// RbTree does no locking. Callers that share a tree between goroutines
// must serialize access themselves.
package tree

import (
	"math"

	"github.com/pkg/errors"
)

// ErrConcurrentModification is returned by Map when a key was inserted or
// the tree was cleared while it was being walked.
var ErrConcurrentModification = errors.New("tree: structural modification during traversal")

type KeyComparison int8

const (
	// KeyIsLess is returned as result of key comparison if the first key is less than the second key
	KeyIsLess KeyComparison = iota - 1
	// KeysAreEqual is returned as result of key comparison if the first key is equal to the second key
	KeysAreEqual
	// KeyIsGreater is returned as result of key comparison if the first key is greater than the second key
	KeyIsGreater
)

const (
	red   = byte(0)
	black = byte(1)
)

// compare orders keys totally: NaN sorts above every other value and is
// equal only to itself. -0 and +0 are the same key.
func compare(key1, key2 float64) KeyComparison {
	switch {
	case key1 > key2:
		return KeyIsGreater
	case key1 < key2:
		return KeyIsLess
	case key1 == key2:
		return KeysAreEqual
	}
	// at least one side is NaN
	switch nan1, nan2 := math.IsNaN(key1), math.IsNaN(key2); {
	case nan1 && nan2:
		return KeysAreEqual
	case nan1:
		return KeyIsGreater
	default:
		return KeyIsLess
	}
}

type rbNode struct {
	key    float64
	count  int64
	colour byte
	left   *rbNode
	right  *rbNode
}

// Entry is one (value, occurrences) pair of the table.
type Entry struct {
	Key   float64
	Count int64
}

type RbTree struct {
	root  *rbNode
	size  int
	total int64
	// version changes on every structural modification (new key, Clear).
	// Incrementing the count of an existing key leaves it alone.
	version uint32
}

func NewRbTree() *RbTree {
	return &RbTree{}
}

func newRbNode(key float64, count int64) *rbNode {
	return &rbNode{
		key:    key,
		count:  count,
		colour: red,
	}
}

func isRed(node *rbNode) bool {
	return node != nil && node.colour == red
}

func flipSingleNodeColour(node *rbNode) {
	if node.colour == black {
		node.colour = red
	} else {
		node.colour = black
	}
}

// Flips the colours of node, and its two children
func colourFlip(node *rbNode) {
	flipSingleNodeColour(node)
	flipSingleNodeColour(node.left)
	flipSingleNodeColour(node.right)
}

func rotateLeft(node *rbNode) *rbNode {
	child := node.right
	node.right = child.left
	child.left = node
	child.colour = node.colour
	node.colour = red
	return child
}

func rotateRight(node *rbNode) *rbNode {
	child := node.left
	node.left = child.right
	child.right = node
	child.colour = node.colour
	node.colour = red
	return child
}

func balance(node *rbNode) *rbNode {
	if isRed(node.right) {
		node = rotateLeft(node)
	}

	if isRed(node.left) && isRed(node.left.left) {
		node = rotateRight(node)
	}
	if isRed(node.left) && isRed(node.right) {
		colourFlip(node)
	}
	return node
}

// Len returns the number of distinct keys.
func (tree *RbTree) Len() int {
	return tree.size
}

// Total returns the sum of all counts.
func (tree *RbTree) Total() int64 {
	return tree.total
}

func (tree *RbTree) IsEmpty() bool {
	return tree.root == nil
}

func (tree *RbTree) find(key float64) *rbNode {
	for node := tree.root; node != nil; {
		switch compare(key, node.key) {
		case KeyIsLess:
			node = node.left
		case KeyIsGreater:
			node = node.right
		default:
			return node
		}
	}
	return nil
}

// Get returns the count stored for key.
func (tree *RbTree) Get(key float64) (int64, bool) {
	node := tree.find(key)
	if node == nil {
		return 0, false
	}
	return node.count, true
}

// addNode adds delta to the count of key below node, creating the node if
// the key is new.
func (tree *RbTree) addNode(node *rbNode, key float64, delta int64) *rbNode {
	if node == nil {
		tree.size++
		tree.version++
		return newRbNode(key, delta)
	}

	switch compare(key, node.key) {
	case KeyIsLess:
		node.left = tree.addNode(node.left, key, delta)
	case KeyIsGreater:
		node.right = tree.addNode(node.right, key, delta)
	default:
		node.count += delta
		return node
	}
	return balance(node)
}

// Add increments the count of key by delta, inserting key if it is not
// present yet.
func (tree *RbTree) Add(key float64, delta int64) {
	tree.total += delta
	tree.root = tree.addNode(tree.root, key, delta)
	tree.root.colour = black
}

// Clear removes every key.
func (tree *RbTree) Clear() {
	tree.root = nil
	tree.size = 0
	tree.total = 0
	tree.version++
}

func cloneNode(node *rbNode) *rbNode {
	if node == nil {
		return nil
	}
	return &rbNode{
		key:    node.key,
		count:  node.count,
		colour: node.colour,
		left:   cloneNode(node.left),
		right:  cloneNode(node.right),
	}
}

// Clone returns a deep copy of the tree.
func (tree *RbTree) Clone() *RbTree {
	return &RbTree{
		root:  cloneNode(tree.root),
		size:  tree.size,
		total: tree.total,
	}
}

type RbTreeCallback func(key float64, count int64) bool

func traverseAll(node *rbNode, callback RbTreeCallback) bool {
	if node == nil {
		return false
	}

	if node.left != nil {
		shouldTerminate := traverseAll(node.left, callback)
		if shouldTerminate {
			return true
		}
	}

	shouldTerminate := callback(node.key, node.count)
	if shouldTerminate {
		return true
	}

	if node.right != nil {
		shouldTerminate := traverseAll(node.right, callback)
		if shouldTerminate {
			return true
		}
	}
	return false
}

// Map calls fn for every key in ascending order until fn returns true.
// If fn (or anything else) inserts a key or clears the tree while Map is
// running, the walk stops and ErrConcurrentModification is returned.
func (tree *RbTree) Map(fn RbTreeCallback) error {
	if tree.IsEmpty() {
		return nil
	}

	version := tree.version
	modified := false
	traverseAll(tree.root, func(key float64, count int64) bool {
		if tree.version != version {
			modified = true
			return true
		}
		return fn(key, count)
	})
	if modified || tree.version != version {
		return ErrConcurrentModification
	}
	return nil
}

// Entries returns a snapshot of the table in ascending key order.
func (tree *RbTree) Entries() []Entry {
	entries := make([]Entry, 0, tree.size)
	traverseAll(tree.root, func(key float64, count int64) bool {
		entries = append(entries, Entry{Key: key, Count: count})
		return false
	})
	return entries
}
