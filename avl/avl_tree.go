// avl_tree.go

// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package avl

import (
	"fmt"
	"math/bits"
)

// TraversalItem is one entry of an in-order walk. Index is the heap-style
// address of the node: the root is 1 and a node at i has children 2i and 2i+1.
type TraversalItem struct {
	Index int
	Pair  OrderedPair
}

// String renders the item as "<index>. (<x>,<y>)".
func (item TraversalItem) String() string {
	return fmt.Sprintf("%d. %s", item.Index, item.Pair)
}

// Depth returns the 1-based level of the node, derived from its index.
func (item TraversalItem) Depth() int {
	if item.Index < 1 {
		return 0
	}
	return bits.Len(uint(item.Index))
}

// ParentIndex returns the index of the parent node, or 0 for the root.
func (item TraversalItem) ParentIndex() int {
	return item.Index / 2
}

type AVLTreeIFace interface {
	Insert(pair OrderedPair)
	Delete(pair OrderedPair)
	Search(pair OrderedPair) (OrderedPair, bool)
	Traverse() []TraversalItem
}

var _ AVLTreeIFace = (*AVLTree)(nil)

// AVLTree keeps OrderedPairs sorted by distance from the origin. It is not
// safe for concurrent use.
type AVLTree struct {
	root *avlNode
	size int
}

func NewAVLTree() *AVLTree {
	return &AVLTree{root: nil}
}

func (tree *AVLTree) getHeight(node *avlNode) int {
	if node == nil {
		return 0
	}
	return node.height
}

func (tree *AVLTree) updateHeight(node *avlNode) {
	node.height = max(tree.getHeight(node.left), tree.getHeight(node.right)) + 1
}

func (tree *AVLTree) getBalanceFactor(node *avlNode) int {
	if node == nil {
		return 0
	}
	return tree.getHeight(node.left) - tree.getHeight(node.right)
}

func (tree *AVLTree) rotateLeft(node *avlNode) *avlNode {
	if node == nil || node.right == nil {
		return node
	}

	pivot := node.right

	node.right = pivot.left
	pivot.left = node

	// Child first, then the new subtree root
	tree.updateHeight(node)
	tree.updateHeight(pivot)

	return pivot
}

func (tree *AVLTree) rotateRight(node *avlNode) *avlNode {
	if node == nil || node.left == nil {
		return node
	}

	pivot := node.left

	node.left = pivot.right
	pivot.right = node

	tree.updateHeight(node)
	tree.updateHeight(pivot)

	return pivot
}

// Insert adds pair to the tree. A pair at the same distance as a stored one
// is silently discarded.
func (tree *AVLTree) Insert(pair OrderedPair) {
	tree.root = tree.insertRecursive(tree.root, pair)
}

func (tree *AVLTree) insertRecursive(node *avlNode, pair OrderedPair) *avlNode {
	if node == nil {
		tree.size++
		return newAVLNode(pair)
	}

	switch c := pair.Compare(node.key); {
	case c < 0:
		node.left = tree.insertRecursive(node.left, pair)
	case c > 0:
		node.right = tree.insertRecursive(node.right, pair)
	default:
		// Duplicate distance, leave the subtree untouched
		return node
	}

	tree.updateHeight(node)

	balanceFactor := tree.getBalanceFactor(node)
	if balanceFactor > 1 {
		if pair.Compare(node.left.key) < 0 {
			// Left-Left case
			return tree.rotateRight(node)
		}
		// Left-Right case
		node.left = tree.rotateLeft(node.left)
		return tree.rotateRight(node)
	} else if balanceFactor < -1 {
		if pair.Compare(node.right.key) > 0 {
			// Right-Right case
			return tree.rotateLeft(node)
		}
		// Right-Left case
		node.right = tree.rotateRight(node.right)
		return tree.rotateLeft(node)
	}

	return node
}

// Delete removes the stored pair that is distance-equal to pair, if any.
// The removed pair may have different coordinates than the argument.
func (tree *AVLTree) Delete(pair OrderedPair) {
	tree.root = tree.deleteRecursive(tree.root, pair)
}

func (tree *AVLTree) deleteRecursive(node *avlNode, pair OrderedPair) *avlNode {
	if node == nil {
		return nil // Key not found
	}

	switch c := pair.Compare(node.key); {
	case c < 0:
		node.left = tree.deleteRecursive(node.left, pair)
	case c > 0:
		node.right = tree.deleteRecursive(node.right, pair)
	default:
		// Zero or one child: splice the node out
		if node.left == nil {
			tree.size--
			return node.right
		}
		if node.right == nil {
			tree.size--
			return node.left
		}
		// Two children: take over the in-order successor and remove it below
		successor := tree.findMin(node.right)
		node.key = successor.key
		node.right = tree.deleteRecursive(node.right, successor.key)
	}

	tree.updateHeight(node)
	return tree.rebalance(node)
}

func (tree *AVLTree) findMin(node *avlNode) *avlNode {
	for node.left != nil {
		node = node.left
	}
	return node
}

func (tree *AVLTree) findMax(node *avlNode) *avlNode {
	for node.right != nil {
		node = node.right
	}
	return node
}

// rebalance picks the rotation from the balance of the taller child, which
// is what deletion needs since the removed key says nothing about shape.
func (tree *AVLTree) rebalance(node *avlNode) *avlNode {
	balanceFactor := tree.getBalanceFactor(node)

	// Left-heavy
	if balanceFactor > 1 {
		if tree.getBalanceFactor(node.left) >= 0 {
			return tree.rotateRight(node)
		}
		node.left = tree.rotateLeft(node.left)
		return tree.rotateRight(node)
	}

	// Right-heavy
	if balanceFactor < -1 {
		if tree.getBalanceFactor(node.right) <= 0 {
			return tree.rotateLeft(node)
		}
		node.right = tree.rotateRight(node.right)
		return tree.rotateLeft(node)
	}

	return node
}

// Search looks for a stored pair at the same distance as pair.
// It returns the stored pair, and a boolean indicating whether one was found.
func (tree *AVLTree) Search(pair OrderedPair) (OrderedPair, bool) {
	return searchNode(tree.root, pair)
}

// searchNode is a helper function that traverses the AVL tree recursively.
func searchNode(node *avlNode, pair OrderedPair) (OrderedPair, bool) {
	if node == nil {
		return OrderedPair{}, false
	}

	switch c := pair.Compare(node.key); {
	case c < 0:
		return searchNode(node.left, pair)
	case c > 0:
		return searchNode(node.right, pair)
	default:
		return node.key, true
	}
}

func (tree *AVLTree) Contains(pair OrderedPair) bool {
	_, ok := tree.Search(pair)
	return ok
}

// Min returns the pair closest to the origin.
func (tree *AVLTree) Min() (OrderedPair, bool) {
	if tree.root == nil {
		return OrderedPair{}, false
	}
	return tree.findMin(tree.root).key, true
}

// Max returns the pair furthest from the origin.
func (tree *AVLTree) Max() (OrderedPair, bool) {
	if tree.root == nil {
		return OrderedPair{}, false
	}
	return tree.findMax(tree.root).key, true
}

func (tree *AVLTree) Len() int {
	return tree.size
}

func (tree *AVLTree) IsEmpty() bool {
	return tree.root == nil
}

// Height returns the number of levels in the tree, 0 when empty.
func (tree *AVLTree) Height() int {
	return tree.getHeight(tree.root)
}

// Walk visits the pairs in ascending distance order and stops early when fn
// returns false.
func (tree *AVLTree) Walk(fn func(item TraversalItem) bool) {
	walkInOrder(tree.root, 1, fn)
}

func walkInOrder(node *avlNode, index int, fn func(item TraversalItem) bool) bool {
	if node == nil {
		return true
	}
	if !walkInOrder(node.left, 2*index, fn) {
		return false
	}
	if !fn(TraversalItem{Index: index, Pair: node.key}) {
		return false
	}
	return walkInOrder(node.right, 2*index+1, fn)
}

// Traverse returns every stored pair in ascending distance order together
// with its heap-style index. Each call walks the whole tree again.
func (tree *AVLTree) Traverse() []TraversalItem {
	items := make([]TraversalItem, 0, tree.size)
	tree.Walk(func(item TraversalItem) bool {
		items = append(items, item)
		return true
	})
	return items
}
