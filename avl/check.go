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
)

// Validate checks ordering, balance, stored heights and the node count, and
// returns an error describing the first violation found.
func (tree *AVLTree) Validate() error {
	count, err := tree.check(tree.root, nil, nil)
	if err != nil {
		return err
	}
	if count != tree.size {
		return fmt.Errorf("size mismatch: counted %d nodes, tree reports %d", count, tree.size)
	}
	return nil
}

// check verifies the subtree rooted at node against the exclusive bounds
// low and high, and returns the number of nodes in it.
func (tree *AVLTree) check(node *avlNode, low, high *OrderedPair) (int, error) {
	if node == nil {
		return 0, nil
	}
	if low != nil && node.key.Compare(*low) <= 0 {
		return 0, fmt.Errorf("order violated: %s is not greater than %s", node.key, *low)
	}
	if high != nil && node.key.Compare(*high) >= 0 {
		return 0, fmt.Errorf("order violated: %s is not less than %s", node.key, *high)
	}

	leftCount, err := tree.check(node.left, low, &node.key)
	if err != nil {
		return 0, err
	}
	rightCount, err := tree.check(node.right, &node.key, high)
	if err != nil {
		return 0, err
	}

	want := max(tree.getHeight(node.left), tree.getHeight(node.right)) + 1
	if node.height != want {
		return 0, fmt.Errorf("height of %s is %d, expected %d", node.key, node.height, want)
	}
	if b := tree.getBalanceFactor(node); b > 1 || b < -1 {
		return 0, fmt.Errorf("node %s is unbalanced: balance factor %d", node.key, b)
	}
	return leftCount + rightCount + 1, nil
}
