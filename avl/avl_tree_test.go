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
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// p builds a point on the x axis, so its distance is simply d.
func p(d float64) OrderedPair {
	return NewOrderedPair(d, 0)
}

type AVLTestCase struct {
	Name           string
	InitialKeys    []float64
	KeysToInsert   []float64
	KeysToDelete   []float64
	ExpectedOrder  []float64 // In-order traversal expectation after operations
	ExpectedRoot   float64
	ExpectedHeight int
}

func TestAVLTreeOperations(t *testing.T) {
	testCases := []AVLTestCase{
		{
			Name:           "Simple Insertion",
			KeysToInsert:   []float64{2, 1, 3},
			ExpectedOrder:  []float64{1, 2, 3},
			ExpectedRoot:   2,
			ExpectedHeight: 2,
		},
		{
			Name:           "Insertion with Balancing (Right-Right)",
			InitialKeys:    []float64{1},
			KeysToInsert:   []float64{2, 3},
			ExpectedOrder:  []float64{1, 2, 3},
			ExpectedRoot:   2,
			ExpectedHeight: 2,
		},
		{
			Name:           "Insertion with Balancing (Left-Left)",
			KeysToInsert:   []float64{3, 2, 1},
			ExpectedOrder:  []float64{1, 2, 3},
			ExpectedRoot:   2,
			ExpectedHeight: 2,
		},
		{
			Name:           "Insertion with Balancing (Left-Right)",
			KeysToInsert:   []float64{3, 1, 2},
			ExpectedOrder:  []float64{1, 2, 3},
			ExpectedRoot:   2,
			ExpectedHeight: 2,
		},
		{
			Name:           "Insertion with Balancing (Right-Left)",
			KeysToInsert:   []float64{1, 3, 2},
			ExpectedOrder:  []float64{1, 2, 3},
			ExpectedRoot:   2,
			ExpectedHeight: 2,
		},
		{
			Name:           "Deletion with Balancing (Left-Left)",
			InitialKeys:    []float64{3, 2, 4, 1},
			KeysToDelete:   []float64{4},
			ExpectedOrder:  []float64{1, 2, 3},
			ExpectedRoot:   2,
			ExpectedHeight: 2,
		},
		{
			Name:           "Deletion with Balancing (Right-Left)",
			InitialKeys:    []float64{50, 30, 70, 60},
			KeysToDelete:   []float64{30},
			ExpectedOrder:  []float64{50, 60, 70},
			ExpectedRoot:   60,
			ExpectedHeight: 2,
		},
		{
			Name:           "Deletion with Balancing (Left-Right)",
			InitialKeys:    []float64{50, 30, 70, 40},
			KeysToDelete:   []float64{70},
			ExpectedOrder:  []float64{30, 40, 50},
			ExpectedRoot:   40,
			ExpectedHeight: 2,
		},
		{
			Name:           "Mixed Operations",
			InitialKeys:    []float64{4, 3},
			KeysToInsert:   []float64{5, 1},
			KeysToDelete:   []float64{3},
			ExpectedOrder:  []float64{1, 4, 5},
			ExpectedRoot:   4,
			ExpectedHeight: 2,
		},
		{
			Name:           "Delete Missing Key",
			InitialKeys:    []float64{1, 2, 3},
			KeysToDelete:   []float64{9},
			ExpectedOrder:  []float64{1, 2, 3},
			ExpectedRoot:   2,
			ExpectedHeight: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tree := NewAVLTree()
			for _, key := range tc.InitialKeys {
				tree.Insert(p(key))
			}
			for _, key := range tc.KeysToInsert {
				tree.Insert(p(key))
			}
			for _, key := range tc.KeysToDelete {
				tree.Delete(p(key))
			}

			if !verifyInOrderTraversal(t, tree, tc.ExpectedOrder) {
				t.Errorf("In-order traversal mismatch for test case '%s'", tc.Name)
			}
			if got := tree.root.key.X(); got != tc.ExpectedRoot {
				t.Errorf("root: expected %v, got %v", tc.ExpectedRoot, got)
			}
			if got := tree.Height(); got != tc.ExpectedHeight {
				t.Errorf("height: expected %d, got %d", tc.ExpectedHeight, got)
			}
			if err := tree.Validate(); err != nil {
				t.Errorf("invalid tree: %v", err)
			}
		})
	}
}

func verifyInOrderTraversal(t *testing.T, tree *AVLTree, expected []float64) bool {
	items := tree.Traverse()
	if len(items) != len(expected) {
		t.Logf("Length mismatch. Expected %d elements, got %d", len(expected), len(items))
		return false
	}
	for i := range expected {
		if items[i].Pair.DistanceFromOrigin() != expected[i] {
			t.Logf("Mismatch at index %d. Expected '%v', got '%v'", i, expected[i], items[i].Pair)
			return false
		}
	}
	return true
}

func TestIncreasingDiagonalRotates(t *testing.T) {
	tree := NewAVLTree()
	tree.Insert(NewOrderedPair(0, 0))
	tree.Insert(NewOrderedPair(1, 1))
	tree.Insert(NewOrderedPair(2, 2))

	require.Equal(t, 2, tree.Height())
	require.True(t, tree.root.key.SameCoordinates(NewOrderedPair(1, 1)))

	tree.Insert(NewOrderedPair(3, 3))
	require.NoError(t, tree.Validate())
	require.Equal(t, 3, tree.Height())

	var got []string
	for _, item := range tree.Traverse() {
		got = append(got, item.String())
	}
	require.Equal(t, []string{
		"2. (0.0,0.0)",
		"1. (1.0,1.0)",
		"3. (2.0,2.0)",
		"7. (3.0,3.0)",
	}, got)
}

func TestSameDistanceInsertIsRejected(t *testing.T) {
	tree := NewAVLTree()
	tree.Insert(NewOrderedPair(5, 0))
	tree.Insert(NewOrderedPair(0, 5))

	items := tree.Traverse()
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].Index)
	require.True(t, items[0].Pair.SameCoordinates(NewOrderedPair(5, 0)))
	require.Equal(t, 1, tree.Len())
}

func TestAscendingInsertStaysShallow(t *testing.T) {
	tree := NewAVLTree()
	for x := 1.0; x <= 5; x++ {
		tree.Insert(NewOrderedPair(x, 0))
		require.NoError(t, tree.Validate())
	}
	require.Equal(t, 3, tree.Height())
	require.Equal(t, 5, tree.Len())
	require.Equal(t, 2.0, tree.root.key.X())
}

func TestDeleteUsesInOrderSuccessor(t *testing.T) {
	tree := NewAVLTree()
	for _, d := range []float64{50, 30, 70, 20, 40, 60, 80} {
		tree.Insert(p(d))
	}
	require.Equal(t, 3, tree.Height())

	// Leaf
	tree.Delete(p(20))
	require.NoError(t, tree.Validate())
	require.Equal(t, 6, tree.Len())

	// Root with two children: 60 moves up from the right subtree
	tree.Delete(p(50))
	require.NoError(t, tree.Validate())
	require.Equal(t, 60.0, tree.root.key.X())
	require.Equal(t, []TraversalItem{
		{Index: 2, Pair: p(30)},
		{Index: 5, Pair: p(40)},
		{Index: 1, Pair: p(60)},
		{Index: 3, Pair: p(70)},
		{Index: 7, Pair: p(80)},
	}, tree.Traverse())

	// Emptying the left side forces a rotation at the root
	tree.Delete(p(30))
	require.NoError(t, tree.Validate())
	tree.Delete(p(40))
	require.NoError(t, tree.Validate())
	require.Equal(t, 70.0, tree.root.key.X())
	require.Equal(t, 2, tree.Height())
}

func TestDeleteRebalancesMultipleLevels(t *testing.T) {
	// Left-heavy start, then grow the right side and drain the left one
	tree := NewAVLTree()
	for _, d := range []float64{
		8, 5, 11, 3, 7, 10, 12, 2, 4, 6, 9, 13, 1,
	} {
		tree.Insert(p(d))
	}
	require.NoError(t, tree.Validate())

	for _, d := range []float64{14, 15, 16, 17, 18, 19, 20} {
		tree.Insert(p(d))
		require.NoError(t, tree.Validate())
	}
	for _, d := range []float64{1, 2, 3, 4, 6, 7} {
		tree.Delete(p(d))
		require.NoError(t, tree.Validate())
	}
	for _, d := range []float64{5, 8, 9, 10} {
		tree.Delete(p(d))
		require.NoError(t, tree.Validate())
	}
	require.Equal(t, 10, tree.Len())

	var got []float64
	for _, item := range tree.Traverse() {
		got = append(got, item.Pair.X())
	}
	require.Equal(t, []float64{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, got)
}

func TestDistanceEqualityCollapsesPoints(t *testing.T) {
	tree := NewAVLTree()
	tree.Insert(NewOrderedPair(3, 4))
	tree.Insert(NewOrderedPair(4, 3))
	require.Equal(t, 1, tree.Len())

	stored, ok := tree.Search(NewOrderedPair(4, 3))
	require.True(t, ok)
	require.True(t, stored.SameCoordinates(NewOrderedPair(3, 4)))

	// Deleting (4,3) removes the stored (3,4)
	tree.Delete(NewOrderedPair(4, 3))
	require.True(t, tree.IsEmpty())
	require.Equal(t, 0, tree.Len())
}

func TestDuplicateInsertKeepsTraversal(t *testing.T) {
	tree := NewAVLTree()
	for _, d := range []float64{4, 2, 6, 1, 3} {
		tree.Insert(p(d))
	}
	before := tree.Traverse()

	tree.Insert(p(3))
	tree.Insert(NewOrderedPair(0, -3))
	require.Equal(t, before, tree.Traverse())
	require.Equal(t, 5, tree.Len())
}

func TestDeleteAbsentIsNoop(t *testing.T) {
	tree := NewAVLTree()
	tree.Delete(p(1))
	require.True(t, tree.IsEmpty())

	for _, d := range []float64{4, 2, 6} {
		tree.Insert(p(d))
	}
	before := tree.Traverse()
	height := tree.Height()

	tree.Delete(p(5))
	require.Equal(t, before, tree.Traverse())
	require.Equal(t, height, tree.Height())
	require.Equal(t, 3, tree.Len())
}

func TestSearchMinMax(t *testing.T) {
	tree := NewAVLTree()
	_, ok := tree.Min()
	require.False(t, ok)
	_, ok = tree.Max()
	require.False(t, ok)
	_, ok = tree.Search(p(1))
	require.False(t, ok)

	for _, d := range []float64{5, 1, 9, 3, 7} {
		tree.Insert(p(d))
	}

	min, ok := tree.Min()
	require.True(t, ok)
	require.Equal(t, p(1), min)

	max, ok := tree.Max()
	require.True(t, ok)
	require.Equal(t, p(9), max)

	require.True(t, tree.Contains(NewOrderedPair(0, 7)))
	require.False(t, tree.Contains(p(4)))
}

func TestWalkStopsEarly(t *testing.T) {
	tree := NewAVLTree()
	for d := 1.0; d <= 10; d++ {
		tree.Insert(p(d))
	}

	var seen []float64
	tree.Walk(func(item TraversalItem) bool {
		seen = append(seen, item.Pair.X())
		return len(seen) < 3
	})
	require.Equal(t, []float64{1, 2, 3}, seen)
}

func TestTraversalIndicesAreHeapAddresses(t *testing.T) {
	tree := NewAVLTree()
	for d := 1.0; d <= 31; d++ {
		tree.Insert(p(d))
	}

	byIndex := make(map[int]OrderedPair)
	for _, item := range tree.Traverse() {
		byIndex[item.Index] = item.Pair
	}
	require.Len(t, byIndex, 31)

	for index, pair := range byIndex {
		if left, ok := byIndex[2*index]; ok {
			require.Equal(t, -1, left.Compare(pair))
		}
		if right, ok := byIndex[2*index+1]; ok {
			require.Equal(t, 1, right.Compare(pair))
		}
		if index > 1 {
			_, ok := byIndex[index/2]
			require.True(t, ok, "index %d has no parent", index)
		}
	}
}

func TestTraversalItemAddressing(t *testing.T) {
	tests := []struct {
		index  int
		depth  int
		parent int
	}{
		{1, 1, 0},
		{2, 2, 1},
		{3, 2, 1},
		{7, 3, 3},
		{8, 4, 4},
	}
	for _, tc := range tests {
		item := TraversalItem{Index: tc.index}
		if got := item.Depth(); got != tc.depth {
			t.Errorf("Depth(%d) = %d; want %d", tc.index, got, tc.depth)
		}
		if got := item.ParentIndex(); got != tc.parent {
			t.Errorf("ParentIndex(%d) = %d; want %d", tc.index, got, tc.parent)
		}
	}
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := NewAVLTree()
	reference := make(map[float64]OrderedPair)

	for i := 0; i < 2000; i++ {
		pair := NewOrderedPair(float64(rng.Intn(200)-100), float64(rng.Intn(200)-100))
		d := pair.DistanceFromOrigin()

		if rng.Intn(3) == 0 {
			tree.Delete(pair)
			delete(reference, d)
		} else {
			tree.Insert(pair)
			if _, ok := reference[d]; !ok {
				reference[d] = pair
			}
		}

		require.NoError(t, tree.Validate())
		require.Equal(t, len(reference), tree.Len())
	}

	items := tree.Traverse()
	require.Len(t, items, len(reference))
	for i, item := range items {
		require.Equal(t, reference[item.Pair.DistanceFromOrigin()], item.Pair)
		if i > 0 {
			require.Equal(t, -1, items[i-1].Pair.Compare(item.Pair))
		}
	}
}

func TestHeightBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := NewAVLTree()

	// Ascending order is the worst case for an unbalanced tree
	for d := 1; d <= 1000; d++ {
		tree.Insert(p(float64(d)))
	}
	for d := 0; d < 1000; d++ {
		tree.Insert(p(1000 + rng.Float64()*1000))
	}

	n := float64(tree.Len())
	bound := 1.45 * math.Log2(n+2)
	require.LessOrEqual(t, float64(tree.Height()), bound)
}

func TestInsertThenDeleteAllEmptiesTree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var pairs []OrderedPair
	tree := NewAVLTree()
	for d := 1; d <= 200; d++ {
		pair := p(float64(d))
		pairs = append(pairs, pair)
		tree.Insert(pair)
	}

	rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
	for _, pair := range pairs {
		tree.Delete(pair)
		require.NoError(t, tree.Validate())
	}

	require.True(t, tree.IsEmpty())
	require.Equal(t, 0, tree.Height())
	require.Empty(t, tree.Traverse())
}

func TestNaNKeepsTotalOrder(t *testing.T) {
	tree := NewAVLTree()
	nan := NewOrderedPair(math.NaN(), 0)

	for _, pair := range []OrderedPair{nan, p(1), p(2), p(3)} {
		tree.Insert(pair)
	}
	require.Equal(t, 4, tree.Len())
	require.NoError(t, tree.Validate())

	items := tree.Traverse()
	require.True(t, math.IsNaN(items[0].Pair.X()), "NaN should sort first, got %s", items[0].Pair)

	// An absent point must not match the NaN node
	tree.Delete(NewOrderedPair(7, 7))
	require.Equal(t, 4, tree.Len())
	require.False(t, tree.Contains(NewOrderedPair(7, 7)))

	tree.Delete(NewOrderedPair(0, math.NaN()))
	require.Equal(t, 3, tree.Len())
	require.NoError(t, tree.Validate())
	require.True(t, tree.Contains(p(1)))
}
