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
	"cmp"
	"math"
	"strconv"
	"strings"
)

// OrderedPair is an immutable 2-D point ordered by its distance from the origin.
//
// Two pairs at the same distance compare equal even when their coordinates
// differ, so (3,4) and (4,3) are the same key as far as the tree is concerned.
type OrderedPair struct {
	x float64
	y float64
}

func NewOrderedPair(x, y float64) OrderedPair {
	return OrderedPair{x: x, y: y}
}

func (p OrderedPair) X() float64 { return p.x }
func (p OrderedPair) Y() float64 { return p.y }

// DistanceFromOrigin returns sqrt(x² + y²).
func (p OrderedPair) DistanceFromOrigin() float64 {
	return math.Sqrt(p.x*p.x + p.y*p.y)
}

// Compare returns -1, 0 or +1 when p is closer to, as far from, or further
// from the origin than other. A NaN distance sorts before every other
// distance and equal to another NaN, so the order stays total.
func (p OrderedPair) Compare(other OrderedPair) int {
	return cmp.Compare(p.DistanceFromOrigin(), other.DistanceFromOrigin())
}

// Equal reports distance-equality, the relation the tree uses for duplicates.
func (p OrderedPair) Equal(other OrderedPair) bool {
	return p.Compare(other) == 0
}

// SameCoordinates reports true coordinate equality.
func (p OrderedPair) SameCoordinates(other OrderedPair) bool {
	return p.x == other.x && p.y == other.y
}

// String renders the pair as "(x,y)", e.g. "(3.0,4.5)".
func (p OrderedPair) String() string {
	return "(" + formatCoordinate(p.x) + "," + formatCoordinate(p.y) + ")"
}

// formatCoordinate prints the shortest round-trip form of v and keeps a
// trailing ".0" on integral values.
func formatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
