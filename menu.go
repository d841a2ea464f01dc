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

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/cybrota/pairtree/avl"
	"github.com/mattn/go-shellwords"
)

const menuText = `
Menu:
1. Insert an OrderedPair
2. Delete an OrderedPair
3. Print the tree
4. Exit
Choose an option: `

var errInvalidNumber = errors.New("invalid number")

// tokenReader hands out whitespace separated tokens, so several answers may
// share a line and one answer may follow several blank lines.
type tokenReader struct {
	scanner *bufio.Scanner
	pending []string
}

func newTokenReader(r io.Reader) *tokenReader {
	return &tokenReader{scanner: bufio.NewScanner(r)}
}

// next returns io.EOF once the input is exhausted.
func (tr *tokenReader) next() (string, error) {
	for len(tr.pending) == 0 {
		if !tr.scanner.Scan() {
			if err := tr.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		words, err := shellwords.Parse(tr.scanner.Text())
		if err != nil {
			// Unbalanced quotes: keep the raw line as one token
			words = []string{tr.scanner.Text()}
		}
		tr.pending = words
	}
	token := tr.pending[0]
	tr.pending = tr.pending[1:]
	return token, nil
}

// Menu is the numbered text menu driving a tree from a reader and a writer.
type Menu struct {
	tree    *avl.AVLTree
	tokens  *tokenReader
	out     io.Writer
	display DisplayConfig
	check   bool
}

func NewMenu(tree *avl.AVLTree, in io.Reader, out io.Writer, display DisplayConfig, check bool) *Menu {
	return &Menu{
		tree:    tree,
		tokens:  newTokenReader(in),
		out:     out,
		display: display,
		check:   check,
	}
}

// Run shows the menu until the user picks Exit or the input ends.
func (m *Menu) Run() error {
	for {
		fmt.Fprint(m.out, menuText)

		token, err := m.tokens.next()
		if err != nil {
			return endOfInput(err)
		}

		choice, err := strconv.Atoi(token)
		if err != nil {
			choice = 0
		}

		switch choice {
		case 1, 2:
			pair, err := m.readPair()
			if errors.Is(err, errInvalidNumber) {
				continue
			}
			if err != nil {
				return endOfInput(err)
			}
			if choice == 1 {
				m.insert(pair)
			} else {
				m.delete(pair)
			}
		case 3:
			writeTree(m.out, m.tree, m.display)
		case 4:
			return nil
		default:
			fmt.Fprintln(m.out, m.colorize(Error, "Invalid choice!"))
		}
	}
}

func (m *Menu) readPair() (avl.OrderedPair, error) {
	x, err := m.readNumber("Enter x: ")
	if err != nil {
		return avl.OrderedPair{}, err
	}
	y, err := m.readNumber("Enter y: ")
	if err != nil {
		return avl.OrderedPair{}, err
	}
	return avl.NewOrderedPair(x, y), nil
}

func (m *Menu) readNumber(prompt string) (float64, error) {
	fmt.Fprint(m.out, prompt)
	token, err := m.tokens.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || !isFinite(v) {
		fmt.Fprintln(m.out, m.colorize(Error, fmt.Sprintf("Invalid number: %s", token)))
		return 0, errInvalidNumber
	}
	return v, nil
}

func (m *Menu) insert(pair avl.OrderedPair) {
	m.tree.Insert(pair)
	m.validate()
}

func (m *Menu) delete(pair avl.OrderedPair) {
	stored, found := m.tree.Search(pair)
	m.tree.Delete(pair)
	if found && !stored.SameCoordinates(pair) {
		fmt.Fprintln(m.out, m.colorize(Warning,
			fmt.Sprintf("Removed %s, which is as far from the origin as %s", stored, pair)))
	}
	m.validate()
}

func (m *Menu) validate() {
	if !m.check {
		return
	}
	if err := m.tree.Validate(); err != nil {
		log.Printf("Tree invariant violated: %v", err)
	}
}

func (m *Menu) colorize(color, text string) string {
	if !m.display.Color {
		return text
	}
	return color + text + Reset
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// writeTree prints one "<index>. (<x>,<y>)" line per stored pair in
// ascending distance order.
func writeTree(w io.Writer, tree *avl.AVLTree, display DisplayConfig) {
	tree.Walk(func(item avl.TraversalItem) bool {
		if display.ShowDistance {
			fmt.Fprintf(w, "%s  [d=%g]\n", item, item.Pair.DistanceFromOrigin())
		} else {
			fmt.Fprintln(w, item)
		}
		return true
	})
	if display.ShowSummary {
		fmt.Fprintf(w, "(%d points, height %d)\n", tree.Len(), tree.Height())
	}
}
