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
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cybrota/pairtree/avl"
	"github.com/mattn/go-shellwords"
	"github.com/schollz/progressbar/v3"
	"github.com/willf/bloom"
)

var (
	ErrMalformedPoint = errors.New("malformed point")
	errEmptyLine      = errors.New("empty line")
)

// LoadStats summarises a bulk load
type LoadStats struct {
	Inserted int
	Rejected int // same distance as a stored point
}

// splitFields tokenises a line the way a shell would, treating commas as
// separators so "1,2", "1, 2" and "1 2" all give two fields.
func splitFields(line string) ([]string, error) {
	args, err := shellwords.Parse(strings.ReplaceAll(line, ",", " "))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %v", line, err)
	}
	return args, nil
}

// parsePoint reads "x y" or "x,y". Blank lines and # comments give errEmptyLine.
func parsePoint(line string) (avl.OrderedPair, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return avl.OrderedPair{}, errEmptyLine
	}

	fields, err := splitFields(trimmed)
	if err != nil {
		return avl.OrderedPair{}, fmt.Errorf("%w: %v", ErrMalformedPoint, err)
	}
	if len(fields) != 2 {
		return avl.OrderedPair{}, fmt.Errorf("%w: expected 2 coordinates, got %d", ErrMalformedPoint, len(fields))
	}

	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return avl.OrderedPair{}, fmt.Errorf("%w: bad x %q", ErrMalformedPoint, fields[0])
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return avl.OrderedPair{}, fmt.Errorf("%w: bad y %q", ErrMalformedPoint, fields[1])
	}
	if !isFinite(x) || !isFinite(y) {
		return avl.OrderedPair{}, fmt.Errorf("%w: coordinates must be finite, got %q %q", ErrMalformedPoint, fields[0], fields[1])
	}
	return avl.NewOrderedPair(x, y), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func distanceKey(pair avl.OrderedPair) string {
	return strconv.FormatFloat(pair.DistanceFromOrigin(), 'g', -1, 64)
}

// LoadPoints inserts every point read from r into tree, one at a time.
// Progress is drawn on progress when it is non-nil and enabled in config.
// Loading stops at the first malformed line.
func LoadPoints(r io.Reader, tree *avl.AVLTree, config LoaderConfig, progress io.Writer) (LoadStats, error) {
	var stats LoadStats

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read points: %v", err)
	}

	var bar *progressbar.ProgressBar
	if config.ShowProgress && progress != nil {
		bar = progressbar.NewOptions(len(lines),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("📍 Loading points..."),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintf(progress, "\n✅ Loading completed!\n")
			}),
		)
	}

	// A negative bloom answer proves the distance is new, which saves the
	// tree lookup for most points of a large file.
	seen := bloom.New(config.BloomFilterSize, config.BloomFilterHashes)
	tree.Walk(func(item avl.TraversalItem) bool {
		seen.AddString(distanceKey(item.Pair))
		return true
	})

	for i, line := range lines {
		if bar != nil {
			bar.Add(1)
		}

		pair, err := parsePoint(line)
		if errors.Is(err, errEmptyLine) {
			continue
		}
		if err != nil {
			if bar != nil {
				bar.Describe("⚠️  Malformed point")
				bar.Exit()
			}
			return stats, fmt.Errorf("line %d: %w", i+1, err)
		}

		key := distanceKey(pair)
		if seen.TestString(key) && tree.Contains(pair) {
			stats.Rejected++
			continue
		}
		seen.AddString(key)
		before := tree.Len()
		tree.Insert(pair)
		if tree.Len() > before {
			stats.Inserted++
		} else {
			stats.Rejected++
		}
	}

	if bar != nil {
		bar.Finish()
	}
	return stats, nil
}

// LoadPointsFile opens path and loads it into tree.
func LoadPointsFile(path string, tree *avl.AVLTree, config LoaderConfig, progress io.Writer) (LoadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadStats{}, fmt.Errorf("points file %s not found", path)
		}
		return LoadStats{}, err
	}
	defer file.Close()

	stats, err := LoadPoints(file, tree, config, progress)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("Loaded %d points from %s (%d rejected as same-distance duplicates)", stats.Inserted, path, stats.Rejected)
	return stats, nil
}
