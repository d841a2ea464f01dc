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
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cybrota/pairtree/avl"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// newSeededTree creates a tree and, when seedPath is set, preloads it.
func newSeededTree(seedPath string, config *Config, progress io.Writer) (*avl.AVLTree, error) {
	tree := avl.NewAVLTree()
	if seedPath == "" {
		return tree, nil
	}
	if _, err := LoadPointsFile(seedPath, tree, config.Loader, progress); err != nil {
		return nil, err
	}
	return tree, nil
}

// insertArgs inserts points given on the command line, e.g. "3,4" or "3 4".
func insertArgs(tree *avl.AVLTree, args []string) error {
	for _, arg := range args {
		pair, err := parsePoint(arg)
		if err != nil {
			return fmt.Errorf("argument %q: %w", arg, err)
		}
		tree.Insert(pair)
	}
	return nil
}

func checkTree(tree *avl.AVLTree, check bool) {
	if !check {
		return
	}
	if err := tree.Validate(); err != nil {
		log.Fatalf("Tree invariant violated: %v", err)
	}
}

// newRootCmd builds the pairtree command tree.
func newRootCmd() *cobra.Command {
	asciiLogo := `
█▀█ ▄▀█ █ █▀█ ▀█▀ █▀█ █▀▀ █▀▀
█▀▀ █▀█ █ █▀▄  █  █▀▄ ██▄ ██▄
Points kept in a self-balancing tree, ordered by distance from the origin [Version: %s%s%s]

`
	asciiLogo = fmt.Sprintf(asciiLogo, Green, version, Reset)

	var seedPath string
	var check bool

	runUI := func(cmd *cobra.Command, args []string) {
		config, _ := LoadConfig()

		tree, err := newSeededTree(seedPath, config, os.Stderr)
		if err != nil {
			log.Fatalf("Error loading seed points: %v", err)
		}
		if err := runBubbleTeaApp(tree, NewDetailCache(), config, check); err != nil {
			log.Fatalf("Error running UI: %v", err)
		}
	}

	var cmdRun = &cobra.Command{
		Use:   "run",
		Short: "Launches the pairtree UI",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Run opens a full-screen UI to insert, delete and inspect points`),
		Args:  cobra.NoArgs,
		Run:   runUI,
	}

	var cmdMenu = &cobra.Command{
		Use:   "menu",
		Short: "Runs the numbered text menu",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Menu reads choices and coordinates from standard input`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			config, _ := LoadConfig()

			tree, err := newSeededTree(seedPath, config, os.Stderr)
			if err != nil {
				log.Fatalf("Error loading seed points: %v", err)
			}
			menu := NewMenu(tree, os.Stdin, os.Stdout, config.Display, check)
			if err := menu.Run(); err != nil {
				log.Fatalf("Error reading input: %v", err)
			}
		},
	}

	var cmdLoad = &cobra.Command{
		Use:   "load FILE",
		Short: "Loads points from a file and prints the tree",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Load inserts one point per line ("x y" or "x,y") and prints the resulting tree`),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config, _ := LoadConfig()

			tree := avl.NewAVLTree()
			stats, err := LoadPointsFile(args[0], tree, config.Loader, os.Stderr)
			if err != nil {
				log.Fatalf("Error loading points: %v", err)
			}
			checkTree(tree, check)

			writeTree(os.Stdout, tree, config.Display)
			fmt.Fprintf(os.Stderr, "%s%d inserted, %d rejected%s\n", Info, stats.Inserted, stats.Rejected, Reset)
		},
	}

	var cmdPrint = &cobra.Command{
		Use:   "print [--] X,Y ...",
		Short: "Inserts the given points and prints the tree",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Print inserts each X,Y argument and prints the tree. Put -- before the points when one starts with a minus sign, e.g. pairtree print -- -1,2`),
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			config, _ := LoadConfig()

			tree, err := newSeededTree(seedPath, config, os.Stderr)
			if err != nil {
				log.Fatalf("Error loading seed points: %v", err)
			}
			if err := insertArgs(tree, args); err != nil {
				log.Fatalf("Error: %v", err)
			}
			checkTree(tree, check)

			writeTree(cmd.OutOrStdout(), tree, config.Display)
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print pairtree usage guide",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage())
		},
	}

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show current settings, creating the config file if needed",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			displaySettings()
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print pairtree version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:     "pairtree",
		Version: version,
		Long:    asciiLogo,
		Args:    cobra.NoArgs,
		// Default to the UI when no subcommand is provided
		Run: runUI,
	}
	rootCmd.PersistentFlags().StringVar(&seedPath, "seed", "", "preload points from this file")
	rootCmd.PersistentFlags().BoolVar(&check, "check", false, "validate tree invariants after every change")

	rootCmd.AddCommand(cmdRun, cmdMenu, cmdLoad, cmdPrint, cmdUsage, cmdSettings, cmdVersion)
	return rootCmd
}

func main() {
	InitializeColors()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
