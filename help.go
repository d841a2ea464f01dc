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
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **Pairtree %s**

Keep a set of 2-D points sorted by their distance from the origin (0,0) in a
self-balancing AVL tree, and watch how the tree reshapes itself as you insert
and delete points.

Built with Go %s

# 1. Commands
* **pairtree run**: full-screen UI. Type "x y", press enter to insert, ctrl+d to delete
* **pairtree menu**: the classic numbered menu (insert, delete, print, exit)
* **pairtree load FILE**: insert every point in FILE, then print the tree
* **pairtree print 1,2 3,4 ...**: insert the given points and print the tree.
  Put -- before negative points so they are not read as flags: pairtree print -- -1,2
* **pairtree settings**: show or create ~/.pairtree.yaml

# 2. Points files
* One point per line, written as "x y" or "x,y"
* Blank lines and lines starting with # are skipped

# 3. Reading the output
Each line is "<index>. (<x>,<y>)", in ascending distance order. The index is
the node's position in the tree: the root is 1 and the children of node i are
2i (left) and 2i+1 (right).

# Please be aware
* Two points at the same distance from the origin count as the same key. (3,4)
  and (4,3) cannot both be stored, and deleting (4,3) removes a stored (3,4)
* Copy to clipboard on Linux or Unix requires 'xclip' or 'xsel' to be installed

# License
Licensed under the Apache License, Version 2.0

`, version, runtime.Version())
	result := markdown.Render(string(message), 80, 3)
	return string(result)
}
