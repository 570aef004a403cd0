// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-isel/pkg/selector"
	"github.com/spf13/cobra"
)

var dotCmd = &cobra.Command{
	Use:   "dot [flags] program.ir",
	Short: "print the selected value graph in Graphviz format.",
	Long: `Build the value graph of a given program, select tiles and print the result in Graphviz DOT
format.  Edges run from each value to its operands.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		writeDot(os.Stdout, SelectProgram(cmd, args[0]))
	},
}

// Write the annotated graph reachable from the root in DOT format.  Values not
// reachable from the root are omitted.
func writeDot(out io.Writer, result *selector.Result) {
	graph := result.Graph()
	//
	fmt.Fprintln(out, "digraph {")
	//
	for _, annotation := range result.Annotations() {
		node := graph.Node(annotation.Node)
		fmt.Fprintf(out, "    %d [ label = \"%s = %s\\n%s@%s:%d\" ]\n", node.Id(), node.Name(), node.Opcode().String(),
			annotation.Tile.Name, annotation.Loc.String(), annotation.Cost)
	}
	//
	for _, annotation := range result.Annotations() {
		node := graph.Node(annotation.Node)
		//
		for i, operand := range node.Operands() {
			label := "lhs"
			if i == 1 {
				label = "rhs"
			}
			//
			fmt.Fprintf(out, "    %d -> %d [ label = \"%s\" ]\n", node.Id(), operand, label)
		}
	}
	//
	fmt.Fprintln(out, "}")
}

func init() {
	rootCmd.AddCommand(dotCmd)
	dotCmd.Flags().String("catalog", "", "read tiles from a catalog file (.lisp, .json or .yaml)")
	dotCmd.Flags().String("root", "", "select from a given value, rather than the last defined")
	dotCmd.Flags().Bool("strict", false, "only permit declared inputs as leaves")
	dotCmd.Flags().Bool("reuse", false, "permit identical redefinitions of a value")
}
