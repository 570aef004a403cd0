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
	"strings"

	"github.com/consensys/go-isel/pkg/dag"
	"github.com/consensys/go-isel/pkg/selector"
	"github.com/consensys/go-isel/pkg/tile"
	"github.com/consensys/go-isel/pkg/util/termio"
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select [flags] program.ir",
	Short: "select tiles for a program.",
	Long: `Build the value graph of a given program, and select a minimum-cost tile for each value
reachable from the root.  By default, the root is the last value defined.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result := SelectProgram(cmd, args[0])
		ansi := GetFlag(cmd, "ansi")
		//
		if GetFlag(cmd, "cover") {
			printCover(os.Stdout, result, ansi)
		} else {
			printAnnotations(os.Stdout, result, ansi)
		}
	},
}

// Print the annotation of every selected node.
func printAnnotations(out io.Writer, result *selector.Result, ansi bool) {
	var (
		graph = result.Graph()
		table = termio.NewTablePrinter(6)
	)
	//
	table.AddRow("name", "op", "operands", "tile", "loc", "cost")
	//
	for _, annotation := range result.Annotations() {
		node := graph.Node(annotation.Node)
		row := table.AddRow(node.Name(), node.Opcode().String(), operandNames(graph, node.Operands()),
			annotation.Tile.Name, annotation.Loc.String(), fmt.Sprintf("%d", annotation.Cost))
		//
		table.SetEscape(4, row, locEscape(annotation.Loc))
	}
	//
	table.AnsiEscapes(ansi)
	table.Print(out)
}

// Print the tile instances covering the root, along with their total cost.
func printCover(out io.Writer, result *selector.Result, ansi bool) {
	var (
		graph = result.Graph()
		table = termio.NewTablePrinter(5)
	)
	//
	table.AddRow("name", "tile", "loc", "inputs", "covers")
	//
	for _, instance := range result.Cover() {
		row := table.AddRow(graph.Node(instance.Node).Name(), instance.Tile.Name, instance.Tile.Loc.String(),
			operandNames(graph, instance.Inputs), operandNames(graph, instance.Covered))
		//
		table.SetEscape(2, row, locEscape(instance.Tile.Loc))
	}
	//
	table.AnsiEscapes(ansi)
	table.Print(out)
	fmt.Fprintf(out, "total cost: %d\n", result.TotalCost())
}

func operandNames(graph *dag.Graph, ids []dag.NodeId) string {
	names := make([]string, len(ids))
	//
	for i, id := range ids {
		names[i] = graph.Node(id).Name()
	}
	//
	return strings.Join(names, ", ")
}

func locEscape(loc tile.Loc) termio.AnsiEscape {
	switch loc {
	case tile.DSP:
		return termio.NewAnsiEscape().FgColour(termio.TERM_GREEN)
	case tile.LUT:
		return termio.NewAnsiEscape().FgColour(termio.TERM_CYAN)
	default:
		return termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW)
	}
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().String("catalog", "", "read tiles from a catalog file (.lisp, .json or .yaml)")
	selectCmd.Flags().String("root", "", "select from a given value, rather than the last defined")
	selectCmd.Flags().Bool("strict", false, "only permit declared inputs as leaves")
	selectCmd.Flags().Bool("reuse", false, "permit identical redefinitions of a value")
	selectCmd.Flags().Bool("cover", false, "print the selected tile instances, rather than per-value annotations")
}
