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

	"github.com/consensys/go-isel/pkg/tile"
	"github.com/consensys/go-isel/pkg/util/termio"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags]",
	Short: "check a tile catalog covers every opcode.",
	Long: `Check that every opcode can be covered by some tile of a given catalog, independently of its operands.
Selection may fail on programs using an opcode which is not covered.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		catalog := ReadCatalog(cmd)
		missing := catalog.Check()
		//
		printCatalog(os.Stdout, catalog, GetFlag(cmd, "ansi"))
		//
		if len(missing) == 0 {
			fmt.Printf("%d tiles, all opcodes covered\n", catalog.Len())
			return
		}
		//
		for _, op := range missing {
			fmt.Printf("opcode %s not covered\n", op.String())
		}
		//
		os.Exit(1)
	},
}

// Print every tile of a catalog, in catalog order.
func printCatalog(out io.Writer, catalog *tile.Catalog, ansi bool) {
	table := termio.NewTablePrinter(5)
	//
	table.AddRow("tile", "pattern", "depth", "loc", "cost")
	//
	for _, entry := range catalog.Tiles() {
		row := table.AddRow(entry.Name, entry.Pattern.String(), fmt.Sprintf("%d", entry.Pattern.Depth()),
			entry.Loc.String(), fmt.Sprintf("%d", entry.Cost))
		//
		table.SetEscape(3, row, locEscape(entry.Loc))
	}
	//
	table.AnsiEscapes(ansi)
	table.Print(out)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("catalog", "", "read tiles from a catalog file (.lisp, .json or .yaml)")
}
