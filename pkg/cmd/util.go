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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-isel/pkg/dag"
	"github.com/consensys/go-isel/pkg/ir"
	"github.com/consensys/go-isel/pkg/selector"
	"github.com/consensys/go-isel/pkg/tile"
	"github.com/consensys/go-isel/pkg/util"
	"github.com/consensys/go-isel/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// ReadCatalog reads the catalog named by the "catalog" flag or, if none is
// given, returns the default catalog.
func ReadCatalog(cmd *cobra.Command) *tile.Catalog {
	filename := GetString(cmd, "catalog")
	//
	if filename == "" {
		return tile.DefaultCatalog()
	}
	//
	log.Debug(fmt.Sprintf("reading catalog %s", filename))
	//
	catalog, errs, err := tile.ReadCatalogFile(filename)
	// Handle errors
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	} else if len(errs) > 0 {
		for _, err := range errs {
			printSyntaxError(&err)
		}
		// Fail
		os.Exit(4)
	}
	//
	return catalog
}

// ReadProgram reads and parses a program file, reporting any syntax errors.
func ReadProgram(filename string) (ir.Program, *source.Map[uint]) {
	log.Debug(fmt.Sprintf("reading program %s", filename))
	//
	srcfile, err := source.ReadFile(filename)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	program, srcmap, errs := ir.Parse(srcfile)
	//
	if len(errs) == 0 {
		return program, srcmap
	}
	// Report errors
	for _, err := range errs {
		printSyntaxError(&err)
	}
	// Fail
	os.Exit(4)
	// unreachable
	return program, srcmap
}

// SelectProgram reads a program, builds its value graph and performs selection
// from the root chosen via the "root" flag (or the last definition otherwise).
func SelectProgram(cmd *cobra.Command, filename string) *selector.Result {
	var (
		stats   = util.NewPerfStats()
		options []dag.BuildOption
	)
	//
	program, srcmap := ReadProgram(filename)
	//
	if GetFlag(cmd, "strict") {
		options = append(options, dag.WithImplicitLeaves(false))
	}
	//
	if GetFlag(cmd, "reuse") {
		options = append(options, dag.WithRebindPolicy(dag.RebindReuse))
	}
	//
	graph, err := dag.Build(program, options...)
	if err != nil {
		reportError(err, program, srcmap)
	}
	//
	stats.Log("Building value graph")
	root := selectRoot(cmd, graph)
	catalog := ReadCatalog(cmd)
	stats = util.NewPerfStats()
	//
	result, err := selector.Select(graph, root, catalog)
	if err != nil {
		reportError(err, program, srcmap)
	}
	//
	stats.Log("Selecting tiles")
	//
	return result
}

func selectRoot(cmd *cobra.Command, graph *dag.Graph) dag.NodeId {
	if name := GetString(cmd, "root"); name != "" {
		if id, ok := graph.Lookup(name); ok {
			return id
		}
		//
		fmt.Printf("unknown root \"%s\"\n", name)
		os.Exit(2)
	}
	//
	root, ok := graph.Root()
	if !ok {
		fmt.Println("program defines no values")
		os.Exit(5)
	}
	//
	return root
}

// Report a construction or selection error, highlighting the offending
// instruction where possible.
func reportError(err error, program ir.Program, srcmap *source.Map[uint]) {
	if serr := locateError(err, program, srcmap); serr != nil {
		printSyntaxError(serr)
	} else {
		fmt.Println(err)
	}
	//
	os.Exit(5)
}

// Locate the instruction responsible for a given error.  Errors raised by the
// builder carry an instruction index, whilst an uncovered node is traced back
// to the instruction defining it.  Otherwise, nil is returned.
func locateError(err error, program ir.Program, srcmap *source.Map[uint]) *source.SyntaxError {
	var (
		nocover *selector.NoCoverError
		indexed interface{ Index() uint }
	)
	//
	if errors.As(err, &indexed) && srcmap.Has(indexed.Index()) {
		return srcmap.SyntaxError(indexed.Index(), err.Error())
	} else if errors.As(err, &nocover) {
		if index, ok := program.Definition(nocover.Name()); ok && srcmap.Has(index) {
			return srcmap.SyntaxError(index, err.Error())
		}
	}
	//
	return nil
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.EnclosingLine()
	lineOffset := max(0, span.Start()-line.Start())
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}
