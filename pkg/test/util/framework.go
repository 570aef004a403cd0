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
package util

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/consensys/go-isel/pkg/dag"
	"github.com/consensys/go-isel/pkg/ir"
	"github.com/consensys/go-isel/pkg/selector"
	"github.com/consensys/go-isel/pkg/tile"
	"github.com/consensys/go-isel/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the programs (ir) and any corresponding catalogs (lisp) are found.
const TestDir = "../../testdata"

// Options configuring how test programs are built.
type Options struct {
	Strict bool
	Reuse  bool
}

// Select parses, builds and performs selection over a given program source
// file.  Every error encountered is reported as a syntax error against the
// program text where possible.
func Select(srcfile *source.File, catalog *tile.Catalog, options Options) (*selector.Result, []source.SyntaxError) {
	var buildOptions []dag.BuildOption
	//
	program, srcmap, errs := ir.Parse(srcfile)
	//
	if len(errs) > 0 {
		return nil, errs
	} else if options.Strict {
		buildOptions = append(buildOptions, dag.WithImplicitLeaves(false))
	}
	//
	if options.Reuse {
		buildOptions = append(buildOptions, dag.WithRebindPolicy(dag.RebindReuse))
	}
	//
	graph, err := dag.Build(program, buildOptions...)
	if err != nil {
		return nil, toSyntaxErrors(srcfile, program, srcmap, err)
	}
	//
	root, ok := graph.Root()
	if !ok {
		return nil, []source.SyntaxError{*srcfile.SyntaxError(source.NewSpan(0, 0), "program defines no values")}
	}
	//
	result, err := selector.Select(graph, root, catalog)
	if err != nil {
		return nil, toSyntaxErrors(srcfile, program, srcmap, err)
	}
	//
	return result, nil
}

// Convert an error into a syntax error spanning the instruction responsible.
// Declared inputs and implicit leaves are reported at the start of the file.
func toSyntaxErrors(srcfile *source.File, program ir.Program, srcmap *source.Map[uint], err error) []source.SyntaxError {
	var (
		index   = uint(len(program.Instructions))
		nocover *selector.NoCoverError
		indexed interface{ Index() uint }
	)
	//
	if errors.As(err, &indexed) {
		index = indexed.Index()
	} else if errors.As(err, &nocover) {
		if i, ok := program.Definition(nocover.Name()); ok {
			index = i
		}
	}
	//
	if srcmap.Has(index) {
		return []source.SyntaxError{*srcmap.SyntaxError(index, err.Error())}
	}
	//
	return []source.SyntaxError{*srcfile.SyntaxError(source.NewSpan(0, 0), err.Error())}
}

// ReadCatalog reads the catalog accompanying a given test, or returns the
// default catalog if there is none.
func ReadCatalog(t *testing.T, test string) *tile.Catalog {
	var filename = fmt.Sprintf("%s/%s.lisp", TestDir, test)
	//
	if _, err := os.Stat(filename); err != nil {
		return tile.DefaultCatalog()
	}
	//
	catalog, errs, err := tile.ReadCatalogFile(filename)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	for _, err := range errs {
		t.Error(errorToString(err))
	}
	//
	if len(errs) > 0 {
		t.FailNow()
	}
	//
	return catalog
}

func readSourceFile(t *testing.T, filename string) *source.File {
	srcfile, err := source.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	//
	return srcfile
}

// Convert a span into a useful human readable string.
func errorToString(err source.SyntaxError) string {
	span := err.Span()
	line := err.EnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length())
	// Print error + line number
	return fmt.Sprintf("%s:%d:%d-%d %s", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
}
