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
	"testing"
)

// CheckValid checks that selection over a given test program succeeds, and
// matches every expectation given at the start of the file.  The catalog used
// is the one accompanying the test, if any, or the default catalog.
func CheckValid(t *testing.T, test string, options Options) {
	var filename = fmt.Sprintf("%s/%s.ir", TestDir, test)
	// Enable testing each program in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	catalog := ReadCatalog(t, test)
	expected, errs := ExtractAttributes(srcfile, extractSelection)
	//
	if len(errs) > 0 {
		// Report any errors encountered parsing the attributes themselves.
		t.Fatal(errors.Join(errs...))
	} else if len(expected) == 0 {
		t.Fatalf("%s has no expectations", filename)
	}
	//
	result, serrs := Select(srcfile, catalog, options)
	//
	for _, err := range serrs {
		t.Error(errorToString(err))
	}
	//
	if len(serrs) > 0 {
		t.FailNow()
	}
	//
	for _, e := range expected {
		if e.Name == "" {
			if actual := result.TotalCost(); actual != e.Cost {
				t.Errorf("%s: expected %s, got total %d", filename, e.String(), actual)
			}
			//
			continue
		}
		//
		annotation, ok := result.Lookup(e.Name)
		//
		if !ok {
			t.Errorf("%s: expected %s, but not selected", filename, e.String())
		} else if annotation.Tile.Name != e.Tile || annotation.Loc != e.Loc || annotation.Cost != e.Cost {
			t.Errorf("%s: expected %s, got %s@%s:%d", filename, e.String(), annotation.Tile.Name,
				annotation.Loc.String(), annotation.Cost)
		}
	}
}
