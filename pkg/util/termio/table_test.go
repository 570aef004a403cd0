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
package termio

import (
	"bytes"
	"testing"

	"github.com/consensys/go-isel/pkg/util/assert"
)

func Test_Table_00(t *testing.T) {
	table := NewTablePrinter(2)
	table.AddRow("name", "x")
	table.AddRow("a", "long")
	//
	assert.Equal(t, 2, table.Height())
	assert.Equal(t, "long", table.Get(1, 1))
	assert.Equal(t, " name | x    |\n a    | long |\n", render(table, false))
}

func Test_Table_01(t *testing.T) {
	table := NewTablePrinter(1)
	table.AddRow("abcdefgh")
	table.SetMaxWidth(0, 5)
	//
	assert.Equal(t, " abc.. |\n", render(table, false))
}

func Test_Table_02(t *testing.T) {
	table := NewTablePrinter(1)
	row := table.AddRow("dsp")
	table.SetEscape(0, row, NewAnsiEscape().FgColour(TERM_GREEN))
	//
	assert.Equal(t, " dsp |\n", render(table, false))
	assert.Equal(t, "\033[32m dsp\033[0m |\n", render(table, true))
}

func Test_Escape_00(t *testing.T) {
	assert.Equal(t, "\033[0m", ResetAnsiEscape().Build())
	assert.Equal(t, "\033[31m", NewAnsiEscape().FgColour(TERM_RED).Build())
	assert.Equal(t, "\033[1;36;44m", BoldAnsiEscape().FgColour(TERM_CYAN).BgColour(TERM_BLUE).Build())
}

// ===================================================================
// Test Helpers
// ===================================================================

func render(table *TablePrinter, ansi bool) string {
	var buf bytes.Buffer
	//
	table.AnsiEscapes(ansi)
	table.Print(&buf)
	//
	return buf.String()
}
