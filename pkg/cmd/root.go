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
	"os"
	"runtime/debug"

	"github.com/consensys/go-isel/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set by the linker (-ldflags "-X ...Version=..."), and is empty
// otherwise.
var Version string

var rootCmd = &cobra.Command{
	Use:   "isel",
	Short: "A cost-based instruction selector.",
	Long:  "Select minimum-cost tiles for three-address programs, targeting generic, LUT and DSP resources.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !GetFlag(cmd, "version") {
			_ = cmd.Help()
			return
		}
		//
		var module string
		//
		if info, ok := debug.ReadBuildInfo(); ok {
			module = info.Main.Version
		}
		//
		fmt.Println(versionString(Version, module))
	},
}

// Determine the reported version, preferring one set at link time over the
// module version recorded by "go install".
func versionString(linked string, module string) string {
	switch {
	case linked != "":
		return "isel " + linked
	case module != "" && module != "(devel)":
		return "isel " + module
	default:
		return "isel (unknown version)"
	}
}

// Execute runs the root command, exiting with status 1 when cobra itself
// fails (e.g. an unknown command or flag).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("ansi", termio.IsTerminal(), "use ANSI escapes when printing")
}
