/*
Copyright © 2025 The tolmach authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	lingua "github.com/pemistahl/lingua-go"
	"github.com/spf13/cobra"

	"github.com/perelab/tolmach/internal/langname"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List languages available for detection",
	Long: `List the languages the source-language detector recognizes, with the
ISO 639-1 codes accepted by the --source and --target flags.

Translation itself is limited only by the chosen model; this list covers
what --source auto can detect.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		codes := make([]string, 0, len(lingua.AllLanguages()))
		for _, lang := range lingua.AllLanguages() {
			codes = append(codes, strings.ToLower(lang.IsoCode639_1().String()))
		}
		sort.Strings(codes)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tLANGUAGE")
		for _, code := range codes {
			fmt.Fprintf(w, "%s\t%s\n", code, langname.Name(code))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
