// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/purple-lang/purple/ast"
	"github.com/purple-lang/purple/parser"
	"github.com/purple-lang/purple/reporter"
	"github.com/purple-lang/purple/token"
)

func newTokensCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the raw and regularized token streams of a file",
		Long: `Prints the token stream of a file as scanned and after regularization.
With --verbose, the stream is printed after every regularizer pass.

Examples:
  purplec tokens main.purple
  purplec tokens -v main.purple`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tokens, err := parser.Tokenize(args[0], bytes.NewReader(src))
			if err != nil {
				return renderFailure(cmd, err, src)
			}
			fmt.Fprintf(out, "%-10s %s\n", "raw", token.Detokenize(tokens))

			var trace func(string, []token.Token)
			if opts.verbose {
				trace = func(pass string, tokens []token.Token) {
					fmt.Fprintf(out, "%-10s %s\n", pass, token.Detokenize(tokens))
				}
			}
			tokens, err = parser.RegularizeTrace(tokens, trace)
			if err != nil {
				return renderFailure(cmd, err, src)
			}
			fmt.Fprintf(out, "%-10s %s\n", "regular", token.Detokenize(tokens))
			return nil
		},
	}
}

func newParseCommand(opts *options) *cobra.Command {
	var (
		asYAML    bool
		positions bool
	)
	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Print the syntax trees of files",
		Long: `Parses files and prints each top-level statement as an S-expression,
one per line, or the whole tree as YAML.

Examples:
  purplec parse main.purple
  purplec parse --yaml --positions main.purple`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, file := range args {
				src, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				script, err := parser.ParseSource(file, bytes.NewReader(src))
				if err != nil {
					return renderFailure(cmd, err, src)
				}
				if len(args) > 1 || opts.verbose {
					fmt.Fprintf(out, "# %s\n", file)
				}
				if asYAML {
					if err := ast.Dump(out, script, positions); err != nil {
						return err
					}
					continue
				}
				for _, stmt := range script.Statements {
					fmt.Fprintln(out, ast.Format(stmt))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the syntax tree as YAML")
	cmd.Flags().BoolVar(&positions, "positions", false, "include source positions in YAML output")
	return cmd
}

// renderFailure prints err with the offending source line to the command's
// error stream. The error is returned so the command still fails, but
// cobra does not print it a second time.
func renderFailure(cmd *cobra.Command, err error, src []byte) error {
	cmd.SilenceErrors = true
	_ = reporter.Render(cmd.ErrOrStderr(), err, src)
	return err
}
