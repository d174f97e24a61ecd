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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"github.com/purple-lang/purple"
	"github.com/purple-lang/purple/reporter"
	"github.com/purple-lang/purple/symbols"
)

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]...",
		Short: "Compile a project and report every error",
		Long: `Compiles the given files, or every source of the project, and reports
all errors with the offending source line. Files are relative to the
directory of the project file.

Examples:
  purplec check
  purplec --config build/purple.toml check src/main.purple`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := opts.compile(cmd, args, nil)
			return err
		},
	}
}

func newSymbolsCommand(opts *options) *cobra.Command {
	var refs bool
	cmd := &cobra.Command{
		Use:   "symbols [file]...",
		Short: "Print the definitions and calls of a project",
		Long: `Compiles the given files, or every source of the project, and prints
their top-level definitions ordered by name. With --refs, every call is
printed as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := &symbols.Table{}
			if _, err := opts.compile(cmd, args, table); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for def := range table.Definitions() {
				module := def.Module
				if module == "" {
					module = "-"
				}
				fmt.Fprintf(out, "%-8s %-20s %-12s %v\n", def.Kind, def.Name, module, def.Pos)
			}
			if !refs {
				return nil
			}
			for ref := range table.References() {
				fmt.Fprintf(out, "%-8s %-20s %-12s %v\n", "call", ref.Name, "-", ref.Pos)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refs, "refs", false, "also print every call")
	return cmd
}

// compile compiles the given files, or all configured sources, rendering
// every error to the command's error stream.
func (o *options) compile(cmd *cobra.Command, args []string, table *symbols.Table) ([]*purple.Result, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	files, err := sourceFiles(cfg, args)
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		errs []reporter.ErrorWithPos
	)
	comp := cfg.Compiler()
	comp.Symbols = table
	comp.Reporter = reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			mu.Lock()
			defer mu.Unlock()
			errs = append(errs, err)
			return nil
		},
		func(err reporter.ErrorWithPos) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		},
	)
	if o.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "compiling %d files from %s\n", len(files), cfg.Root)
	}

	results, err := comp.Compile(context.Background(), files...)
	if len(errs) == 0 {
		if err == nil && o.verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d files ok\n", len(results))
		}
		return results, err
	}

	// Units compile concurrently, so order errors by position.
	sort.Slice(errs, func(i, j int) bool {
		a, b := errs[i].GetPosition(), errs[j].GetPosition()
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Offset < b.Offset
	})
	for _, e := range errs {
		src, _ := os.ReadFile(filepath.Join(cfg.Root, e.GetPosition().Filename))
		_ = reporter.Render(cmd.ErrOrStderr(), e, src)
	}
	cmd.SilenceErrors = true
	return nil, fmt.Errorf("%d errors in %d files", len(errs), len(files))
}
