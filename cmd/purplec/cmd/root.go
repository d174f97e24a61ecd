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

// Package cmd implements the purplec subcommands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/purple-lang/purple"
)

// DefaultConfigFile is the project file used when --config is not given.
const DefaultConfigFile = "purple.toml"

type options struct {
	configFile string
	verbose    bool
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand returns the purplec command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "purplec",
		Short: "Inspect and check Purple sources",
		Long: `purplec runs the Purple front end and prints what each phase produces.

Commands:
  tokens   - raw and regularized token streams of a file
  parse    - syntax trees of files
  check    - compile every source of a project and report errors
  symbols  - index of the definitions and calls of a project`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "project file (default: ./"+DefaultConfigFile+" if present)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "print every regularizer stage and compile progress")

	root.AddCommand(
		newTokensCommand(opts),
		newParseCommand(opts),
		newCheckCommand(opts),
		newSymbolsCommand(opts),
	)
	return root
}

// loadConfig reads the project file named by --config. Without the flag,
// ./purple.toml is used when it exists and the defaults otherwise.
func (o *options) loadConfig() (*purple.Config, error) {
	path := o.configFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); errors.Is(err, fs.ErrNotExist) {
			return &purple.Config{Sources: []string{purple.DefaultSources}, Root: "."}, nil
		}
		path = DefaultConfigFile
	}
	cfg, err := purple.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// sourceFiles returns the given files, or every configured source when
// none are given.
func sourceFiles(cfg *purple.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	files, err := cfg.Files(os.DirFS(cfg.Root))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no sources match %v in %s", cfg.Sources, cfg.Root)
	}
	return files, nil
}
