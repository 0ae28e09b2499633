/*
   Copyright 2025 The DIRPX Authors

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

package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dirpx.dev/dxbook/dxcore/storage"
	"dirpx.dev/dxbook/internal/config"
)

func (a *app) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the address book file if it does not exist",
		Long: `Create an empty address book at the configured data file. An existing
book is left untouched and only reported.

Examples:
  dxbook init
  dxbook --data-file team.yaml init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.store("")
			book, err := s.LoadOrCreate(cmd.Context())
			if err != nil {
				return err
			}
			a.success("%s: %d persons, %d groups", s.Path(), book.Len(), len(book.Groups()))
			return nil
		},
	}
}

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check an address book file for integrity problems",
		Long: `Load an address book and report the first integrity problem found:
invalid or missing fields, duplicate persons or groups, and references to
persons or groups that do not exist.

FILE defaults to the configured data file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			s := a.store(path)
			book, err := s.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", s.Path(), err)
			}
			a.success("%s: %d persons, %d groups", s.Path(), book.Len(), len(book.Groups()))
			return nil
		},
	}
}

func (a *app) exportCommand() *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the address book as JSON or YAML",
		Long: `Write the address book to stdout or a file.

Examples:
  dxbook export --format yaml
  dxbook export --format json --output backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := storage.CodecByName(format)
			if err != nil {
				return err
			}
			book, err := a.store("").Load(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" {
				return storage.Export(a.stdout, book, codec)
			}
			var buf bytes.Buffer
			if err := storage.Export(&buf, book, codec); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil { //nolint:gosec // export is meant to be shared
				return fmt.Errorf("writing export: %w", err)
			}
			a.success("Exported %d persons to %s", book.Len(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the dxbook configuration",
		RunE:  requireSubcommand,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [FILE]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := config.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			a.success("Wrote %s", path)
			return nil
		},
	})
	return cmd
}
