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

// Package cli implements the dxbook command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/dxbook/dxcore/model/field"
	"dirpx.dev/dxbook/dxcore/storage"
	"dirpx.dev/dxbook/internal/config"
	"dirpx.dev/dxbook/internal/logger"
	"dirpx.dev/dxbook/internal/style"
)

// Version is set at build time.
var Version = "dev"

// app carries the state shared by all commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	rule    field.EmailRule
	log     *slog.Logger
}

// NewRootCommand builds the dxbook command tree writing to the given
// streams.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, v: viper.New()}

	root := &cobra.Command{
		Use:   "dxbook",
		Short: "Manage persons and groups in an address book",
		Long: `dxbook keeps an address book of persons and the groups they belong to.

Arguments are given with prefixes:
  n/NAME     person name
  e/EMAIL    person email
  g/GROUP    group a person belongs to (repeatable)
  gn/GROUP   group name
  r/LINK     group repository link

Examples:
  dxbook person add n/Alice Pauline e/e1234567 g/CS2103
  dxbook group add gn/CS2103 r/https://github.com/org/tp
  dxbook group assign n/Alice Pauline gn/CS2103
  dxbook validate`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./"+config.DefaultFileName+")")
	flags.String("data-file", "", "address book file, .json or .yaml")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("email-rule", "", "email rule: legacy or address")
	_ = a.v.BindPFlag(config.KeyDataFile, flags.Lookup("data-file"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyEmailRule, flags.Lookup("email-rule"))

	root.AddCommand(
		a.initCommand(),
		a.personCommand(),
		a.groupCommand(),
		a.validateCommand(),
		a.exportCommand(),
		a.configCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s %s\n", style.ErrorPrefix, err)
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	rule, err := cfg.Rule()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.rule = rule
	a.log = logger.Setup(cfg.LogLevel, a.stderr)
	a.log.Debug("configuration loaded", "config", a.v.ConfigFileUsed(), "data_file", cfg.DataFile)
	return nil
}

// store opens path, or the configured data file when path is empty.
func (a *app) store(path string) *storage.FileStorage {
	if path == "" {
		path = a.cfg.DataFile
	}
	return storage.NewFileStorage(path,
		storage.WithLogger(a.log),
		storage.WithLockTimeout(a.cfg.LockTimeout),
		storage.WithDecodeOptions(storage.WithEmailRule(a.rule)),
	)
}

// verbose reports whether full records, personal data included, may be
// logged.
func (a *app) verbose(cmd *cobra.Command) bool {
	return a.log.Enabled(cmd.Context(), slog.LevelDebug)
}

func (a *app) success(format string, args ...any) {
	fmt.Fprintf(a.stdout, "%s %s\n", style.SuccessPrefix, fmt.Sprintf(format, args...))
}

func (a *app) warn(format string, args ...any) {
	fmt.Fprintf(a.stdout, "%s %s\n", style.WarningPrefix, fmt.Sprintf(format, args...))
}

// joinArgs undoes the shell's word splitting of prefixed arguments.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

func requireSubcommand(cmd *cobra.Command, _ []string) error {
	return fmt.Errorf("%s requires a subcommand, see '%s --help'", cmd.Name(), cmd.CommandPath())
}
