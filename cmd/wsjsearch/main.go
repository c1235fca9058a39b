// Command wsjsearch wraps the index library with the three subcommands
// named by spec §6: parse, index, search. The library (package index, at
// the module root) does all the real work; this package is scaffolding —
// flag parsing, exit codes, and file-system plumbing around it.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes per spec §6.
const (
	exitOK             = 0
	exitMalformedInput = 1
	exitCorruptIndex   = 2
	exitIOError        = 3
)

func main() {
	root := newRootCommand()
	root.SilenceUsage = true
	root.SilenceErrors = true
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCodeFor(err))
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "wsjsearch",
		Short: "Build and query a TF-IDF inverted index over a WSJ-style news corpus",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindViperFlags(cmd); err != nil {
				return err
			}
			initLogger()
			return nil
		},
	}

	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().String("config", "", "optional config file (yaml/json/toml), see WSJSEARCH_ env vars")

	root.AddCommand(newParseCommand())
	root.AddCommand(newIndexCommand())
	root.AddCommand(newSearchCommand())
	return root
}

// bindViperFlags wires cmd's flags into viper, with WSJSEARCH_ environment
// variable overrides, following the config layer described for the CLI
// (index directory, shard count, result limit from env/flags). A flag's
// env var is WSJSEARCH_ plus its name upper-cased with '-' turned into '_'
// (output-dir -> WSJSEARCH_OUTPUT_DIR).
// Every subcommand flag is read back through viper.GetString/GetInt in its
// RunE, never captured into a bound Go variable, so a config file or
// WSJSEARCH_ env var can override it exactly like a flag — the same
// pattern log-level uses for initLogger, which runs right after this.
func bindViperFlags(cmd *cobra.Command) error {
	viper.SetEnvPrefix("WSJSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}
	return viper.BindPFlags(cmd.Flags())
}

// requiredString reads key (a flag name, e.g. "output-dir") back through
// viper, after bindViperFlags has merged flag/env/config-file values, and
// fails with the spec §6 "malformed input" exit code if it is still unset.
// Required flags are validated here rather than via cobra's
// MarkFlagRequired, which checks only whether the literal command-line
// flag was passed and would reject a value supplied purely through
// WSJSEARCH_ env vars or a config file.
func requiredString(key string) (string, error) {
	v := viper.GetString(key)
	if v == "" {
		envVar := "WSJSEARCH_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		return "", &cliError{code: exitMalformedInput, err: fmt.Errorf(
			"required value missing: pass --%s, set %s, or set it in --config", key, envVar)}
	}
	return v, nil
}

func initLogger() {
	levelStr := viper.GetString("log-level")
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// cliError pairs an error with the exit code its origin maps to (spec §6).
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	if ce, ok := err.(*cliError); ok {
		return ce.code
	}
	return exitIOError
}
