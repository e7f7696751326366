package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cdecl-stream/pkg/config"

	"github.com/spf13/cobra"
)

// Version information
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cfg is the configuration resolved before any command runs
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "cdecl-stream",
	Short: "A streaming recognizer of C top-level declarations",
	Long: `cdecl-stream reads preprocessed C source and reports the declarations it
contains (structs, unions, enums, typedefs, functions, variables and their
members) as a flat stream, without building a full syntax tree.
Function bodies are skipped except for static locals and inline types.`,
	Version:           getVersionString(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cdecl-stream %s\n", getVersionString())
		fmt.Fprintf(out, "  Version: %s\n", version)
		fmt.Fprintf(out, "  Commit:  %s\n", commit)
		fmt.Fprintf(out, "  Date:    %s\n", date)
	},
}

func getVersionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return version
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration file, applies the logging flags and
// installs the default logger
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func newLogger(lc config.Log) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(lc.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", lc.Format)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(declsCmd)
	rootCmd.AddCommand(versionCmd)
}
