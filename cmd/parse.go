package cmd

import (
	"errors"
	"fmt"
	"strings"

	"cdecl-stream/pkg/ast"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "List the declarations found in preprocessed C files",
	Long: `Parse preprocessed C files and list every declaration found: compound types
(reported once when the tag is seen and again with the body), their members,
typedefs, functions, variables, static locals and initializer statements.
Files are parsed concurrently; output follows the order of the arguments.
With no file, or "-", standard input is read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{stdinName}
		}

		opts, err := runOptionsFromFlags(cmd)
		if err != nil {
			return err
		}
		kinds, err := parseKinds(mustGetString(cmd, "kind"))
		if err != nil {
			return err
		}
		merge := cfg.Output.Merge
		if cmd.Flags().Changed("merge") {
			merge, _ = cmd.Flags().GetBool("merge")
		}
		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format = mustGetString(cmd, "format")
		}

		results := parseFiles(cmd.Context(), args, opts)
		for i := range results {
			if merge {
				results[i].items = ast.Merge(results[i].items)
			}
			results[i].items = ast.FilterKinds(results[i].items, kinds...)
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(format) {
		case "json":
			err = outputJSON(out, results)
		case "yaml":
			err = outputYAML(out, results)
		case "human":
			err = outputHuman(out, results)
		default:
			return fmt.Errorf("unknown output format %q", format)
		}
		if err != nil {
			return err
		}

		if path := mustGetString(cmd, "metrics-file"); path != "" {
			if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
		}

		var errs []error
		for _, res := range results {
			if res.err != nil {
				errs = append(errs, res.err)
			}
		}
		return errors.Join(errs...)
	},
}

func init() {
	parseCmd.Flags().StringP("format", "f", "human", "Output format (human, json, yaml)")
	parseCmd.Flags().BoolP("merge", "m", false, "Report each compound type once")
	parseCmd.Flags().StringP("kind", "k", "", "Only report these kinds (comma separated, e.g. struct,function)")
	addRunFlags(parseCmd)
	parseCmd.Flags().IntP("jobs", "j", 4, "Number of files parsed concurrently")
	parseCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file when done")
}

// addRunFlags registers the flags shared by commands that parse input
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("raw", false, "Do not interpret # line markers")
	cmd.Flags().Int("max-text", 0, "Maximum buffered text per construct (0 disables, default from config)")
	cmd.Flags().Int("max-lines", 0, "Maximum lines per construct (0 disables, default from config)")
}

func runOptionsFromFlags(cmd *cobra.Command) (runOptions, error) {
	opts := runOptions{stdin: cmd.InOrStdin(), jobs: 1}
	opts.raw, _ = cmd.Flags().GetBool("raw")
	if cmd.Flags().Changed("max-text") {
		v, _ := cmd.Flags().GetInt("max-text")
		opts.maxText = &v
	}
	if cmd.Flags().Changed("max-lines") {
		v, _ := cmd.Flags().GetInt("max-lines")
		opts.maxLines = &v
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil {
		jobs, _ := cmd.Flags().GetInt("jobs")
		if jobs < 1 {
			return opts, fmt.Errorf("--jobs must be at least 1, got %d", jobs)
		}
		opts.jobs = jobs
	}
	return opts, nil
}

func parseKinds(list string) ([]ast.Kind, error) {
	var kinds []ast.Kind
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		k, err := ast.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func mustGetString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
