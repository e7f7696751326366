package cmd

import (
	"fmt"
	"os"

	"cdecl-stream/pkg/formatter"

	"github.com/spf13/cobra"
)

var declsCmd = &cobra.Command{
	Use:   "decls [file]",
	Short: "Print normalized C declarations",
	Long: `Parse a preprocessed C file and print one normalized declaration per
file scope item. Anonymous types are written inline where they are used and
function bodies are dropped, which gives a compact view of the interface a
translation unit declares.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := stdinName
		if len(args) == 1 {
			filename = args[0]
		}

		opts, err := runOptionsFromFlags(cmd)
		if err != nil {
			return err
		}
		res := parseFile(cmd.Context(), filename, opts)
		if res.err != nil {
			return res.err
		}

		f := formatter.New()
		decls := f.Declarations(res.items)

		out := cmd.OutOrStdout()
		useClang, _ := cmd.Flags().GetBool("clang-format")
		if useClang {
			formatted, err := f.FormatWithClang(decls)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: clang-format failed: %v\n", err)
				fmt.Fprint(out, decls)
			} else {
				fmt.Fprint(out, formatted)
			}
		} else {
			fmt.Fprint(out, decls)
		}

		return nil
	},
}

func init() {
	declsCmd.Flags().BoolP("clang-format", "c", false, "Apply clang-format to the output")
	addRunFlags(declsCmd)
}
