package cli

import (
	"github.com/spf13/cobra"

	"rubyfactor/pkg/refactor"
	"rubyfactor/pkg/types"
)

func newAddParameterCmd() *cobra.Command {
	var (
		line   int
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "add-parameter <file> <parameter>",
		Short: "Add a parameter to a method definition",
		Long: `Append <parameter> to the method definition enclosing --line.
Whether the argument list is wrapped in parentheses follows the
add_parens setting; an existing list keeps its style. Adding an
already-present parameter is a no-op.

Example:
  rubyfactor add-parameter lib/worker.rb filter --line 14`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			eng := refactor.NewEngineWithConfig(configFromContext(c.Context()))
			doc, err := eng.Open(args[0])
			if err != nil {
				return err
			}
			res, err := eng.AddParameter(doc, types.AddParameterRequest{
				Line:      line,
				Parameter: args[1],
			})
			if err != nil {
				return err
			}
			return finish(c, eng, doc, res, dryRun)
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 0, "a line inside the method body (1-based)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the result instead of writing the file")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}
