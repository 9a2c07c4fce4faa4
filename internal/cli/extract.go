package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rubyfactor/pkg/refactor"
	"rubyfactor/pkg/types"
)

// extractLetOpts holds the command-line flags for "extract let".
type extractLetOpts struct {
	point       int  // byte offset of the cursor
	line        int  // 1-based line, alternative to point
	regionStart int  // region start offset
	regionEnd   int  // region end offset
	invert      bool // flip the configured placement mode
	dryRun      bool // print instead of writing
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract code into a let binding or a new method",
	}
	cmd.AddCommand(newExtractLetCmd())
	cmd.AddCommand(newExtractMethodCmd())
	return cmd
}

func newExtractLetCmd() *cobra.Command {
	opts := extractLetOpts{regionStart: -1, regionEnd: -1}

	cmd := &cobra.Command{
		Use:   "let <file>",
		Short: "Extract an assignment into a let binding",
		Long: `Extract an assignment into a let binding placed after an anchor line
(describe/context by default).

The target is the line under --point or --line, or the region given by
--region-start/--region-end. A region becomes a multi-line let block.

Examples:
  rubyfactor extract let spec/widget_spec.rb --line 12
  rubyfactor extract let spec/widget_spec.rb --point 248 --invert
  rubyfactor extract let spec/widget_spec.rb --region-start 120 --region-end 190`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			eng := refactor.NewEngineWithConfig(configFromContext(c.Context()))
			doc, err := eng.Open(args[0])
			if err != nil {
				return err
			}

			req := types.ExtractLetRequest{Point: opts.point, Invert: opts.invert}
			if opts.line > 0 {
				if opts.line > doc.Buffer.LineCount() {
					return fmt.Errorf("line %d outside %s (%d lines)", opts.line, args[0], doc.Buffer.LineCount())
				}
				req.Point = doc.Buffer.LineOffset(opts.line)
			}
			if opts.regionStart >= 0 || opts.regionEnd >= 0 {
				if opts.regionStart < 0 || opts.regionEnd < 0 {
					return fmt.Errorf("--region-start and --region-end must be given together")
				}
				req.Span = types.Span{Start: opts.regionStart, End: opts.regionEnd}
				req.HasRegion = true
			}

			res, err := eng.ExtractLet(doc, req)
			if err != nil {
				return err
			}
			return finish(c, eng, doc, res, opts.dryRun)
		},
	}

	cmd.Flags().IntVar(&opts.point, "point", 0, "byte offset of the cursor")
	cmd.Flags().IntVarP(&opts.line, "line", "l", 0, "line of the assignment (1-based, overrides --point)")
	cmd.Flags().IntVar(&opts.regionStart, "region-start", -1, "byte offset where the region begins")
	cmd.Flags().IntVar(&opts.regionEnd, "region-end", -1, "byte offset where the region ends")
	cmd.Flags().BoolVar(&opts.invert, "invert", false, "use the opposite of the configured placement mode")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "print the result instead of writing the file")

	return cmd
}

func newExtractMethodCmd() *cobra.Command {
	var (
		startLine int
		endLine   int
		arguments string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "method <file> <name>",
		Short: "Extract a range of lines into a new method",
		Long: `Extract the lines between --start-line and --end-line into a new
method named <name>, inserted above the enclosing definition. The
lines are replaced by a call.

Examples:
  rubyfactor extract method lib/calculator.rb parts --start-line 12 --end-line 14
  rubyfactor extract method lib/calculator.rb scaled --start-line 8 --end-line 8 --args factor`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			eng := refactor.NewEngineWithConfig(configFromContext(c.Context()))
			doc, err := eng.Open(args[0])
			if err != nil {
				return err
			}
			res, err := eng.ExtractMethod(doc, types.ExtractMethodRequest{
				StartLine:     startLine,
				EndLine:       endLine,
				NewMethodName: args[1],
				Arguments:     arguments,
			})
			if err != nil {
				return err
			}
			return finish(c, eng, doc, res, dryRun)
		},
	}

	cmd.Flags().IntVar(&startLine, "start-line", 0, "first line of the block to extract (1-based)")
	cmd.Flags().IntVar(&endLine, "end-line", 0, "last line of the block to extract")
	cmd.Flags().StringVar(&arguments, "args", "", "comma-separated argument list for the new method")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the result instead of writing the file")
	_ = cmd.MarkFlagRequired("start-line")
	_ = cmd.MarkFlagRequired("end-line")

	return cmd
}

// finish writes the transformed document back (or prints it for a dry
// run) and logs the outcome.
func finish(c *cobra.Command, eng *refactor.Engine, doc *refactor.Document, res *types.Result, dryRun bool) error {
	logger := loggerFromContext(c.Context())
	if res.NoOp {
		logger.Info("nothing to do", "file", doc.Path)
		return nil
	}
	if dryRun {
		fmt.Fprint(c.OutOrStdout(), doc.Buffer.String())
		logger.Info("dry run, file not written", "file", doc.Path)
		return nil
	}
	if err := eng.Save(doc); err != nil {
		return err
	}
	logger.Info(res.Description, "file", doc.Path)
	return nil
}
