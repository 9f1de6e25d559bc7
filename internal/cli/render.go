package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reactive-kit/gears/internal/ltl"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Dialect string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <tree-file>",
		Short: "Render a stored formula tree into a dialect",
		Long: `Render a formula tree (the JSON tree form produced by ltl.MarshalTree)
into one of the supported dialects: gr1c, jtlv, smv, promela, eval.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "gr1c", "target dialect (gr1c|jtlv|smv|promela|eval)")

	return cmd
}

// renderResult is the JSON payload for a successful render.
type renderResult struct {
	Dialect string `json:"dialect"`
	Formula string `json:"formula"`
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	dialect, ok := ltl.DialectFromName(opts.Dialect)
	if !ok {
		return formatter.Fail(ErrCodeInvalid, fmt.Sprintf("unknown dialect %q", opts.Dialect))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return formatter.Fail(ErrCodeNotFound, fmt.Sprintf("reading tree file: %v", err))
	}

	node, err := ltl.UnmarshalTree(data)
	if err != nil {
		return formatter.Fail(ErrCodeParseFailed, fmt.Sprintf("%s: %v", path, err))
	}

	formula, err := ltl.Render(node, dialect)
	if err != nil {
		return formatter.Fail(ErrCodeEncode, err.Error())
	}

	if opts.Format == "json" {
		return formatter.Success(renderResult{Dialect: dialect.String(), Formula: formula})
	}
	return formatter.Success(formula + "\n")
}
