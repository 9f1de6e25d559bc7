package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reactive-kit/gears/internal/gr1"
)

// CombineOptions holds flags for the combine command.
type CombineOptions struct {
	*RootOptions
	Pretty bool
}

// NewCombineCommand creates the combine command.
func NewCombineCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CombineOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "combine <spec.json> <spec.json> [more...]",
		Short: "Combine wire-form GR(1) specifications",
		Long: `Combine two or more wire-form specification files into one:
variable declarations are unioned, formula lists concatenated.
Conflicting variable declarations fail the combine.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "emit the pretty dump instead of wire JSON")

	return cmd
}

func runCombine(opts *CombineOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	combined := gr1.New()
	for _, path := range paths {
		spec, err := loadWireSpec(path)
		if err != nil {
			return formatter.Fail(loadErrCode(err), err.Error())
		}
		combined, err = gr1.Combine(combined, spec)
		if err != nil {
			return formatter.Fail(ErrCodeInvalid, fmt.Sprintf("combining %s: %v", path, err))
		}
		formatter.VerboseLog("combined %s", path)
	}

	if opts.Format == "json" {
		return formatter.Success(combined)
	}
	if opts.Pretty {
		return formatter.Success(combined.Pretty())
	}
	wire, err := json.MarshalIndent(combined, "", "  ")
	if err != nil {
		return formatter.Fail(ErrCodeEncode, err.Error())
	}
	return formatter.Success(string(wire) + "\n")
}

// loadWireSpec reads a wire-form JSON specification file.
func loadWireSpec(path string) (*gr1.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("spec file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading spec file: %v", err)}
	}
	spec := gr1.New()
	if err := json.Unmarshal(data, spec); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("%s: %v", path, err)}
	}
	if spec.EnvVars == nil {
		spec.EnvVars = gr1.VarMap{}
	}
	if spec.SysVars == nil {
		spec.SysVars = gr1.VarMap{}
	}
	return spec, nil
}
