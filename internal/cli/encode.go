package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reactive-kit/gears/internal/gr1"
	"github.com/reactive-kit/gears/internal/solver"
	"github.com/reactive-kit/gears/internal/store"
	"github.com/reactive-kit/gears/internal/synth"
	"github.com/reactive-kit/gears/internal/ts"
)

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	*RootOptions

	Model    string // system model YAML
	EnvModel string // environment model YAML
	Spec     string // hand-written spec CUE

	BoolStates    bool
	BoolActions   bool
	ActionsMust   string
	IgnoreInitial bool
	StateVar      string
	EnvStateVar   string
	EnvActionVar  string
	SysActionVar  string

	Solver  string // target solver, constrains the encoding
	Emit    string // wire | pretty | gr1c
	Archive string // run archive path, empty disables archiving
}

var validEmits = []string{"wire", "pretty", "gr1c"}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode transition system models into a GR(1) specification",
		Long: `Encode a system model and optionally an environment model into GR(1)
formulas, merge them with a hand-written specification, and emit the
result as wire JSON, a pretty dump, or gr1c solver input.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Model, "model", "m", "", "system model YAML file")
	cmd.Flags().StringVar(&opts.EnvModel, "env-model", "", "environment model YAML file")
	cmd.Flags().StringVarP(&opts.Spec, "spec", "s", "", "hand-written specification CUE file")

	cmd.Flags().BoolVar(&opts.BoolStates, "bool-states", false, "one Boolean variable per state")
	cmd.Flags().BoolVar(&opts.BoolActions, "bool-actions", false, "one Boolean variable per action")
	cmd.Flags().StringVar(&opts.ActionsMust, "actions-must", "xor", "action constraint (none|mutex|xor)")
	cmd.Flags().BoolVar(&opts.IgnoreInitial, "ignore-initial", false, "omit initial-state formulas from the models")
	cmd.Flags().StringVar(&opts.StateVar, "state-var", "", "system state variable name (default loc)")
	cmd.Flags().StringVar(&opts.EnvStateVar, "env-state-var", "", "environment state variable name (default eloc)")
	cmd.Flags().StringVar(&opts.EnvActionVar, "eact-var", "", "environment action variable name (default eact)")
	cmd.Flags().StringVar(&opts.SysActionVar, "act-var", "", "system action variable name (default act)")

	cmd.Flags().StringVar(&opts.Solver, "solver", "gr1c", "target solver (gr1c|jtlv)")
	cmd.Flags().StringVar(&opts.Emit, "emit", "wire", "output form (wire|pretty|gr1c)")
	cmd.Flags().StringVar(&opts.Archive, "archive", "", "archive the run in this database")

	return cmd
}

// encodeResult is the JSON payload for a successful encode.
type encodeResult struct {
	Spec     *gr1.Spec `json:"spec"`
	Warnings []string  `json:"warnings,omitempty"`
	RunID    string    `json:"run_id,omitempty"`
}

func runEncode(opts *EncodeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.Model == "" && opts.EnvModel == "" && opts.Spec == "" {
		return formatter.Fail(ErrCodeInvalid, "nothing to encode: provide --model, --env-model, or --spec")
	}
	if !contains(validEmits, opts.Emit) {
		return formatter.Fail(ErrCodeInvalid, fmt.Sprintf("invalid emit form %q: must be one of %v", opts.Emit, validEmits))
	}

	must, err := synth.MustFromString(opts.ActionsMust)
	if err != nil {
		return formatter.Fail(ErrCodeInvalid, err.Error())
	}

	var sysModel, envModel *ts.System
	if opts.Model != "" {
		if sysModel, err = LoadModelFile(opts.Model); err != nil {
			return formatter.Fail(loadErrCode(err), err.Error())
		}
		formatter.VerboseLog("loaded system model %s (%d states)", opts.Model, len(sysModel.States))
	}
	if opts.EnvModel != "" {
		if envModel, err = LoadModelFile(opts.EnvModel); err != nil {
			return formatter.Fail(loadErrCode(err), err.Error())
		}
		formatter.VerboseLog("loaded environment model %s (%d states)", opts.EnvModel, len(envModel.States))
	}

	base := gr1.New()
	if opts.Spec != "" {
		if base, err = LoadSpecFile(opts.Spec); err != nil {
			return formatter.Fail(loadErrCode(err), err.Error())
		}
		formatter.VerboseLog("loaded specification %s", opts.Spec)
	}

	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	sysOpts := synth.Options{
		IgnoreInitial: opts.IgnoreInitial,
		BoolStates:    opts.BoolStates,
		BoolActions:   opts.BoolActions,
		Must:          must,
		StateVar:      opts.StateVar,
		EnvActionVar:  opts.EnvActionVar,
		SysActionVar:  opts.SysActionVar,
		Logger:        logger,
	}
	sysOpts, coerceWarns, err := solver.CoerceOptions(opts.Solver, sysOpts)
	if err != nil {
		return formatter.Fail(ErrCodeInvalid, err.Error())
	}
	envOpts := sysOpts
	envOpts.StateVar = opts.EnvStateVar

	spec, warns, err := synth.Merge(base, sysModel, envModel, sysOpts, envOpts)
	if err != nil {
		return formatter.Fail(ErrCodeEncode, err.Error())
	}

	warns = append(coerceWarns, warns...)
	warnings := make([]string, 0, len(warns))
	for _, w := range warns {
		warnings = append(warnings, w.String())
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	runID := ""
	if opts.Archive != "" {
		runID, err = archiveRun(cmd.Context(), opts.Archive, spec, opts.Model)
		if err != nil {
			return formatter.Fail(ErrCodeStore, err.Error())
		}
		formatter.VerboseLog("archived run %s in %s", runID, opts.Archive)
	}

	if opts.Format == "json" {
		return formatter.Success(encodeResult{Spec: spec, Warnings: warnings, RunID: runID})
	}

	switch opts.Emit {
	case "pretty":
		return formatter.Success(spec.Pretty())
	case "gr1c":
		var buf bytes.Buffer
		if err := solver.WriteGR1C(&buf, spec); err != nil {
			return formatter.Fail(ErrCodeEncode, err.Error())
		}
		return formatter.Success(buf.String())
	default:
		wire, err := json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return formatter.Fail(ErrCodeEncode, err.Error())
		}
		return formatter.Success(string(wire) + "\n")
	}
}

func archiveRun(ctx context.Context, path string, spec *gr1.Spec, modelPath string) (string, error) {
	s, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer s.Close()

	run, err := s.SaveRun(ctx, spec, modelPath)
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// loadErrCode pulls the code out of a LoadError for the JSON envelope.
func loadErrCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeInvalid
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
