package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reactive-kit/gears/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	DB string
	ID string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived encoding runs",
		Long: `List the runs archived by encode --archive, newest first, or show a
single run with --id.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "gears.db", "run archive path")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show a single run by ID")

	return cmd
}

// runSummary is the JSON payload for one archived run.
type runSummary struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	ModelPath  string `json:"model_path"`
	SpecHash   string `json:"spec_hash"`
	Realizable *bool  `json:"realizable"`
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := store.Open(opts.DB)
	if err != nil {
		return formatter.Fail(ErrCodeStore, err.Error())
	}
	defer s.Close()

	if opts.ID != "" {
		run, err := s.GetRun(cmd.Context(), opts.ID)
		if err != nil {
			return formatter.Fail(ErrCodeNotFound, err.Error())
		}
		if opts.Format == "json" {
			return formatter.Success(summarize(run))
		}
		return formatter.Success(formatRun(run))
	}

	runs, err := s.ListRuns(cmd.Context())
	if err != nil {
		return formatter.Fail(ErrCodeStore, err.Error())
	}

	if opts.Format == "json" {
		summaries := make([]runSummary, 0, len(runs))
		for _, run := range runs {
			summaries = append(summaries, summarize(run))
		}
		return formatter.Success(summaries)
	}

	var b strings.Builder
	for _, run := range runs {
		b.WriteString(formatRun(run))
	}
	if len(runs) == 0 {
		b.WriteString("no runs archived\n")
	}
	return formatter.Success(b.String())
}

func summarize(run *store.Run) runSummary {
	return runSummary{
		ID:         run.ID,
		CreatedAt:  run.CreatedAt.Format(time.RFC3339),
		ModelPath:  run.ModelPath,
		SpecHash:   run.SpecHash,
		Realizable: run.Realizable,
	}
}

func formatRun(run *store.Run) string {
	verdict := "unknown"
	if run.Realizable != nil {
		verdict = fmt.Sprintf("%t", *run.Realizable)
	}
	return fmt.Sprintf("%s  %s  %s  realizable=%s\n",
		run.ID,
		run.CreatedAt.Format(time.RFC3339),
		run.ModelPath,
		verdict,
	)
}
