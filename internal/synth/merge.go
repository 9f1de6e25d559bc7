package synth

import (
	"io"
	"log/slog"

	"github.com/reactive-kit/gears/internal/gr1"
	"github.com/reactive-kit/gears/internal/ts"
)

// Merge compiles the optional system and environment models and
// combines them with the hand-written base specification. Either
// model may be nil. Warnings from both encodings are concatenated in
// system-then-environment order.
func Merge(base *gr1.Spec, sys, env *ts.System, sysOpts, envOpts Options) (*gr1.Spec, []Warning, error) {
	out := base.Clone()
	var warnings []Warning

	if sys != nil {
		sysSpec, w, err := SysToSpec(sys, sysOpts)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, warnings, err
		}
		out, err = gr1.Combine(out, sysSpec)
		if err != nil {
			return nil, warnings, err
		}
	}

	if env != nil {
		envSpec, w, err := EnvToSpec(env, envOpts)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, warnings, err
		}
		out, err = gr1.Combine(out, envSpec)
		if err != nil {
			return nil, warnings, err
		}
	}

	logger := sysOpts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Debug("merged specification", "pretty", out.Pretty())
	return out, warnings, nil
}
