package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/reactive-kit/gears/internal/gr1"
)

// LoadSpecFile loads a hand-written GR(1) specification from a CUE
// file. The file's fields follow the wire shape: env_vars/sys_vars
// maps plus the six formula lists, all optional.
func LoadSpecFile(path string) (*gr1.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("spec file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading spec file: %v", err)}
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(ErrCodeParseFailed, err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(ErrCodeInvalid, err)
	}

	wire, err := value.MarshalJSON()
	if err != nil {
		return nil, cueLoadError(ErrCodeInvalid, err)
	}

	spec := gr1.New()
	if err := json.Unmarshal(wire, spec); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("%s: %v", path, err)}
	}
	if spec.EnvVars == nil {
		spec.EnvVars = gr1.VarMap{}
	}
	if spec.SysVars == nil {
		spec.SysVars = gr1.VarMap{}
	}
	return spec, nil
}

// cueLoadError converts a CUE error into a positioned LoadError.
func cueLoadError(code string, err error) *LoadError {
	le := &LoadError{Code: code, Message: cueerrors.Details(err, nil)}
	if positions := cueerrors.Positions(cueerrors.Promote(err, "")); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
