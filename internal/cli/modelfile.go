package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reactive-kit/gears/internal/ts"
)

// LoadModelFile loads a transition system model from a YAML file and
// validates it. The YAML shape mirrors ts.System.
func LoadModelFile(path string) (*ts.System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("model file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading model file: %v", err)}
	}

	var m ts.System
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("%s: %v", path, err)}
	}
	if err := m.Validate(); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("%s: %v", path, err)}
	}
	if _, err := m.Kind(); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("%s: %v", path, err)}
	}
	return &m, nil
}
