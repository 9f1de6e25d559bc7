package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose/diagnostic output, kept off Writer so JSON stays parseable
	Verbose   bool
}

// CLIResponse is the standard JSON response envelope.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for JSON responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format. For
// text format, data is printed as-is when it is a string and via
// fmt.Fprintln otherwise.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	if s, ok := data.(string); ok {
		_, err := fmt.Fprint(f.Writer, s)
		return err
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Fail outputs an error in the configured format and returns an error
// carrying the same message, so cobra reports a non-zero exit.
func (f *OutputFormatter) Fail(code, message string) error {
	if f.Format == "json" {
		if err := json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		}); err != nil {
			return err
		}
		return fmt.Errorf("%s", message)
	}
	fmt.Fprintf(f.ErrWriter, "error: %s\n", message)
	return fmt.Errorf("%s", message)
}

// VerboseLog writes a diagnostic line to the error stream when
// verbose output is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.ErrWriter, format+"\n", args...)
}

func newFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   opts.Verbose,
	}
}
