package cli

import (
	"encoding/json"
	"fmt"
)

// CLIError is a structured error used for consistent json/text emission.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// outputError emits a structured error and returns it so kong exits nonzero
func outputError(globals *Globals, code, message, hint string) error {
	cliErr := &CLIError{Code: code, Message: message, Hint: hint}
	if globals.Format == "json" {
		enc := json.NewEncoder(globals.Stdout)
		enc.Encode(map[string]any{"type": "error", "error": cliErr})
		return cliErr
	}
	fmt.Fprintf(globals.Stderr, "Error: %s\n", message)
	if hint != "" {
		fmt.Fprintf(globals.Stderr, "Hint: %s\n", hint)
	}
	return cliErr
}
