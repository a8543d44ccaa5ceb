package jsonout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Enabled is set to true when --json flag is active.
var Enabled bool

// msgOut is where human progress messages are written.
// When --json is active, this is io.Discard.
// When serving MCP on stdio, this is os.Stderr — stdout belongs to the protocol.
// Otherwise, this is os.Stdout.
var msgOut io.Writer = os.Stdout

// SetMsgOut sets the writer for human progress messages.
func SetMsgOut(w io.Writer) {
	msgOut = w
}

// MsgOut returns the writer for human progress messages.
// Commands should use fmt.Fprintf(jsonout.MsgOut(), ...) instead of fmt.Printf
// for any human-readable output that should be suppressed in JSON mode.
func MsgOut() io.Writer {
	return msgOut
}

// Write marshals v as JSON to stdout.
func Write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}

// WriteError writes a structured JSON error to stderr.
func WriteError(code, msg string, exitCode int) {
	v := struct {
		Error    string `json:"error"`
		Code     string `json:"code"`
		ExitCode int    `json:"exit_code"`
	}{
		Error:    msg,
		Code:     code,
		ExitCode: exitCode,
	}
	data, _ := json.Marshal(v)
	fmt.Fprintln(os.Stderr, string(data))
}
