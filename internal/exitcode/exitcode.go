package exitcode

import "fmt"

const (
	Success             = 0
	GeneralError        = 1
	NotFound            = 2
	ConnectFailed       = 3
	ToolError           = 4
	ProviderUnavailable = 5
	InteractiveOnly     = 6
	ConfigError         = 7
)

// ExitError wraps an error with a semantic exit code and machine-readable code string.
type ExitError struct {
	Err      error
	ExitCode int
	Code     string
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// New creates an ExitError with the given code, exit code, and message.
func New(code string, exitCode int, msg string) *ExitError {
	return &ExitError{
		Err:      fmt.Errorf("%s", msg),
		ExitCode: exitCode,
		Code:     code,
	}
}

// Wrap creates an ExitError wrapping an existing error.
func Wrap(code string, exitCode int, err error) *ExitError {
	return &ExitError{
		Err:      err,
		ExitCode: exitCode,
		Code:     code,
	}
}

// ClassifyError returns (code, exitCode) by matching common error patterns.
func ClassifyError(err error) (string, int) {
	msg := err.Error()

	switch {
	case contains(msg, "not found"):
		if contains(msg, "tool") {
			return "tool_not_found", NotFound
		}
		if contains(msg, "model") {
			return "model_not_found", NotFound
		}
		if contains(msg, "provider") {
			return "provider_not_found", NotFound
		}
		return "not_found", NotFound
	case contains(msg, "connecting to MCP server"):
		return "connect_failed", ConnectFailed
	case contains(msg, "ollama server is not running"):
		return "provider_unavailable", ProviderUnavailable
	case contains(msg, "cannot be used with --json"):
		return "interactive_only", InteractiveOnly
	case contains(msg, "config"):
		return "config_error", ConfigError
	default:
		return "error", GeneralError
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && searchString(s, substr)
}

func searchString(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
