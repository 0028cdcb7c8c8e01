package lab

import (
	"fmt"
	"regexp"
	"strings"
)

// NotFoundError reports a session id with no open database behind it.
type NotFoundError struct {
	SessionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no open session %q", e.SessionID)
}

// ValidationError reports a statement rejected before reaching the
// engine.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ExecutionError reports an engine-side failure. Message is the
// sanitized, human-readable form; the raw engine error stays wrapped.
type ExecutionError struct {
	Message string
	Cause   error
}

func (e *ExecutionError) Error() string {
	return e.Message
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Engine error prefixes that must never reach the caller. The modernc
// driver formats SQLite errors as "<text> (<code>)"; older bindings
// use the SQLITE_XXX prefix form.
var (
	codePrefixes = []string{
		"SQLITE_ERROR: ",
		"SQL logic error: ",
		"sqlite3: ",
		"sqlite: ",
		"ERROR: ",
	}
	codeSuffix = regexp.MustCompile(`\s*\(\d+\)$`)
)

// sanitizeEngineError rewrites a raw engine error into the message
// surfaced to the user: read-only violations get a friendly phrase,
// internal code prefixes and numeric code suffixes are stripped.
func sanitizeEngineError(err error) string {
	msg := err.Error()

	if strings.Contains(msg, "readonly database") ||
		strings.Contains(msg, "SQLITE_READONLY") ||
		strings.Contains(msg, "read-only transaction") {
		return "the lab database is read-only"
	}

	for _, prefix := range codePrefixes {
		if rest, ok := strings.CutPrefix(msg, prefix); ok {
			msg = rest
			break
		}
	}

	return codeSuffix.ReplaceAllString(msg, "")
}
