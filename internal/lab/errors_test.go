package lab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeEngineError(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "generic code prefix stripped",
			raw:  "SQLITE_ERROR: no such table: users",
			want: "no such table: users",
		},
		{
			name: "modernc prefix and code suffix stripped",
			raw:  "SQL logic error: near \"FORM\": syntax error (1)",
			want: "near \"FORM\": syntax error",
		},
		{
			name: "readonly violation translated",
			raw:  "SQL logic error: attempt to write a readonly database (8)",
			want: "the lab database is read-only",
		},
		{
			name: "readonly code form translated",
			raw:  "SQLITE_READONLY: attempt to write a readonly database",
			want: "the lab database is read-only",
		},
		{
			name: "postgres prefix stripped",
			raw:  "ERROR: relation \"users\" does not exist",
			want: "relation \"users\" does not exist",
		},
		{
			name: "plain message untouched",
			raw:  "context deadline exceeded",
			want: "context deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sanitizeEngineError(errors.New(tt.raw)))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	var err error = &NotFoundError{SessionID: "abc"}
	require.Contains(t, err.Error(), "abc")

	err = &ValidationError{Reason: "only SELECT statements are allowed in the lab"}
	require.Contains(t, err.Error(), "SELECT")

	cause := errors.New("SQLITE_ERROR: boom")
	exec := &ExecutionError{Message: "boom", Cause: cause}
	require.Equal(t, "boom", exec.Error())
	require.ErrorIs(t, exec, cause)
}
