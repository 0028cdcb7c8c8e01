package lab

import (
	"regexp"
	"strconv"
	"strings"
)

// limitClause matches a trailing LIMIT clause: the count literal,
// optionally followed by OFFSET n or the legacy ", n" form, then an
// optional statement terminator. Submatch 1 is the count literal.
var limitClause = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)\s*(?:OFFSET\s+\d+|,\s*\d+)?\s*;?\s*$`)

// enforceLimit caps the row count of a statement by textual rewrite,
// not SQL parsing; dialect-specific limit syntax can defeat it, which
// is accepted for lab queries. It returns the statement to execute and
// whether the rewrite marks the result as truncated.
//
// Three cases: no LIMIT present appends one (truncated); LIMIT n with
// n <= max is left alone; LIMIT n with n > max has the literal
// rewritten to max (truncated).
func enforceLimit(stmt string, max int) (string, bool) {
	stmt = strings.TrimSpace(stmt)

	m := limitClause.FindStringSubmatchIndex(stmt)
	if m == nil {
		stmt = strings.TrimRight(stmt, "; \t\n\r")
		return stmt + " LIMIT " + strconv.Itoa(max), true
	}

	n, err := strconv.Atoi(stmt[m[2]:m[3]])
	if err != nil || n > max {
		// err means the literal overflows int, which is certainly
		// above the cap.
		return stmt[:m[2]] + strconv.Itoa(max) + stmt[m[3]:], true
	}

	return stmt, false
}
