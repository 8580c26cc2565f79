// Package queryguard validates ad-hoc read queries before they are executed
// against a user's target database. It is a conservative denylist, not a SQL
// parser: it can reject legal SELECTs that merely mention a forbidden word,
// but it never accepts a mutating statement.
package queryguard

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrRejected is wrapped by every validation failure.
var ErrRejected = errors.New("query rejected")

var mutatingToken = regexp.MustCompile(`(?i)(^|[^a-z0-9_])(insert|update|delete|drop|alter|create)\s`)

// Validate returns nil when sqlText is an acceptable read-only query.
func Validate(sqlText string) error {
	trimmed := strings.ToLower(strings.TrimSpace(sqlText))
	if trimmed == "" {
		return fmt.Errorf("%w: query is empty", ErrRejected)
	}
	if m := mutatingToken.FindStringSubmatch(trimmed); m != nil {
		return fmt.Errorf("%w: only SELECT queries are allowed (found %q)", ErrRejected, m[2])
	}
	if !strings.HasPrefix(trimmed, "select ") {
		return fmt.Errorf("%w: query must start with SELECT", ErrRejected)
	}
	return nil
}
