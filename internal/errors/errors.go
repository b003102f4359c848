// netra-dburl: database connection URL resolution and diagnostics for Netra
// SPDX-License-Identifier: MIT
//
// Coded error types for tool responses.

package errors

import (
	"fmt"
	"regexp"
)

type Code string

const (
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeConfigIncomplete Code = "CONFIG_INCOMPLETE"
	CodePolicyViolation  Code = "POLICY_VIOLATION"
	CodeDriverMismatch   Code = "DRIVER_MISMATCH"
	CodeProbeDisabled    Code = "PROBE_DISABLED"
	CodeApprovalRequired Code = "APPROVAL_REQUIRED"
	CodeRateLimited      Code = "RATE_LIMITED"
	CodeUnavailable      Code = "UNAVAILABLE"
	CodeInternalError    Code = "INTERNAL_ERROR"
)

type ToolError struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *ToolError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func New(code Code, msg, hint string, details map[string]any) *ToolError {
	return &ToolError{Code: code, Message: msg, Hint: hint, Details: sanitize(details)}
}

func NewInvalidInput(msg, hint string, details map[string]any) *ToolError {
	return New(CodeInvalidInput, msg, hint, details)
}

func NewPolicyViolation(issue string) *ToolError {
	return New(CodePolicyViolation, "configuration rejected by policy", issue, nil)
}

func NewProbeDisabled() *ToolError {
	return New(CodeProbeDisabled, "connectivity probes disabled", "set allow_probe=true to enable", nil)
}

func NewApprovalRequired(environment string) *ToolError {
	return New(CodeApprovalRequired, "approval token required", "request a short-lived probe token", map[string]any{"environment": environment})
}

func NewRateLimited() *ToolError {
	return New(CodeRateLimited, "probe rate limit exceeded", "retry later", nil)
}

func NewUnavailable(msg string) *ToolError {
	return New(CodeUnavailable, msg, "check database configuration", nil)
}

func NewInternal(err error) *ToolError {
	if err == nil {
		return New(CodeInternalError, "internal error", "see logs", nil)
	}
	return New(CodeInternalError, "internal error", "see logs", map[string]any{"cause": scrub(err.Error())})
}

// ToToolError converts any error to a ToolError; unknown errors are wrapped
// as internal errors with scrubbed messages.
func ToToolError(err error) *ToolError {
	if err == nil {
		return nil
	}
	if te, ok := err.(*ToolError); ok {
		return te
	}
	return NewInternal(err)
}

func sanitize(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		out[k] = scrub(fmt.Sprint(v))
	}
	return out
}

var (
	urlCredRe  = regexp.MustCompile(`([A-Za-z][A-Za-z0-9+.-]*://)[^/@\s]+@`)
	kvSecretRe = regexp.MustCompile(`(?i)(password|pwd)=[^\s&]+`)
)

// scrub masks connection-URL credentials and key=value secrets so driver
// error strings never leak them into logs or tool results.
func scrub(s string) string {
	s = urlCredRe.ReplaceAllString(s, "${1}***@")
	return kvSecretRe.ReplaceAllString(s, "${1}=***")
}

// Scrub exposes the same masking for caller-facing error strings.
func Scrub(s string) string { return scrub(s) }
