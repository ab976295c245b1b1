package service

import "strings"

// ValidationResult is an immutable pass/fail outcome. Failures accumulate in
// the order the checks ran.
type ValidationResult struct {
	errors []string
}

func Pass() ValidationResult {
	return ValidationResult{}
}

func Fail(messages ...string) ValidationResult {
	return ValidationResult{errors: append([]string(nil), messages...)}
}

func (r ValidationResult) Passed() bool {
	return len(r.errors) == 0
}

func (r ValidationResult) Errors() []string {
	return append([]string(nil), r.errors...)
}

// Merge returns a new result holding the receiver's errors followed by other's.
func (r ValidationResult) Merge(other ValidationResult) ValidationResult {
	if other.Passed() {
		return r
	}
	merged := make([]string, 0, len(r.errors)+len(other.errors))
	merged = append(merged, r.errors...)
	merged = append(merged, other.errors...)
	return ValidationResult{errors: merged}
}

func (r ValidationResult) Message() string {
	return strings.Join(r.errors, ", ")
}
