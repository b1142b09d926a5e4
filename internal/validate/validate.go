// Package validate evaluates declarative field rules against request input,
// collecting every failure instead of stopping at the first one.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// FieldError is one failed rule, suitable for a 422 response body.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Rule checks one field. Predicate returns true when the value is valid.
type Rule struct {
	Field     string
	Predicate func(string) bool
	Message   string
}

// Run evaluates every rule in order and returns all failures.
func Run(rules []Rule, values map[string]string) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		if !r.Predicate(values[r.Field]) {
			errs = append(errs, FieldError{Field: r.Field, Msg: r.Message})
		}
	}
	return errs
}

// NotEmpty rejects empty or all-whitespace values.
func NotEmpty(field, msg string) Rule {
	return Rule{Field: field, Message: msg, Predicate: func(v string) bool {
		return strings.TrimSpace(v) != ""
	}}
}

// Email requires a parseable address.
func Email(field, msg string) Rule {
	return Rule{Field: field, Message: msg, Predicate: func(v string) bool {
		a, err := mail.ParseAddress(v)
		return err == nil && a.Address == v
	}}
}

// MinLen requires at least n characters.
func MinLen(field string, n int, msg string) Rule {
	return Rule{Field: field, Message: msg, Predicate: func(v string) bool {
		return utf8.RuneCountInString(v) >= n
	}}
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}
