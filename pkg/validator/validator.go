package validator

import (
	"sort"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// Message joins the field messages in field order, for the JSON error body.
func (v ValidationErrors) Message() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(v))
	for _, f := range fields {
		msgs = append(msgs, v[f])
	}
	return strings.Join(msgs, "; ")
}

func ValidateSignup(fullName, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(fullName) == "" {
		errs.Add("fullName", "Full name is required")
	}

	if strings.TrimSpace(email) == "" {
		errs.Add("email", "Email is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(email) == "" {
		errs.Add("email", "Email is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}
