package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldError reports a single violated field. The full list is retained for
// API consumers; the top-level message is always the first violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[\d\s\-\(\)\+\.]+$`)
	digitRegex = regexp.MustCompile(`\D`)
)

// errorList accumulates violations in declaration order so the response
// message is deterministic.
type errorList struct {
	errors []FieldError
}

func (l *errorList) add(field, message string) {
	l.errors = append(l.errors, FieldError{Field: field, Message: message})
}

func (l *errorList) toError() *ValidationError {
	if len(l.errors) == 0 {
		return nil
	}
	return &ValidationError{
		Message: l.errors[0].Message,
		Errors:  l.errors,
	}
}

func checkFullName(l *errorList, fullName string) {
	// Length limits count characters, not bytes.
	length := utf8.RuneCountInString(fullName)
	if length < 2 || length > 100 {
		l.add("full_name", "Full name must be between 2 and 100 characters")
		return
	}
	if !nameRegex.MatchString(fullName) {
		l.add("full_name", "Full name can only contain letters, spaces, hyphens, and apostrophes")
	}
}

func checkEmail(l *errorList, email string) {
	if !emailRegex.MatchString(email) {
		l.add("email", "Please provide a valid email address")
		return
	}
	if utf8.RuneCountInString(email) > 254 {
		l.add("email", "Email address is too long")
	}
}

func checkPhone(l *errorList, phone string) {
	if !phoneRegex.MatchString(phone) {
		l.add("phone", "Please provide a valid phone number")
	}
}

// checkHoneypot rejects any submission that filled the hidden field. The
// message is deliberately generic so the response does not name the field's
// purpose.
func checkHoneypot(l *errorList, value string) {
	if value != "" {
		l.add("_hp", "Invalid submission")
	}
}

func isMember(value string, allowed []string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}

// NormalizeEmail lowercases a trimmed address; storage and duplicate
// detection are case-insensitive on email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips everything but digits and drops the leading US
// long-distance "1" when exactly 11 digits remain.
func NormalizePhone(phone string) string {
	digits := digitRegex.ReplaceAllString(phone, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		return digits[1:]
	}
	return digits
}

// trimAll trims every element and drops empties, for multi-select fields.
func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
