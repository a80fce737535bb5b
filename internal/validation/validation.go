// Package validation is the single gate in front of every mutation entry
// point. Validators operate on decoded JSON maps rather than bound structs so
// that an absent field, an explicit null, and a provided value remain three
// distinct states. Failures come back as a field->messages map; unknown
// fields are ignored.
package validation

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Errors maps a field name to the list of validation messages for it.
type Errors map[string][]string

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field failed validation.
func (e Errors) Any() bool {
	return len(e) > 0
}

// field lookup helpers

// stringField extracts a string field from a raw JSON object.
// present is false when the key is absent; null is true for an explicit null.
func stringField(raw map[string]interface{}, key string) (value string, present, null, ok bool) {
	v, exists := raw[key]
	if !exists {
		return "", false, false, true
	}
	if v == nil {
		return "", true, true, true
	}
	s, isString := v.(string)
	if !isString {
		return "", true, false, false
	}
	return s, true, false, true
}

// idField extracts an entity identifier, accepting a JSON number or a decimal
// string. Identifiers are positive integers.
func idField(raw map[string]interface{}, key string) (id uint64, present, ok bool) {
	v, exists := raw[key]
	if !exists || v == nil {
		return 0, false, true
	}
	switch n := v.(type) {
	case float64:
		if n <= 0 || n != float64(uint64(n)) {
			return 0, true, false
		}
		return uint64(n), true, true
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil || parsed == 0 {
			return 0, true, false
		}
		return parsed, true, true
	default:
		return 0, true, false
	}
}

func checkLength(errs Errors, field, value string, min, max int) bool {
	length := utf8.RuneCountInString(value)
	if length < min {
		if min <= 1 {
			errs.add(field, fmt.Sprintf("%s is required", fieldLabel(field)))
		} else {
			errs.add(field, fmt.Sprintf("%s must be at least %d characters", fieldLabel(field), min))
		}
		return false
	}
	if length > max {
		errs.add(field, fmt.Sprintf("%s must be at most %d characters", fieldLabel(field), max))
		return false
	}
	return true
}

func fieldLabel(field string) string {
	switch field {
	case "name":
		return "Name"
	case "title":
		return "Title"
	case "description":
		return "Description"
	case "password":
		return "Password"
	default:
		return strings.ToUpper(field[:1]) + field[1:]
	}
}

// normalizeEmail validates email syntax and returns the lowercase form used
// for storage and lookup.
func normalizeEmail(email string) (string, bool) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}
	return strings.ToLower(email), true
}

// parseDateTime accepts RFC 3339 timestamps.
func parseDateTime(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
