package validation

import (
	"github.com/sakumura/taskboard-api/internal/constants"
)

// RegisterInput is the validated payload for user registration. Email is
// already lowercase-normalized.
type RegisterInput struct {
	Email    string
	Password string
	Name     *string
}

// LoginInput is the validated payload for login. No strength checks apply
// here; the password only has to be non-empty.
type LoginInput struct {
	Email    string
	Password string
}

// ValidateRegister checks a registration payload.
func ValidateRegister(raw map[string]interface{}) (*RegisterInput, Errors) {
	errs := Errors{}
	input := &RegisterInput{}

	email, present, null, ok := stringField(raw, "email")
	if !present || null || !ok {
		errs.add("email", "Invalid email address")
	} else if normalized, valid := normalizeEmail(email); !valid {
		errs.add("email", "Invalid email address")
	} else {
		input.Email = normalized
	}

	password, present, null, ok := stringField(raw, "password")
	switch {
	case !present || null || !ok:
		errs.add("password", "Password is required")
	case len(password) < constants.MinPasswordLength:
		errs.add("password", "Password must be at least 8 characters")
	case len(password) > constants.MaxPasswordLength:
		errs.add("password", "Password must be less than 100 characters")
	default:
		input.Password = password
	}

	if name, present, null, ok := stringField(raw, "name"); present && !null {
		if !ok {
			errs.add("name", "Name must be a string")
		} else if checkLength(errs, "name", name, 1, constants.MaxDisplayNameLength) {
			input.Name = &name
		}
	}

	if errs.Any() {
		return nil, errs
	}
	return input, nil
}

// ValidateLogin checks a login payload.
func ValidateLogin(raw map[string]interface{}) (*LoginInput, Errors) {
	errs := Errors{}
	input := &LoginInput{}

	email, present, null, ok := stringField(raw, "email")
	if !present || null || !ok {
		errs.add("email", "Invalid email address")
	} else if normalized, valid := normalizeEmail(email); !valid {
		errs.add("email", "Invalid email address")
	} else {
		input.Email = normalized
	}

	password, present, null, ok := stringField(raw, "password")
	if !present || null || !ok || password == "" {
		errs.add("password", "Password is required")
	} else {
		input.Password = password
	}

	if errs.Any() {
		return nil, errs
	}
	return input, nil
}
