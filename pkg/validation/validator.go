package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for common validations.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

var check = validator.New()

// ValidateRegistration applies the registration input rules: every field
// non-empty, email syntactically valid, and the password complexity policy.
// Each violated rule yields one human-readable error string.
func ValidateRegistration(username, email, password string) []string {
	var errs []string
	if strings.TrimSpace(username) == "" {
		errs = append(errs, "Username is required")
	}
	if strings.TrimSpace(email) == "" {
		errs = append(errs, "Email is required")
	} else if check.Var(email, "email") != nil {
		errs = append(errs, "Email is not a valid email address")
	}
	if password == "" {
		errs = append(errs, "Password is required")
	} else {
		errs = append(errs, PasswordErrors(password)...)
	}
	return errs
}

// PasswordErrors enforces the credential-store password policy: minimum
// length 12 with at least one uppercase, lowercase, digit, and
// non-alphanumeric character.
func PasswordErrors(password string) []string {
	var errs []string
	if len(password) < 12 {
		errs = append(errs, "Passwords must be at least 12 characters")
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !upper {
		errs = append(errs, "Passwords must have at least one uppercase ('A'-'Z')")
	}
	if !lower {
		errs = append(errs, "Passwords must have at least one lowercase ('a'-'z')")
	}
	if !digit {
		errs = append(errs, "Passwords must have at least one digit ('0'-'9')")
	}
	if !symbol {
		errs = append(errs, "Passwords must have at least one non alphanumeric character")
	}
	return errs
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for API error details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if param != "" {
			return "must be at least " + param + " characters long"
		}
		return "too small"
	case "max":
		if param != "" {
			return "must be at most " + param + " characters long"
		}
		return "too large"
	default:
		return "validation failed for '" + tag + "'"
	}
}
