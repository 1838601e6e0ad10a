// File: internal/validation/validation.go
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate *validator.Validate
	policy   *bluemonday.Policy

	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	hhmmRegex     = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	skuRegex      = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	// now is swapped in tests.
	now = time.Now
)

// MaxAgeYears bounds how far in the past a date of birth or hire may lie.
const MaxAgeYears = 120

func init() {
	validate = validator.New()

	// Report json names so messages match the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("username", matches(usernameRegex))
	validate.RegisterValidation("phone", matches(phoneRegex))
	validate.RegisterValidation("hhmm", matches(hhmmRegex))
	validate.RegisterValidation("currency", matches(currencyRegex))
	validate.RegisterValidation("sku", matches(skuRegex))
	validate.RegisterValidation("gender", validateGender)
	validate.RegisterValidation("pastdate", validatePastDate)
	validate.RegisterValidation("notblank", validators.NotBlank)

	// StrictPolicy() strips all HTML tags.
	policy = bluemonday.StrictPolicy()
}

// ValidateStruct validates a struct and returns a user-friendly error message
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	errorMessages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		errorMessages = append(errorMessages, getErrorMessage(fe))
	}

	return fmt.Errorf("validation failed: %s", strings.Join(errorMessages, "; "))
}

// getErrorMessage returns a user-friendly error message for validation errors
func getErrorMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "min":
		if isNumeric(fe) {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		if isNumeric(fe) {
			return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "ne":
		return fmt.Sprintf("%s must not be %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "username":
		return fmt.Sprintf("%s must contain only letters, numbers and underscores", field)
	case "password":
		return fmt.Sprintf("%s must contain at least one uppercase letter, one lowercase letter, one number, and one special character", field)
	case "phone":
		return fmt.Sprintf("%s must be 8 to 15 digits, optionally prefixed with +", field)
	case "hhmm":
		return fmt.Sprintf("%s must be a 24-hour time in HH:MM format", field)
	case "pastdate":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date in the past %d years", field, MaxAgeYears)
	case "gender":
		return fmt.Sprintf("%s must be one of: male, female, other", field)
	case "currency":
		return fmt.Sprintf("%s must be a three letter ISO 4217 code", field)
	case "sku":
		return fmt.Sprintf("%s must contain only letters, numbers, dashes and underscores", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func isNumeric(fe validator.FieldError) bool {
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// validatePassword checks if password meets security requirements
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

func validateGender(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "male", "female", "other":
		return true
	}
	return false
}

// validatePastDate accepts a YYYY-MM-DD date that is not in the future and not older than MaxAgeYears.
func validatePastDate(fl validator.FieldLevel) bool {
	return IsPastDate(fl.Field().String())
}

// IsPastDate reports whether s is a YYYY-MM-DD date between MaxAgeYears ago and today.
func IsPastDate(s string) bool {
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return false
	}
	today := now().UTC().Truncate(24 * time.Hour)
	if d.After(today) {
		return false
	}
	return !d.Before(today.AddDate(-MaxAgeYears, 0, 0))
}

// SanitizeString removes potentially dangerous characters from user input
func SanitizeString(input string) string {
	// Remove null bytes
	cleaned := strings.ReplaceAll(input, "\x00", "")

	// Sanitize using our strict allow-list policy
	// This will strip all HTML tags, leaving only the text.
	sanitized := policy.Sanitize(cleaned)

	return strings.TrimSpace(sanitized)
}
