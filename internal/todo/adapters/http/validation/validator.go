// Package validation validates request DTOs and renders field errors.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"gotodo/internal/todo/domain/entities"
)

// Custom tags.
const (
	TagHasLower   = "haslower"
	TagHasUpper   = "hasupper"
	TagHasDigit   = "hasdigit"
	TagHasSpecial = "hasspecial"
	TagSafeText   = "safetext"
	TagISODate    = "isodate"
	TagMaxBytes   = "maxbytes"
)

// safetext accepts the empty string; pair it with required where needed.
var safeTextPattern = regexp.MustCompile(`^[\w\s.,!?-]*$`)

// FieldError is one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator wraps go-playground/validator with the custom rules registered.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator. It panics only if a rule fails to register,
// which is a programming error.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		TagHasLower:   runeRule(isASCIILower),
		TagHasUpper:   runeRule(isASCIIUpper),
		TagHasDigit:   runeRule(isASCIIDigit),
		TagHasSpecial: runeRule(func(r rune) bool { return !isASCIILower(r) && !isASCIIUpper(r) && !isASCIIDigit(r) }),
		TagMaxBytes:   maxBytes,
		TagSafeText: func(fl validator.FieldLevel) bool {
			return safeTextPattern.MatchString(fl.Field().String())
		},
		TagISODate: func(fl validator.FieldLevel) bool {
			_, err := entities.ParseDueDate(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return &Validator{validate: v}
}

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// maxBytes bounds the UTF-8 length of a string, e.g. maxbytes=72.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func runeRule(match func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), match) >= 0
	}
}

// Struct validates s and returns one FieldError per failing field, or nil.
func (v *Validator) Struct(s any) ([]FieldError, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err //nolint:wrapcheck
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: message(fe.Field(), fe.Tag()),
		})
	}
	return out, nil
}
