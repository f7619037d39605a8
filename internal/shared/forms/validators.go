package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^(?:\+34|0034)?[6-9][0-9]{8}$`)
	hhmmPattern  = regexp.MustCompile(`^(?:[01][0-9]|2[0-3]):[0-5][0-9]$`)

	engineOnce sync.Once
	engine     *validator.Validate
)

// NormalizePhone strips the separators people usually type.
func NormalizePhone(value string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
	return replacer.Replace(strings.TrimSpace(value))
}

// IsPhone reports whether value is a Spanish mobile or landline number.
func IsPhone(value string) bool {
	return phonePattern.MatchString(NormalizePhone(value))
}

// IsHHMM reports whether value is a 24h HH:MM time.
func IsHHMM(value string) bool {
	return hhmmPattern.MatchString(strings.TrimSpace(value))
}

// IsYMD reports whether value is a calendar date in YYYY-MM-DD form.
func IsYMD(value string) bool {
	_, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	return err == nil
}

func validatorEngine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		mustRegister(v, "phone", func(fl validator.FieldLevel) bool { return IsPhone(fl.Field().String()) })
		mustRegister(v, "hhmm", func(fl validator.FieldLevel) bool { return IsHHMM(fl.Field().String()) })
		mustRegister(v, "ymd", func(fl validator.FieldLevel) bool { return IsYMD(fl.Field().String()) })
		engine = v
	})
	return engine
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("forms: register %s: %v", tag, err))
	}
}

// Validate checks a form struct and returns the message of every failing
// field keyed by its JSON name. An empty map means the form is valid.
func Validate(form any) map[string]string {
	fields := make(map[string]string)
	err := validatorEngine().Struct(form)
	if err == nil {
		return fields
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		fields["_"] = invalid.Error()
		return fields
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		fields["_"] = err.Error()
		return fields
	}
	for _, fe := range failures {
		name := fieldPath(fe)
		if _, exists := fields[name]; exists {
			continue
		}
		fields[name] = message(fe)
	}
	return fields
}

// Check wraps Validate into a *ValidationError, nil when the form is valid.
func Check(form any) error {
	if fields := Validate(form); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// fieldPath drops the struct name from the namespace so nested rows keep
// their index: days[0].open.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "ymd":
		return "must be a date in YYYY-MM-DD format"
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
