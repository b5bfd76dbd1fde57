package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// New returns a validator that reports fields by their JSON names and knows the
// titleyear, username and slug tags.
func New() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("titleyear", func(fl validator.FieldLevel) bool {
		return ValidateYear(int(fl.Field().Int())) == nil
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return ValidateUsername(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return v
}

// Struct validates s and converts failures into an *Error keyed by JSON field name.
func Struct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := &Error{}
	for _, e := range validationErrors {
		out.Add(fieldName(e), message(e))
	}
	return out
}

// fieldName drops the struct prefix and any dive index, so genre[1] reports as genre.
func fieldName(e validator.FieldError) string {
	name := e.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min", "gte":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has at least %s characters", e.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", e.Param())
	case "max", "lte":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has no more than %s characters", e.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "titleyear":
		if err, ok := ValidateYear(int(indirect(e.Value()).Int())).(*Error); ok {
			return err.Fields["year"]
		}
		return "invalid year"
	case "username":
		if err, ok := ValidateUsername(indirect(e.Value()).String()).(*Error); ok {
			return err.Fields["username"]
		}
		return "invalid username"
	case "slug":
		return "enter a valid slug consisting of letters, numbers, underscores or hyphens"
	}
	return fmt.Sprintf("failed on the '%s' rule", e.Tag())
}

func indirect(value interface{}) reflect.Value {
	return reflect.Indirect(reflect.ValueOf(value))
}
