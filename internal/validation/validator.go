// Package validation validates HTTP request bodies with validator/v10.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/madinah-companion/internal/preferences"
)

// Error reports every invalid field keyed by its JSON name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+" "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator wraps go-playground/validator with the app's custom tags.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that names fields by their JSON tag and knows
// the "hhmm" tag for reminder times.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		name, _, _ = strings.Cut(name, ",")
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, _, err := preferences.ParseReminderTime(fl.Field().String())
		return err == nil
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns *Error for invalid fields.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[e.Field()] = friendlyMessage(e)
	}
	return &Error{Fields: fields}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "hhmm":
		return "must be a time in HH:MM format"
	default:
		return fmt.Sprintf("failed %q validation", e.Tag())
	}
}
