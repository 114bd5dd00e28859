// Package validate checks form input and reports errors keyed by field name.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// looseEmail is the form-level email check
	looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)
	// strictEmail is the login-level email check
	strictEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FieldErrors maps a field key to its message. Repeated entries use "<key>-<field>".
type FieldErrors map[string]string

// Prefixed returns a copy with every key rewritten to "<prefix>-<key>"
func (f FieldErrors) Prefixed(prefix string) FieldErrors {
	out := make(FieldErrors, len(f))
	for k, v := range f {
		out[prefix+"-"+k] = v
	}
	return out
}

// Merge copies other into f
func (f FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		f[k] = v
	}
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("email_loose", func(fl validator.FieldLevel) bool {
			return looseEmail.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("email_strict", func(fl validator.FieldLevel) bool {
			return strictEmail.MatchString(strings.TrimSpace(fl.Field().String()))
		})
		instance = v
	})
	return instance
}

// Struct validates a flat struct. The result is empty when s is valid.
func Struct(s interface{}) FieldErrors {
	out := FieldErrors{}
	err := get().Struct(s)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(labelOf(t, fe.StructField()), fe.Tag())
	}
	return out
}

// Email reports whether s is an acceptable login email
func Email(s string) bool {
	return get().Var(s, "email_strict") == nil
}

func labelOf(t reflect.Type, field string) string {
	if sf, ok := t.FieldByName(field); ok {
		if l := sf.Tag.Get("label"); l != "" {
			return l
		}
	}
	return field
}

func message(label, tag string) string {
	switch tag {
	case "notblank", "required":
		return label + " is required"
	default:
		return label + " is invalid"
	}
}
