package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/pkg/apperr"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	catalog := map[string]func(string) bool{
		"branch":        submission.IsBranch,
		"study_year":    submission.IsYear,
		"category":      submission.IsCategory,
		"duration_band": submission.IsDuration,
		"resource":      submission.IsResource,
	}
	for tag, fn := range catalog {
		check := fn
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
	}
	return v
}

// fieldErrors converts validator output into the field map clients receive.
func fieldErrors(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &apperr.ValidationError{Fields: make(map[string]string, len(ve))}
	for _, fe := range ve {
		name := fe.Field()
		if fe.Tag() == "resource" {
			name = "required_resources"
		}
		if _, seen := out.Fields[name]; !seen {
			out.Fields[name] = fieldMessage(fe)
		}
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return "select at least one option"
		}
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("select at least %s option", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "branch", "study_year", "category", "duration_band", "resource":
		return fmt.Sprintf("%q is not a recognised option", fe.Value())
	default:
		return "is invalid"
	}
}
