package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"lead_backend/internal/feature/lead/domain/entity"
)

// emailPattern is the accepted lead email shape.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

var fieldLabels = map[string]string{
	"first_name": "First name",
	"last_name":  "Last name",
	"email":      "Email",
	"phone":      "Phone",
	"company":    "Company name",
	"city":       "City",
	"state":      "State",
	"source":     "Source",
	"status":     "Status",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("lead_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("lead_source", func(fl validator.FieldLevel) bool {
		return entity.Source(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("lead_status", func(fl validator.FieldLevel) bool {
		return entity.Status(fl.Field().String()).Valid()
	})
	return v
}

// validateLead checks l against its schema and returns a *ValidationError
// listing every failing field.
func validateLead(v *validator.Validate, l *entity.Lead) error {
	err := v.Struct(l)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Add(fe.Field(), leadMessage(fe))
	}
	return out
}

func leadMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "score":
		return "Score must be between 0 and 100"
	case "lead_value":
		return "Lead value cannot be negative"
	}

	label := fieldLabels[fe.Field()]
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s cannot be more than %s characters", label, fe.Param())
	case "lead_email":
		return "Please provide a valid email"
	case "lead_source":
		return "Source must be one of: " + joinValues(entity.Sources())
	case "lead_status":
		return "Status must be one of: " + joinValues(entity.Statuses())
	default:
		return label + " is invalid"
	}
}

func joinValues[T ~string](vals []T) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}
