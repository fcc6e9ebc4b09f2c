package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xraph/binspire/enum"
)

// enumValues lists the accepted values of every enum type, in declaration
// order. It backs the "enum" rule and the schema enum keyword.
var enumValues = map[reflect.Type][]string{
	reflect.TypeFor[enum.SystemEntity](): stringsOf(enum.SystemEntities()),
	reflect.TypeFor[enum.AuditAction]():  stringsOf(enum.AuditActions()),
	reflect.TypeFor[enum.IssueStatus]():  stringsOf(enum.IssueStatuses()),
	reflect.TypeFor[enum.Priority]():     stringsOf(enum.Priorities()),
}

func stringsOf[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("enum", validEnum); err != nil {
		panic(fmt.Sprintf("validate: register enum rule: %v", err))
	}
	return v
}

// validEnum accepts values of types exposing IsValid.
func validEnum(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(interface{ IsValid() bool })
	return ok && e.IsValid()
}

// reason renders a field error the way clients see it.
func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "enum":
		values := enumValues[derefType(fe.Type())]
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'",
			quoteJoin(values), fe.Value())
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Field() == "id" && fe.Param() == "1" {
				return "ID cannot be empty"
			}
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, " | ")
}
