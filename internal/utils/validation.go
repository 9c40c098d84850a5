package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is a single violated constraint on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegisterCustomValidators installs extra rules on gin's binding engine and
// makes reported field names follow the json tags. Must run once before the
// router serves traffic.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Upper bound moves with the calendar, so a static max tag won't do.
	v.RegisterValidation("vehicle_year", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= 1900 && year <= int64(time.Now().Year()+1)
	})
}

// FormatValidationErrors flattens a binding error into per-field messages.
// Every violated rule is reported, not just the first.
func FormatValidationErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageForTag(fe)})
	}
	return out
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please provide a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "vehicle_year":
		return fmt.Sprintf("%s must be between 1900 and %d", fe.Field(), time.Now().Year()+1)
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// NormalizeEmail lower-cases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidObjectID reports whether id is a well-formed 24-hex document id.
func IsValidObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
