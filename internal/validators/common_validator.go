package validators

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"spinwin/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("iana_tz", validateTimezone)
	validate.RegisterValidation("iso_instant", validateInstant)

	validate.RegisterAlias("range_days", fmt.Sprintf("lte=%d", utils.MaxRangeDays))
	validate.RegisterAlias("search_limit", fmt.Sprintf("min=1,lte=%d", utils.MaxCustomerSearchLimit))
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Details flattens the errors into the response envelope's field map.
func (v ValidationErrors) Details() map[string]string {
	details := make(map[string]string, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		fieldErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return ValidationErrors{{Field: "request", Tag: "invalid", Message: err.Error()}}
		}
		for _, fe := range fieldErrors {
			validationErrors = append(validationErrors, ValidationError{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Value:   fmt.Sprintf("%v", fe.Value()),
				Message: getErrorMessage(fe),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "range_days":
		return fmt.Sprintf("%s must be at most %d", err.Field(), utils.MaxRangeDays)
	case "search_limit":
		return fmt.Sprintf("%s must be between 1 and %d", err.Field(), utils.MaxCustomerSearchLimit)
	case "iana_tz":
		return "Unknown IANA time zone"
	case "iso_instant":
		return "Invalid date, expected an ISO 8601 instant"
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateTimezone(fl validator.FieldLevel) bool {
	_, err := utils.LoadLocation(fl.Field().String())
	return err == nil
}

func validateInstant(fl validator.FieldLevel) bool {
	_, err := utils.ParseInstant(fl.Field().String())
	return err == nil
}
