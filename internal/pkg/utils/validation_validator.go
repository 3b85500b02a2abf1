package utils

import (
	"campus-service/internal/pkg/clockwin"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("clock_time", validateClockTime)
	validate.RegisterValidation("weekday", validateWeekday)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := clockwin.ParseClock(fl.Field().String())
	return err == nil
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, err := clockwin.ParseWeekday(fl.Field().String())
	return err == nil
}
