package validator

import (
	"math"
	"reflect"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"hrms.io/application/constants"
)

func validateNameWithSpecialChars(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	regex := regexp.MustCompile(`^[\p{L}'\- ]+$`)
	return regex.MatchString(name)
}

// face descriptors are fixed-length float vectors
func validateDescriptor(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice || field.Len() != constants.FACE_DESCRIPTOR_LENGTH {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		item := field.Index(i)
		switch item.Kind() {
		case reflect.Float32, reflect.Float64:
			value := item.Float()
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func validateVerificationAction(fl validator.FieldLevel) bool {
	action := fl.Field().String()
	for _, allowed := range constants.VERIFICATION_ACTIONS {
		if action == allowed {
			return true
		}
	}
	return false
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}
