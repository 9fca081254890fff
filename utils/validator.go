package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct bir input struct'ını validate tag'lerine göre doğrular.
// Hata mesajları kullanıcıya gösterilebilecek şekilde düzleştirilir.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var messages []string
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:]
		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, field+" alanı zorunludur")
		case "email":
			messages = append(messages, field+" geçerli bir e-posta olmalıdır")
		case "max":
			messages = append(messages, field+" en fazla "+fieldErr.Param()+" karakter olabilir")
		case "min":
			messages = append(messages, field+" en az "+fieldErr.Param()+" karakter olmalıdır")
		case "oneof":
			messages = append(messages, field+" şu değerlerden biri olmalıdır: "+fieldErr.Param())
		default:
			messages = append(messages, field+" geçersiz")
		}
	}
	return errors.New(strings.Join(messages, ", "))
}
