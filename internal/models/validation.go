package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// NewValidator создает валидатор с правилами предметной области.
//
// Имена полей в ошибках берутся из json-тегов, для ClassInput
// дополнительно проверяется, что schedule задан для живых классов.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(classInputStructLevel, ClassInput{})
	return v
}

func classInputStructLevel(sl validator.StructLevel) {
	in := sl.Current().Interface().(ClassInput)
	if in.Type == ClassTypeLive && in.Schedule.IsZero() {
		sl.ReportError(in.Schedule, "schedule", "Schedule", "required_for_live", "")
	}
}
