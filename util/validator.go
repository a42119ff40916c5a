package util

import "github.com/go-playground/validator/v10"

var validate *validator.Validate

// The latitude/longitude rules back the `validate:"latitude"` and
// `validate:"longitude"` tags on coordinate-bearing request structs,
// such as a hand-placed photo location.
func init() {
	validate = validator.New()
	validate.RegisterValidation("latitude", func(fl validator.FieldLevel) bool {
		lat := fl.Field().Float()
		return lat >= -90 && lat <= 90
	})
	validate.RegisterValidation("longitude", func(fl validator.FieldLevel) bool {
		lon := fl.Field().Float()
		return lon >= -180 && lon <= 180
	})
}

// ValidateStruct runs the shared validator over a request struct.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
