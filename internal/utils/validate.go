package utils

import "github.com/go-playground/validator/v10"

// validate is a single shared validator instance; the library caches
// struct metadata so reuse is cheaper than constructing per request.
var validate = validator.New()

// ValidateStruct runs struct-tag validation on a request DTO and returns
// the library's error (nil when the value passes).
func ValidateStruct(v any) error {
	return validate.Struct(v)
}
