package dto

import "github.com/go-playground/validator/v10"

// Validate instancia compartida del validador de requests.
var Validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
