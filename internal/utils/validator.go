package utils

import (
    "net/http"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's
// Validator interface so handlers can call c.Validate on bound
// request structs.
type RequestValidator struct {
    validate *validator.Validate
}

// NewRequestValidator builds a validator with struct-tag validation
// enabled.
func NewRequestValidator() *RequestValidator {
    return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.  Validation failures are
// wrapped into a 400 so handlers can return the error directly.
func (v *RequestValidator) Validate(i interface{}) error {
    if err := v.validate.Struct(i); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, err.Error())
    }
    return nil
}
