package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

// WriteValidationError renders validator.v10 failures as a 400 envelope
// with one meta entry per offending field.
func WriteValidationError(w http.ResponseWriter, err error) error {
	meta := map[string]string{}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			meta[fe.Field()] = fe.Tag()
		}
	}
	return WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload", meta)
}
