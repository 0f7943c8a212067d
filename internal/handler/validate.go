package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/eventops/api/internal/enum"
	"github.com/go-playground/validator/v10"
)

// normalizer is implemented by request bodies that clean their own input
// after decoding and before validation.
type normalizer interface {
	normalize()
}

// NewValidator returns a validator that reports JSON field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("max_guests", fmt.Sprintf("lte=%d", enum.MaxGuestCount))
	return v
}

// decodeAndValidate reads a JSON body into dst, normalizes it and runs
// struct validation. On failure it writes a 400 and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}
	if err := v.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
