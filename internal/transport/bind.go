package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"gadme-be/internal/apperr"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var ErrInvalidBody = apperr.New(apperr.KindInvalidArgument, "INVALID_BODY", "Invalid request body")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Decode reads a JSON body into dst without validating it.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrInvalidBody.WithMessage("Request body is required")
		}
		return ErrInvalidBody.WithCause(err)
	}
	return nil
}

// Bind decodes a JSON body into dst and validates it.
func Bind(r *http.Request, dst any) error {
	if err := Decode(r, dst); err != nil {
		return err
	}
	return Validate(dst)
}

// Validate runs struct validation and maps the first failure to an
// InvalidArgument error naming the field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ErrInvalidBody.WithCause(err)
	}

	return FieldError(verrs[0])
}

// FieldError converts a single validation failure.
func FieldError(fe validator.FieldError) *apperr.Error {
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("Missing field: %s", field)
	case "min", "gte":
		msg = fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "uuid", "uuid4":
		msg = fmt.Sprintf("%s must be a valid id", field)
	default:
		msg = fmt.Sprintf("Invalid field: %s", field)
	}
	return apperr.New(apperr.KindInvalidArgument, "VALIDATION_ERROR", msg).WithDetail("field", field)
}
