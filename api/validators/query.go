package validators

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/wishlist-ai/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// BindQuery fills the string fields of dest from the request query string using
// `query` struct tags, trimming each value. Length limits belong in `validate`
// tags; values are never truncated.
func BindQuery(r *http.Request, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return pkgerrors.New(pkgerrors.CodeInternal, "query destination must be a struct pointer")
	}
	values := r.URL.Query()
	elem := rv.Elem()
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Type().Field(i)
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "" || field.Type.Kind() != reflect.String {
			continue
		}
		elem.Field(i).SetString(SanitizeString(values.Get(name), 0))
	}
	return nil
}

// Validate runs struct validation and returns a CodeValidation error with per-field details.
func Validate(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// MissingRequired reports whether err from Validate includes a failed
// `required` rule.
func MissingRequired(err error) bool {
	typed := pkgerrors.As(err)
	if typed == nil {
		return false
	}
	details, _ := typed.Details().(map[string]string)
	for _, msg := range details {
		if msg == validationMessageFor("required", "") {
			return true
		}
	}
	return false
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessageFor(fieldErr.Tag(), fieldErr.Param())
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessageFor(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s", param)
	case "oneof":
		return fmt.Sprintf("must be one of %s", param)
	}
	return "is invalid"
}
