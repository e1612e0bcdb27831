// Package validation turns raw form submissions into field-level messages.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"simpleblog/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

// messages is keyed by "<field>.<tag>".
var messages = map[string]string{
	"name.notblank": "A name is required",
	"text.notblank": "A comment is required",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateComment checks a comment submission. Every rule is evaluated, so a
// submission missing both name and text gets both messages. A valid
// submission yields an empty, non-nil map.
func ValidateComment(form models.CommentForm) models.FieldErrors {
	errs := models.FieldErrors{}

	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[models.GeneralErrorKey] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return "The " + fe.Field() + " field is invalid"
}
