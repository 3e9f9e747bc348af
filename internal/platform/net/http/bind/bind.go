// Package bind decodes and validates request input for handlers
package bind

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "parliametrics/internal/platform/errors"
	"parliametrics/internal/platform/logger"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc

	qOnce sync.Once
	qDec  *form.Decoder
)

// Get returns the validator singleton with english messages
// field names in messages come from the query tag, then the json tag
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(tagName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		short(v, trans, "min", "{0} must be at least {1}")
		short(v, trans, "max", "{0} must be at most {1}")
		short(v, trans, "datetime", "{0} must be a date formatted as {1}")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

func tagName(fld reflect.StructField) string {
	for _, key := range []string{"query", "json"} {
		tag := fld.Tag.Get(key)
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return fld.Name
}

func short(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

func queryDecoder() *form.Decoder {
	qOnce.Do(func() {
		qDec = form.NewDecoder()
		qDec.SetTagName("query")
	})
	return qDec
}

// ParseQuery decodes the URL query into a copy of defaults, validates it, and
// maps failures to project errors. Keys absent from the query keep their default
// Repeated keys fill slices in order (speaker_ids=1&speaker_ids=2)
func ParseQuery[T any](r *http.Request, defaults T) (T, error) {
	var zero T
	dst := defaults
	if err := queryDecoder().Decode(&dst, r.URL.Query()); err != nil {
		if des, ok := err.(form.DecodeErrors); ok {
			for field, fe := range des {
				return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s is invalid: %v", field, fe), field)
			}
		}
		return zero, perr.Newf(perr.ErrorCodeValidation, "invalid query: %v", err)
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate runs struct validation and maps the first failure to a
// validation error carrying the offending field
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Newf(perr.ErrorCodeValidation, "validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}
