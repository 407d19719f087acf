// internal/app/system/validation/validator.go
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

// custom tags
const (
	starsTag  = "stars"
	starsText = "{0} must be between 1 and 5 stars"

	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"
)

// Validator wraps go-playground/validator with English messages and
// field names taken from the `label` tag (falling back to `json`).
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
)

// Default returns a shared Validator.
func Default() *Validator {
	defaultOnce.Do(func() { defaultV = NewValidator() })
	return defaultV
}

// NewValidator builds a Validator with the portal's custom rules.
func NewValidator() *Validator {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return jsonName(fld)
	})

	_ = v.RegisterValidation(starsTag, func(fl validator.FieldLevel) bool {
		return models.Stars(fl.Field().Int()).Valid()
	})
	registerTranslation(v, trans, starsTag, starsText)

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	registerTranslation(v, trans, notBlankTag, notBlankText)

	return &Validator{validate: v, translator: trans}
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Check validates s. It returns nil or a *ValidationError whose summary is
// the given message and whose fields carry translated per-field messages.
func (v *Validator) Check(s any, summary string) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate")
	}

	names := jsonNames(s)
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		name := names[fe.StructField()]
		if name == "" {
			name = fe.Field()
		}
		fields = append(fields, FieldError{Field: name, Message: fe.Translate(v.translator)})
	}
	return &ValidationError{Err: errors.New(summary), Fields: fields}
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func jsonNames(s any) map[string]string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	out := map[string]string{}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		out[f.Name] = jsonName(f)
	}
	return out
}
