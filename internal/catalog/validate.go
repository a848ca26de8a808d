package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate = govalidator.New(govalidator.WithRequiredStructEnabled())
	trans    ut.Translator
)

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"yaml", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	registerEnum("subject", "{0} must be a known subject", func(s string) bool {
		return Subject(s).Valid()
	})
	registerEnum("subcategory", "{0} must be Formula, Quiz, Lit hack or Blog", func(s string) bool {
		return SubCategory(s).Valid()
	})
	registerEnum("paper", "{0} must be 1st or 2nd", func(s string) bool {
		return s == "" || Paper(s).Valid()
	})
	registerEnum("difficulty", "{0} must be Easy, Medium or Hard", func(s string) bool {
		switch Difficulty(s) {
		case DifficultyEasy, DifficultyMedium, DifficultyHard:
			return true
		}
		return false
	})
}

func registerEnum(tag, msg string, ok func(string) bool) {
	_ = validate.RegisterValidation(tag, func(fl govalidator.FieldLevel) bool {
		return ok(fl.Field().String())
	})
	_ = validate.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, msg, true) },
		func(t ut.Translator, fe govalidator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ValidateQuestion checks the question invariants: non-empty text, exactly
// four non-empty options and a correct answer index inside them.
func ValidateQuestion(q Question) error {
	return translate(validate.Struct(q))
}

// translate flattens validator errors into readable messages joined together.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	errs := make([]error, 0, len(ve))
	for _, fe := range ve {
		errs = append(errs, fmt.Errorf("%s: %s", fe.Namespace(), fe.Translate(trans)))
	}
	return errors.Join(errs...)
}
