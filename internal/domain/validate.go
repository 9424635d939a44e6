package domain

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks a quiz draft's required fields.
func (d QuizDraft) Validate() error {
	return structError(validatorInstance().Struct(d))
}

// Validate checks a question draft's required fields. Choice correctness is
// left to the backend.
func (d QuestionDraft) Validate() error {
	if err := structError(validatorInstance().Struct(d)); err != nil {
		return err
	}
	if d.Type == QuestionFreeText && strings.TrimSpace(d.CorrectAnswerText) == "" {
		return &ValidationError{Field: "correct_answer_text", Reason: "is required"}
	}
	if d.Type.IsChoice() && len(d.Options) == 0 {
		return &ValidationError{Field: "options", Reason: "is required"}
	}
	return nil
}

func structError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return &ValidationError{Field: field, Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}
