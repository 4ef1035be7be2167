package cv

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce    sync.Once
	resumeValidator *validator.Validate

	cvDatePattern = regexp.MustCompile(`^\d{4}(-(0[1-9]|1[0-2]))?$`)
)

// Issue is one advisory finding about a Resume. Issues never block an update.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("cvdate", func(fl validator.FieldLevel) bool {
			return IsValidDate(fl.Field().String())
		})
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		resumeValidator = v
	})
	return resumeValidator
}

// IsValidDate accepts YYYY, YYYY-MM or a "present" marker.
func IsValidDate(value string) bool {
	if value == "" || IsPresent(value) {
		return true
	}
	return cvDatePattern.MatchString(strings.TrimSpace(value))
}

// Validate checks r against the résumé field rules and returns every finding.
func Validate(r Resume) ([]Issue, error) {
	err := getValidator().Struct(r)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate resume: %w", err)
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Resume.")
		issues = append(issues, Issue{
			Field:   field,
			Rule:    fe.Tag(),
			Message: issueMessage(field, fe),
		})
	}
	return issues, nil
}

func issueMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be an email address"
	case "url":
		return field + " must be a full URL"
	case "cvdate":
		return field + " must be YYYY, YYYY-MM or Present"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func normalizeDate(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
