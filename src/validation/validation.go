// Package validation checks request inputs and reports problems as a field to message map.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/theleywin/devconnect-backend/src/apperror"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate accepts a calendar date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

func (v *Validator) Register(in RegisterInput) apperror.FieldErrors { return v.check(in) }

func (v *Validator) Login(in LoginInput) apperror.FieldErrors { return v.check(in) }

func (v *Validator) Profile(in ProfileInput) apperror.FieldErrors { return v.check(in) }

func (v *Validator) Experience(in ExperienceInput) apperror.FieldErrors { return v.check(in) }

func (v *Validator) Education(in EducationInput) apperror.FieldErrors { return v.check(in) }

func (v *Validator) Post(in PostInput) apperror.FieldErrors { return v.check(in) }

// check returns nil when in is valid.
func (v *Validator) check(in interface{}) apperror.FieldErrors {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.FieldErrors{"input": err.Error()}
	}

	fields := apperror.FieldErrors{}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return fields
}

var labels = map[string]string{
	"name":           "Name",
	"email":          "Email",
	"password":       "Password",
	"password2":      "Confirm password",
	"handle":         "Profile handle",
	"status":         "Status",
	"skills":         "Skills",
	"website":        "Website",
	"title":          "Job title",
	"company":        "Company",
	"from":           "From date",
	"to":             "To date",
	"school":         "School",
	"degree":         "Degree",
	"fieldofstudy":   "Field of study",
	"text":           "Text",
	"youtube":        "Youtube",
	"twitter":        "Twitter",
	"facebook":       "Facebook",
	"linkedin":       "Linkedin",
	"instagram":      "Instagram",
	"githubusername": "Github username",
}

func message(fe validator.FieldError) string {
	label, ok := labels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " field is required"
	case "min", "max":
		if fe.Kind() == reflect.Slice || (fe.Tag() == "min" && fe.Param() == "1") {
			return label + " field is required"
		}
		return betweenMessage(label, fe)
	case "email":
		return label + " is invalid"
	case "url":
		return "Not a valid URL"
	case "eqfield":
		return "Passwords must match"
	case "date":
		return label + " must be a date (YYYY-MM-DD)"
	default:
		return label + " is invalid"
	}
}

var bounds = map[string][2]string{
	"name":     {"2", "30"},
	"password": {"6", "30"},
	"handle":   {"2", "40"},
	"text":     {"10", "300"},
}

func betweenMessage(label string, fe validator.FieldError) string {
	if b, ok := bounds[fe.Field()]; ok {
		return fmt.Sprintf("%s must be between %s and %s characters", label, b[0], b[1])
	}
	return fmt.Sprintf("%s has an invalid length", label)
}
