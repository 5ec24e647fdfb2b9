// Package validation checks untrusted visitor and settings input.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/welcomedesk/visitors/internal/apperror"
	"github.com/welcomedesk/visitors/internal/models"
)

var hexColorRE = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// notBlank rejects strings that are empty after trimming whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// hexColor accepts exactly #RRGGBB.
func hexColor(fl validator.FieldLevel) bool {
	return hexColorRE.MatchString(fl.Field().String())
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, fn := range map[string]validator.Func{
		"notblank":  notBlank,
		"hexcolor6": hexColor,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return v
}

var messages = map[string]string{
	"fullName.required":      "Full name is required",
	"fullName.notblank":      "Full name is required",
	"ageGroup.required":      "Age group is required",
	"ageGroup.oneof":         "Age group must be one of children, youth, young_adult, adult, senior",
	"language.required":      "Language is required",
	"language.oneof":         "Language must be en or es",
	"name.required":          "Church name is required",
	"name.notblank":          "Church name is required",
	"subtitle.required":      "Subtitle is required",
	"subtitle.notblank":      "Subtitle is required",
	"primaryColor.required":  "Primary color is required",
	"primaryColor.hexcolor6": "Invalid color format",
}

// NormEmail trims and lowercases a routing address. Empty stays empty.
// Visitor emails are only trimmed; what the visitor typed is kept.
func NormEmail(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// ValidateVisitor turns raw form input into a Visitor without id or
// submission date. lang is the caller's active language, used when the
// payload leaves language empty.
func ValidateVisitor(in models.VisitorInput, lang string) (models.Visitor, error) {
	v := models.Visitor{
		FullName:  in.FullName,
		Phone:     in.Phone,
		Email:     strings.TrimSpace(in.Email),
		AgeGroup:  in.AgeGroup,
		City:      in.City,
		HearAbout: in.HearAbout,
		Notes:     in.Notes,
		Language:  in.Language,
	}
	if in.IsFirstTime != nil {
		v.IsFirstTime = *in.IsFirstTime
	}
	if v.Language == "" {
		v.Language = lang
	}
	if err := check(v); err != nil {
		return models.Visitor{}, err
	}
	return v, nil
}

// ValidateSettings checks a partial or full settings update. Omitted fields
// take their defaults for the check, so only supplied fields can fail.
func ValidateSettings(p models.SettingsPatch) (models.SettingsPatch, error) {
	if ne := p.NotificationEmails; ne != nil {
		for _, s := range []*string{ne.Children, ne.Youth, ne.YoungAdult, ne.Adult, ne.Senior} {
			if s != nil {
				*s = NormEmail(*s)
			}
		}
	}
	if err := check(p.ApplyTo(models.DefaultChurchSettings())); err != nil {
		return models.SettingsPatch{}, err
	}
	return p, nil
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &apperror.ValidationError{}
	for _, fe := range ves {
		field := fieldPath(fe.Namespace())
		out.Fields = append(out.Fields, apperror.FieldError{
			Field:   field,
			Message: message(field, fe.Tag()),
		})
	}
	return out
}

// fieldPath drops the root struct name: "Visitor.fullName" -> "fullName".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	if tag == "email" {
		return "Invalid email address"
	}
	return fmt.Sprintf("%s is invalid", field)
}
