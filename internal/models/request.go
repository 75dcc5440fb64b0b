package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amosWeiskopf/linksmith/pkg/utils"
)

// Format selects the serialization of the link file
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported output format
var Formats = []Format{FormatCSV, FormatJSON, FormatMarkdown}

// ExtractionRequest holds everything one extraction needs. It is built once
// from flags and config and never mutated afterwards.
type ExtractionRequest struct {
	URL          string `validate:"required,weburl"`
	OutputFolder string `validate:"required"`
	Filename     string `validate:"required"`
	MaxLinks     int    `validate:"gt=0"`
	Format       Format `validate:"omitempty,oneof=csv json markdown"`
}

// DestinationPath joins the output folder and filename
func (r ExtractionRequest) DestinationPath() string {
	return filepath.Join(r.OutputFolder, r.Filename)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		return utils.IsWebURL(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register weburl validation: %v", err))
	}
	return v
}

// Validate checks the request before it reaches the extractor
func (r ExtractionRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "weburl":
		return fmt.Sprintf("%s must be an absolute http or https URL", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
