// Package prompt collects interactive input for feature actions.
//
// Every prompter validates answers with Validate, so scripted prompters in
// tests and the survey prompter in a terminal accept exactly the same input.
package prompt

import (
	"fmt"
	"regexp"

	fferrors "featureflow.dev/featureflow/internal/errors"
)

// Field describes a single question
type Field struct {
	Name     string
	Message  string
	Pattern  *regexp.Regexp
	Warning  string
	Required bool
	Default  string
	Hidden   bool
}

// Answers maps field names to the accepted values
type Answers map[string]string

// Prompter asks a set of questions and returns only valid answers
type Prompter interface {
	Ask(fields ...Field) (Answers, error)
}

// YesNoPattern accepts the answers of a yes/no confirmation
var YesNoPattern = regexp.MustCompile(`^(y|yes|n|no)$`)

// Resolve applies the field's default to an empty answer
func (f Field) Resolve(value string) string {
	if value == "" {
		return f.Default
	}
	return value
}

// Validate checks a resolved answer against the field's rules
func Validate(field Field, value string) error {
	if value == "" {
		if field.Required {
			return fferrors.NewValidationError(field.Name, value, fmt.Sprintf("%s is required", field.Name))
		}
		return nil
	}

	if field.Pattern != nil && !field.Pattern.MatchString(value) {
		message := field.Warning
		if message == "" {
			message = fmt.Sprintf("%s must match %s", field.Name, field.Pattern.String())
		}
		return fferrors.NewValidationError(field.Name, value, message)
	}

	return nil
}

// Confirm builds a yes/no question that defaults to "no"
func Confirm(name, message string) Field {
	return Field{
		Name:    name,
		Message: message,
		Pattern: YesNoPattern,
		Warning: "Please answer yes or no",
		Default: "no",
	}
}

// IsYes reports whether a confirmation answer allows the action to continue
func IsYes(answer string) bool {
	return answer == "yes" || answer == "y"
}
