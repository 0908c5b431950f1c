package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/utils"
)

// SurveyPrompter asks questions on the terminal.
// Invalid answers are rejected in place and the question is asked again.
type SurveyPrompter struct {
	opts        []survey.AskOpt
	interactive func() bool
}

// NewSurveyPrompter creates a SurveyPrompter; opts are passed to every survey.AskOne call
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts, interactive: utils.IsInteractive}
}

// Ask asks each field in order
func (p *SurveyPrompter) Ask(fields ...Field) (Answers, error) {
	if !p.interactive() {
		return nil, fmt.Errorf("cannot ask for %s: %w", fieldNames(fields), fferrors.ErrInteractiveDisabled)
	}

	answers := make(Answers, len(fields))
	for _, field := range fields {
		value, err := p.askOne(field)
		if err != nil {
			return nil, err
		}
		answers[field.Name] = value
	}
	return answers, nil
}

func (p *SurveyPrompter) askOne(field Field) (string, error) {
	var question survey.Prompt
	if field.Hidden {
		question = &survey.Password{Message: field.Message}
	} else {
		question = &survey.Input{Message: field.Message, Default: field.Default}
	}

	validator := func(ans interface{}) error {
		s, _ := ans.(string)
		return Validate(field, field.Resolve(s))
	}

	opts := append([]survey.AskOpt{survey.WithValidator(validator)}, p.opts...)

	var value string
	if err := survey.AskOne(question, &value, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", fferrors.NewUserAbortError("Prompt interrupted")
		}
		return "", fmt.Errorf("failed to read %s: %w", field.Name, err)
	}

	return field.Resolve(value), nil
}

func fieldNames(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}
