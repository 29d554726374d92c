package terminal

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/LyzrCore/spaces/pkg/ui"
)

// Prompter asks for a form's fields one by one in declared order.
type Prompter struct {
	driver PromptDriver
}

// NewPrompter builds a prompter. Without WithPromptDriver it uses survey on
// the real terminal.
func NewPrompter(options ...Option) *Prompter {
	cfg := applyOptions(options)
	driver := cfg.driver
	if driver == nil {
		out := cfg.out
		if out == nil {
			out = os.Stdout
		}
		driver = NewSurveyDriver(out)
	}
	return &Prompter{driver: driver}
}

// Prompt collects a value for every field of form keyed by field key, then
// asks for confirmation. Field values already set on the form become prompt
// defaults.
func (p *Prompter) Prompt(ctx context.Context, form ui.Form) (map[string]string, error) {
	if len(form.Fields) == 0 {
		return nil, ErrNoFields
	}
	if form.Title != "" {
		if err := p.driver.Info(ctx, form.Title); err != nil {
			return nil, err
		}
	}

	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		value, err := p.ask(ctx, field)
		if err != nil {
			return nil, fmt.Errorf("prompt %s: %w", field.Key, err)
		}
		values[field.Key] = value
	}

	label := strings.TrimSpace(form.Submit.Label)
	if label == "" {
		label = "Submit"
	}
	ok, err := p.driver.Confirm(ctx, ConfirmConfig{Message: label + "?", Default: true})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDeclined
	}
	return values, nil
}

func (p *Prompter) ask(ctx context.Context, field ui.Field) (string, error) {
	message := field.Label
	if message == "" {
		message = field.Key
	}

	switch field.Type {
	case ui.FieldSelect:
		if len(field.Options) == 0 {
			return "", fmt.Errorf("select %q has no options", field.Key)
		}
		idx, err := p.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: max(indexOf(field.Options, field.Value), 0),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", fmt.Errorf("select %q returned index %d", field.Key, idx)
		}
		return field.Options[idx], nil
	case ui.FieldTextarea:
		value, err := p.driver.TextArea(ctx, TextAreaConfig{
			Message:   message,
			Default:   field.Value,
			Help:      field.Placeholder,
			Validator: validator(field),
		})
		return strings.TrimSpace(value), err
	default:
		value, err := p.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   field.Value,
			Help:      field.Placeholder,
			Validator: validator(field),
		})
		return strings.TrimSpace(value), err
	}
}

// validator enforces required fields and numeric input. The check runs inside
// the driver so the user is re-prompted instead of the whole form failing.
func validator(field ui.Field) func(string) error {
	label := strings.TrimSpace(strings.TrimSuffix(field.Label, "*"))
	if label == "" {
		label = field.Key
	}
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			if field.Required {
				return fmt.Errorf("%s is required", label)
			}
			return nil
		}
		if field.Type == ui.FieldNumber {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return fmt.Errorf("%s must be a number", label)
			}
		}
		return nil
	}
}
