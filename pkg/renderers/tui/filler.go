// Package tui walks a form session from a terminal: one prompt per field,
// incremental validation on every answer, and an authoritative submit at the
// end. The prompt driver is a seam so tests can script the interaction.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/session"
)

// Option customises the filler.
type Option func(*Filler)

// WithDriver swaps the prompt driver. Tests use a scripted implementation.
func WithDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithOutput redirects status output (defaults to stdout).
func WithOutput(out io.Writer) Option {
	return func(f *Filler) {
		if out != nil {
			f.out = out
		}
	}
}

// Filler drives an interactive fill of one form session.
type Filler struct {
	driver PromptDriver
	out    io.Writer
}

// New constructs a Filler with the survey-backed driver by default.
func New(options ...Option) *Filler {
	f := &Filler{driver: newSurveyDriver(), out: os.Stdout}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Fill prompts for every field in display order, then submits the session to
// the authoritative collaborator. On rejection the issue list is printed and
// ErrRejected from the session is returned; on acceptance the collected
// value map is returned.
func (f *Filler) Fill(ctx context.Context, sess *session.Session, submit session.SubmitFunc) (map[string]any, error) {
	if sess == nil {
		return nil, errors.New("tui: session is required")
	}

	for _, field := range sess.Fields() {
		if err := f.promptField(ctx, sess, field); err != nil {
			return nil, err
		}
	}

	err := sess.Submit(ctx, submit)
	if errors.Is(err, session.ErrRejected) {
		fmt.Fprintln(f.out, "Submission rejected:")
		for _, issue := range sess.DocumentIssues() {
			if issue.Path != "" {
				fmt.Fprintf(f.out, "  %s: %s\n", issue.Path, issue.Message)
				continue
			}
			fmt.Fprintf(f.out, "  %s\n", issue.Message)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(f.out, "Form submitted successfully!")
	sess.Acknowledge()
	return sess.Values(), nil
}

func (f *Filler) promptField(ctx context.Context, sess *session.Session, field form.Field) error {
	switch field.Kind {
	case form.KindCheckbox:
		answer, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Label,
			Help:    field.Description,
		})
		if err != nil {
			return err
		}
		return sess.SetValue(field.Name, answer)

	case form.KindSelect:
		options := make([]string, 0, len(field.Options))
		for _, option := range field.Options {
			options = append(options, fmt.Sprint(option))
		}
		index, err := f.driver.Select(ctx, SelectConfig{
			Message: field.Label,
			Help:    field.Description,
			Options: options,
		})
		if err != nil {
			return err
		}
		if index < 0 || index >= len(field.Options) {
			return fmt.Errorf("tui: select index %d out of range for %q", index, field.Name)
		}
		return sess.SetValue(field.Name, field.Options[index])

	case form.KindPassword:
		answer, err := f.driver.Password(ctx, InputConfig{
			Message:   field.Label,
			Help:      field.Description,
			Validator: fieldValidator(field),
		})
		if err != nil {
			return err
		}
		return setIfPresent(sess, field, answer)

	case form.KindNumber:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message:   field.Label,
			Help:      field.Description,
			Validator: fieldValidator(field),
		})
		if err != nil {
			return err
		}
		if answer == "" {
			return setIfPresent(sess, field, answer)
		}
		number, parseErr := strconv.ParseFloat(answer, 64)
		if parseErr != nil {
			return sess.SetValue(field.Name, answer)
		}
		return sess.SetValue(field.Name, number)

	default:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message:   field.Label,
			Help:      field.Description,
			Validator: fieldValidator(field),
		})
		if err != nil {
			return err
		}
		return setIfPresent(sess, field, answer)
	}
}

// setIfPresent leaves empty optional answers out of the payload entirely so
// the strict document layer never sees an empty string for a typed property.
func setIfPresent(sess *session.Session, field form.Field, answer string) error {
	if answer == "" && !field.Required {
		return nil
	}
	return sess.SetValue(field.Name, answer)
}

func fieldValidator(field form.Field) func(string) error {
	return func(answer string) error {
		if message := form.ValidateField(answer, field); message != "" {
			return errors.New(message)
		}
		return nil
	}
}
