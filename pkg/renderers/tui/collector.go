package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-fileform/pkg/form"
	"github.com/goliatone/go-fileform/pkg/schema"
)

// Collector prompts for every widget of a form descriptor in a terminal.
type Collector struct {
	driver   PromptDriver
	theme    Theme
	pageSize int
	required bool
}

var _ form.Collector = (*Collector)(nil)

// New constructs a terminal collector using the survey driver unless
// another driver is supplied.
func New(options ...Option) *Collector {
	c := &Collector{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

// Collect prompts for each widget in order and returns the answers keyed by
// field name. Multi-choice answers are joined with form.MultiValueSeparator.
func (c *Collector) Collect(ctx context.Context, desc form.Descriptor) (map[string]string, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if desc.Name != "" {
		if err := c.driver.Info(ctx, c.theme.TitlePrefix+desc.Name); err != nil {
			return nil, err
		}
	}

	values := make(map[string]string, len(desc.Fields))
	for _, w := range desc.Fields {
		value, err := c.prompt(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("tui: field %s: %w", w.Name, err)
		}
		values[w.Name] = value
	}
	return values, nil
}

// Confirm asks a yes/no question.
func (c *Collector) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	return c.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
}

func (c *Collector) prompt(ctx context.Context, w form.Widget) (string, error) {
	switch w.Kind {
	case schema.KindPassword:
		return c.promptPassword(ctx, w)
	case schema.KindSingleChoice:
		return c.promptSelect(ctx, w)
	case schema.KindMultiChoice:
		return c.promptMultiSelect(ctx, w)
	default:
		cfg := InputConfig{Message: w.Label, Help: w.Description, Default: w.Default}
		if c.required && !w.HasDefault {
			cfg.Validator = requireValue
		}
		return c.driver.Input(ctx, cfg)
	}
}

// promptPassword never echoes the previous secret; an empty answer keeps it.
func (c *Collector) promptPassword(ctx context.Context, w form.Widget) (string, error) {
	help := w.Description
	if w.HasDefault && w.Default != "" {
		if help != "" {
			help += " "
		}
		help += "(leave empty to keep the current value)"
	}
	cfg := InputConfig{Message: w.Label, Help: help}
	if c.required && !w.HasDefault {
		cfg.Validator = requireValue
	}
	value, err := c.driver.Password(ctx, cfg)
	if err != nil {
		return "", err
	}
	if value == "" && w.HasDefault {
		return w.Default, nil
	}
	return value, nil
}

func (c *Collector) promptSelect(ctx context.Context, w form.Widget) (string, error) {
	if len(w.Options) == 0 {
		return "", ErrNoOptions
	}
	cfg := SelectConfig{
		Message:      w.Label,
		Options:      w.Options,
		Help:         w.Description,
		PageSize:     c.pageSize,
		DefaultIndex: -1,
	}
	selected := w.Selected()
	for i, option := range w.Options {
		if selected[option] {
			cfg.DefaultIndex = i
			break
		}
	}
	idx, err := c.driver.Select(ctx, cfg)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(w.Options) {
		return "", fmt.Errorf("tui: selection %d out of range", idx)
	}
	return w.Options[idx], nil
}

func (c *Collector) promptMultiSelect(ctx context.Context, w form.Widget) (string, error) {
	if len(w.Options) == 0 {
		return "", ErrNoOptions
	}
	cfg := SelectConfig{
		Message:  w.Label,
		Options:  w.Options,
		Help:     w.Description,
		PageSize: c.pageSize,
	}
	selected := w.Selected()
	for i, option := range w.Options {
		if selected[option] {
			cfg.Defaults = append(cfg.Defaults, i)
		}
	}
	indices, err := c.driver.MultiSelect(ctx, cfg)
	if err != nil {
		return "", err
	}
	picked := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(w.Options) {
			return "", fmt.Errorf("tui: selection %d out of range", idx)
		}
		picked = append(picked, w.Options[idx])
	}
	return form.JoinMulti(picked), nil
}

func requireValue(value string) error {
	if value == "" {
		return errors.New("a value is required")
	}
	return nil
}
