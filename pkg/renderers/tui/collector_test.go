package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fileform/pkg/form"
	"github.com/goliatone/go-fileform/pkg/schema"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	infoMessages []string
	inputPos     int
	passPos      int
	selectPos    int
	multiPos     int
	confirmPos   int

	inputConfigs  []InputConfig
	passConfigs   []InputConfig
	selectConfigs []SelectConfig
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.passConfigs = append(s.passConfigs, cfg)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestCollect_AllKinds(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"example.org"},
		passwords: []string{"s3cret"},
		selectIdx: []int{1},
		multiIdx:  [][]int{{0, 2}},
	}
	c := New(WithPromptDriver(driver), WithTheme(Theme{TitlePrefix: "# "}))

	desc := form.Descriptor{
		ID:   "fileForm_site",
		Name: "site",
		Fields: []form.Widget{
			{Name: "host", Kind: schema.KindText, Label: "Host", Description: "Public host", Default: "localhost", HasDefault: true},
			{Name: "secret", Kind: schema.KindPassword, Label: "Secret"},
			{Name: "mode", Kind: schema.KindSingleChoice, Label: "Mode", Options: []string{"live", "sandbox"}, Default: "sandbox", HasDefault: true},
			{Name: "features", Kind: schema.KindMultiChoice, Label: "Features", Options: []string{"a", "b", "c"}, Default: "b", HasDefault: true},
		},
	}

	got, err := c.Collect(context.Background(), desc)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := map[string]string{"host": "example.org", "secret": "s3cret", "mode": "sandbox", "features": "a,c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"# site"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if cfg := driver.inputConfigs[0]; cfg.Default != "localhost" || cfg.Help != "Public host" {
		t.Fatalf("unexpected input config: %+v", cfg)
	}
	if cfg := driver.selectConfigs[0]; cfg.DefaultIndex != 1 {
		t.Fatalf("expected select default index 1, got %d", cfg.DefaultIndex)
	}
	if diff := cmp.Diff([]int{1}, driver.selectConfigs[1].Defaults); diff != "" {
		t.Fatalf("multi-select defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_PasswordKeepsPriorOnEmpty(t *testing.T) {
	driver := &stubDriver{passwords: []string{""}}
	c := New(WithPromptDriver(driver))

	desc := form.Descriptor{Fields: []form.Widget{
		{Name: "apiKey", Kind: schema.KindPassword, Label: "API key", Default: "abc'123", HasDefault: true},
	}}
	got, err := c.Collect(context.Background(), desc)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got["apiKey"] != "abc'123" {
		t.Fatalf("expected prior secret to be kept, got %q", got["apiKey"])
	}
	if driver.passConfigs[0].Help == "" {
		t.Fatalf("expected help to mention keeping the current value")
	}
}

func TestCollect_RequiredValidator(t *testing.T) {
	driver := &stubDriver{inputs: []string{"x"}}
	c := New(WithPromptDriver(driver), WithRequired(true))

	desc := form.Descriptor{Fields: []form.Widget{{Name: "a", Kind: schema.KindText, Label: "A"}}}
	if _, err := c.Collect(context.Background(), desc); err != nil {
		t.Fatalf("collect: %v", err)
	}
	validator := driver.inputConfigs[0].Validator
	if validator == nil {
		t.Fatalf("expected validator for required field")
	}
	if validator("") == nil || validator("ok") != nil {
		t.Fatalf("validator does not reject empty answers")
	}
}

func TestCollect_Errors(t *testing.T) {
	c := New(WithPromptDriver(&stubDriver{}))
	desc := form.Descriptor{Fields: []form.Widget{{Name: "mode", Kind: schema.KindSingleChoice, Label: "Mode"}}}
	if _, err := c.Collect(context.Background(), desc); !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Collect(ctx, form.Descriptor{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestCollect_FeedsSession(t *testing.T) {
	ctx := context.Background()
	session := form.NewSession()
	desc := form.Descriptor{ID: "fileForm_x", Fields: []form.Widget{{Name: "a", Kind: schema.KindText, Label: "A"}}}
	if err := session.RegisterForm(desc); err != nil {
		t.Fatalf("register: %v", err)
	}

	c := New(WithPromptDriver(&stubDriver{inputs: []string{"value"}}))
	if err := session.Collect(ctx, c); err != nil {
		t.Fatalf("collect: %v", err)
	}
	values, err := session.Values(ctx, desc.ID)
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if values["a"] != "value" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestConfirm(t *testing.T) {
	c := New(WithPromptDriver(&stubDriver{confirm: []bool{true}}))
	ok, err := c.Confirm(context.Background(), "Remove?", false)
	if err != nil || !ok {
		t.Fatalf("unexpected confirm result %v, %v", ok, err)
	}
}
