package form

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSession_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewSession(WithSessionID("install-1"))
	if s.ID() != "install-1" {
		t.Fatalf("unexpected session id %q", s.ID())
	}

	if _, ok := s.FindForm("fileForm_api"); ok {
		t.Fatalf("expected no form before registration")
	}
	if _, err := s.Values(ctx, "fileForm_api"); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}

	desc := Descriptor{ID: "fileForm_api", Fields: []Widget{{Name: "apiKey"}, {Name: "enabled"}}}
	if err := s.RegisterForm(desc); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := s.FindForm(desc.ID); !ok {
		t.Fatalf("expected registered form")
	}
	if _, err := s.Values(ctx, desc.ID); !errors.Is(err, ErrNotSubmitted) {
		t.Fatalf("expected ErrNotSubmitted, got %v", err)
	}

	if err := s.Submit(desc.ID, map[string]string{"apiKey": "k", "unknown": "x"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got, err := s.Values(ctx, desc.ID)
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"apiKey": "k"}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	got["apiKey"] = "mutated"
	again, _ := s.Values(ctx, desc.ID)
	if again["apiKey"] != "k" {
		t.Fatalf("values were not copied")
	}

	s.Forget(desc.ID)
	if _, ok := s.FindForm(desc.ID); ok {
		t.Fatalf("expected form to be forgotten")
	}
}

func TestSession_RegisterRequiresID(t *testing.T) {
	if err := NewSession().RegisterForm(Descriptor{}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestSession_SubmitUnknown(t *testing.T) {
	if err := NewSession().Submit("missing", nil); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestSession_CollectPending(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	_ = s.RegisterForm(Descriptor{ID: "b", Fields: []Widget{{Name: "x"}}})
	_ = s.RegisterForm(Descriptor{ID: "a", Fields: []Widget{{Name: "x"}}})

	var order []string
	collector := CollectorFunc(func(_ context.Context, desc Descriptor) (map[string]string, error) {
		order = append(order, desc.ID)
		return map[string]string{"x": desc.ID}, nil
	})
	if err := s.Collect(ctx, collector); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, order); diff != "" {
		t.Fatalf("collect order mismatch (-want +got):\n%s", diff)
	}
	values, err := s.Values(ctx, "b")
	if err != nil || values["x"] != "b" {
		t.Fatalf("unexpected values %v, err %v", values, err)
	}

	// Submitted forms are not collected again.
	order = nil
	if err := s.Collect(ctx, collector); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(order) != 0 {
		t.Fatalf("expected no prompts, got %v", order)
	}
}

func TestSession_CollectError(t *testing.T) {
	s := NewSession()
	_ = s.RegisterForm(Descriptor{ID: "a"})
	boom := errors.New("boom")
	err := s.Collect(context.Background(), CollectorFunc(func(context.Context, Descriptor) (map[string]string, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped collector error, got %v", err)
	}
}
