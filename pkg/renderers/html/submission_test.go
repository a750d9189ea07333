package html

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSubmission(t *testing.T) {
	posted := url.Values{
		"host":     {"example.org\r\nsecond"},
		"apiKey":   {""},
		"mode":     {"live"},
		"features": {"b", "a"},
		"ignored":  {"x"},
	}
	got, err := ParseSubmission(sampleDescriptor(), posted)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]string{
		"host":     "example.org\nsecond",
		"apiKey":   "abc'123",
		"mode":     "live",
		"features": "a,b",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSubmission_AbsentFields(t *testing.T) {
	got, err := ParseSubmission(sampleDescriptor(), url.Values{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]string{"host": "", "apiKey": "abc'123", "mode": "", "features": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSubmission_InvalidChoice(t *testing.T) {
	for _, posted := range []url.Values{
		{"mode": {"staging"}},
		{"features": {"a", "z"}},
	} {
		_, err := ParseSubmission(sampleDescriptor(), posted)
		var choiceErr *InvalidChoiceError
		if !errors.As(err, &choiceErr) {
			t.Fatalf("expected InvalidChoiceError for %v, got %v", posted, err)
		}
	}
}
