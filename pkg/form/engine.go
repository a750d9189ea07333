package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrFormNotFound is returned for identifiers that were never registered.
	ErrFormNotFound = errors.New("form: form not found")
	// ErrNotSubmitted is returned by Values while a form awaits submission.
	ErrNotSubmitted = errors.New("form: form not submitted")
)

// Engine renders registered forms and returns what the user submitted.
type Engine interface {
	FindForm(id string) (Descriptor, bool)
	RegisterForm(desc Descriptor) error
	Values(ctx context.Context, id string) (map[string]string, error)
}

// Submitter accepts collected values for a registered form.
type Submitter interface {
	Submit(id string, values map[string]string) error
}

// Collector gathers values for a descriptor, typically by prompting a user.
type Collector interface {
	Collect(ctx context.Context, desc Descriptor) (map[string]string, error)
}

// CollectorFunc adapts a function to Collector.
type CollectorFunc func(ctx context.Context, desc Descriptor) (map[string]string, error)

// Collect calls f.
func (f CollectorFunc) Collect(ctx context.Context, desc Descriptor) (map[string]string, error) {
	return f(ctx, desc)
}

type entry struct {
	desc      Descriptor
	values    map[string]string
	submitted bool
}

// Session is an in-memory Engine. It is safe for concurrent use.
type Session struct {
	id     string
	logger *slog.Logger

	mu    sync.Mutex
	forms map[string]*entry
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionID pins the session identifier. A random UUID is used by
// default.
func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithSessionLogger sets the logger used for session events.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession constructs an empty Session.
func NewSession(options ...SessionOption) *Session {
	s := &Session{
		id:     uuid.NewString(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		forms:  make(map[string]*entry),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// FindForm returns the registered descriptor for id.
func (s *Session) FindForm(id string) (Descriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.forms[id]
	if !ok {
		return Descriptor{}, false
	}
	return e.desc, true
}

// RegisterForm stores desc, replacing any previous registration and its
// submitted values.
func (s *Session) RegisterForm(desc Descriptor) error {
	if desc.ID == "" {
		return errors.New("form: descriptor id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[desc.ID] = &entry{desc: desc}
	s.logger.Debug("form registered", "session", s.id, "form", desc.ID, "fields", len(desc.Fields))
	return nil
}

// Submit records values for a registered form. Values for names the form
// does not declare are dropped.
func (s *Session) Submit(id string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.forms[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFormNotFound, id)
	}
	kept := make(map[string]string, len(e.desc.Fields))
	for _, w := range e.desc.Fields {
		if v, ok := values[w.Name]; ok {
			kept[w.Name] = v
		}
	}
	e.values = kept
	e.submitted = true
	s.logger.Debug("form submitted", "session", s.id, "form", id)
	return nil
}

// Values returns a copy of the submitted values for id.
func (s *Session) Values(ctx context.Context, id string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.forms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormNotFound, id)
	}
	if !e.submitted {
		return nil, fmt.Errorf("%w: %s", ErrNotSubmitted, id)
	}
	out := make(map[string]string, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out, nil
}

// Forget drops the registration for id.
func (s *Session) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, id)
}

// Collect prompts for every registered form that has not been submitted yet
// and submits the collected values.
func (s *Session) Collect(ctx context.Context, collector Collector) error {
	s.mu.Lock()
	var pending []Descriptor
	for _, e := range s.forms {
		if !e.submitted {
			pending = append(pending, e.desc)
		}
	}
	s.mu.Unlock()
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })

	for _, desc := range pending {
		values, err := collector.Collect(ctx, desc)
		if err != nil {
			return fmt.Errorf("form: collect %s: %w", desc.ID, err)
		}
		if err := s.Submit(desc.ID, values); err != nil {
			return err
		}
	}
	return nil
}
