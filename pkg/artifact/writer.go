package artifact

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goliatone/go-fileform/pkg/schema"
)

// HeaderTimeFormat is the layout of the generation timestamp in the header
// comment (RFC 2822, always UTC).
const HeaderTimeFormat = "Mon, 02 Jan 2006 15:04:05 -0700"

// DefaultPerm is applied to new artifacts before they become visible.
const DefaultPerm fs.FileMode = 0o644

// Value is one collected field value. Slices of Value keep schema order.
type Value struct {
	Name  string
	Value string
}

// OrderedValues returns the values for names in order, using "" for names
// missing from values.
func OrderedValues(names []string, values map[string]string) []Value {
	out := make([]Value, len(names))
	for i, name := range names {
		out[i] = Value{Name: name, Value: values[name]}
	}
	return out
}

// Encode writes the artifact body for values to w.
func Encode(w io.Writer, syntax schema.Syntax, values []Value, generatedAt time.Time) error {
	if !syntax.Valid() {
		return fmt.Errorf("artifact: unsupported syntax %s", syntax)
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "<?php\n/**\n* generated at %s\n*/\n", generatedAt.UTC().Format(HeaderTimeFormat))
	if syntax == schema.SyntaxAssocArray {
		bw.WriteString("return [\n")
	}

	for _, v := range values {
		escaped := Escape(v.Value)
		switch syntax {
		case schema.SyntaxConstants:
			name := ConstantName(v.Name)
			fmt.Fprintf(bw, "if (!defined('%s')) define('%s', '%s');\n", name, name, escaped)
		case schema.SyntaxVariables:
			fmt.Fprintf(bw, "$%s = '%s';\n", VariableName(v.Name), escaped)
		case schema.SyntaxAssocArray:
			fmt.Fprintf(bw, "    '%s' => '%s',\n", v.Name, escaped)
		}
	}

	if syntax == schema.SyntaxAssocArray {
		bw.WriteString("];")
	}
	bw.WriteString("\n")
	return bw.Flush()
}

// tempFile is the subset of *os.File used while writing.
type tempFile interface {
	io.Writer
	Name() string
	Sync() error
	Close() error
	Chmod(mode fs.FileMode) error
}

// Writer writes artifacts atomically: content goes to a temporary file in
// the target directory which is renamed over the target once complete.
type Writer struct {
	now        func() time.Time
	perm       fs.FileMode
	createTemp func(dir, pattern string) (tempFile, error)
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock overrides the clock used for the header timestamp.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithPerm overrides the permissions of written artifacts.
func WithPerm(perm fs.FileMode) Option {
	return func(w *Writer) {
		if perm != 0 {
			w.perm = perm
		}
	}
}

// NewWriter constructs a Writer.
func NewWriter(options ...Option) *Writer {
	w := &Writer{
		now:  time.Now,
		perm: DefaultPerm,
		createTemp: func(dir, pattern string) (tempFile, error) {
			return os.CreateTemp(dir, pattern)
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Write serializes values to path. On error the previous content of path,
// if any, is unchanged and no temporary file is left behind.
func (w *Writer) Write(ctx context.Context, path string, syntax schema.Syntax, values []Value) (rerr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Kind: IOFailure, Path: path, Err: err}
	}

	f, err := w.createTemp(dir, ".fileform-*")
	if err != nil {
		return &WriteError{Kind: IOFailure, Path: path, Err: err}
	}
	tmpPath := f.Name()
	closed := false
	defer func() {
		if rerr == nil {
			return
		}
		if !closed {
			f.Close()
		}
		os.Remove(tmpPath)
	}()

	if err := Encode(f, syntax, values, w.now()); err != nil {
		return &WriteError{Kind: IOFailure, Path: path, Err: err}
	}
	if err := f.Chmod(w.perm); err != nil {
		return &WriteError{Kind: IOFailure, Path: path, Err: err}
	}
	if err := f.Sync(); err != nil {
		return &WriteError{Kind: IOFailure, Path: path, Err: err}
	}
	closed = true
	if err := f.Close(); err != nil {
		return &WriteError{Kind: IOFailure, Path: path, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &WriteError{Kind: RenameFailure, Path: path, Err: err}
	}
	// The artifact is complete at this point; a failed directory sync only
	// weakens durability across a crash.
	_ = syncDir(dir)
	return nil
}

// syncDir makes the rename durable.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open directory: %w", err)
	}
	err = d.Sync()
	if xerr := d.Close(); err == nil {
		err = xerr
	}
	return err
}
