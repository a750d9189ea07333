package schema

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultInstruction is the schema file looked up when an installation
// instruction does not name one.
const DefaultInstruction = "fileForm.xml"

// Source supplies schema documents from a package. It is the package
// transport seen by the installer.
type Source interface {
	// Open returns the bytes of the named document. A missing document is
	// reported as a *SourceError wrapping fs.ErrNotExist.
	Open(ctx context.Context, name string) ([]byte, error)
	// Location describes the package for error messages.
	Location() string
}

// Load reads and parses the named schema from src.
func Load(ctx context.Context, src Source, name string) (FormSchema, error) {
	if src == nil {
		return FormSchema{}, errors.New("schema: source is nil")
	}
	data, err := src.Open(ctx, name)
	if err != nil {
		return FormSchema{}, err
	}
	return Parse(data)
}

// IsValidInstruction reports whether name (or DefaultInstruction when empty)
// is an XML document present in src.
func IsValidInstruction(ctx context.Context, src Source, name string) bool {
	if strings.TrimSpace(name) == "" {
		name = DefaultInstruction
	}
	if !strings.HasSuffix(name, ".xml") || src == nil {
		return false
	}
	_, err := src.Open(ctx, name)
	return err == nil
}

type fsSource struct {
	fsys     fs.FS
	location string
}

// FSSource returns a Source reading documents from fsys.
func FSSource(fsys fs.FS, location string) Source {
	return fsSource{fsys: fsys, location: location}
}

// DirSource returns a Source reading documents below dir, typically an
// extracted package.
func DirSource(dir string) Source {
	clean := filepath.Clean(dir)
	return fsSource{fsys: os.DirFS(clean), location: clean}
}

func (s fsSource) Location() string {
	return s.location
}

func (s fsSource) Open(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.fsys == nil {
		return nil, &SourceError{Name: name, Location: s.location, Err: errors.New("fs is nil")}
	}
	clean, err := cleanName(name)
	if err != nil {
		return nil, &SourceError{Name: name, Location: s.location, Err: err}
	}
	data, err := fs.ReadFile(s.fsys, clean)
	if err != nil {
		return nil, &SourceError{Name: name, Location: s.location, Err: err}
	}
	return data, nil
}

type tarSource struct {
	path string
}

// TarSource returns a Source reading documents from a package archive. Both
// plain and gzip-compressed tar files are accepted.
func TarSource(archive string) Source {
	return tarSource{path: filepath.Clean(archive)}
}

func (s tarSource) Location() string {
	return s.path
}

func (s tarSource) Open(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want, err := cleanName(name)
	if err != nil {
		return nil, &SourceError{Name: name, Location: s.path, Err: err}
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &SourceError{Name: name, Location: s.path, Err: err}
	}
	defer f.Close()

	r, err := archiveReader(f)
	if err != nil {
		return nil, &SourceError{Name: name, Location: s.path, Err: err}
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &SourceError{Name: name, Location: s.path, Err: fmt.Errorf("read archive: %w", err)}
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		entry, err := cleanName(hdr.Name)
		if err != nil || entry != want {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, &SourceError{Name: name, Location: s.path, Err: fmt.Errorf("extract: %w", err)}
		}
		return data, nil
	}
	return nil, &SourceError{Name: name, Location: s.path, Err: fs.ErrNotExist}
}

func archiveReader(f *os.File) (io.Reader, error) {
	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}

func cleanName(name string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(filepath.ToSlash(name)), "./")
	if trimmed == "" {
		return "", errors.New("empty file name")
	}
	clean := path.Clean(trimmed)
	if !fs.ValidPath(clean) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return clean, nil
}
