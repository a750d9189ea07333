// Package bookkeeping tracks which generated artifacts belong to which
// package so uninstall can remove them.
package bookkeeping

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-fileform/pkg/schema"
)

// ErrNotFound is returned by Get for unknown file names.
var ErrNotFound = errors.New("bookkeeping: record not found")

// Record ties an artifact to the package that created it. FileName is
// unique across all packages.
type Record struct {
	FileName  string
	PackageID int64 `bstore:"index"`
	FileType  int
	Updated   time.Time
}

// Syntax returns the artifact syntax the record was written with.
func (r Record) Syntax() schema.Syntax {
	return schema.Syntax(r.FileType)
}

// Store is the bookkeeping contract used by the installer.
type Store interface {
	// Create registers r, replacing any record for the same file name.
	Create(ctx context.Context, r Record) error
	// Get returns the record for fileName or ErrNotFound.
	Get(ctx context.Context, fileName string) (Record, error)
	// FindByPackage lists the records of a package ordered by file name.
	FindByPackage(ctx context.Context, packageID int64) ([]Record, error)
	// DeleteAll removes the records for fileNames. Unknown names are ignored.
	DeleteAll(ctx context.Context, fileNames []string) error
}
