package bookkeeping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mjl-/bstore"
)

// DBTypes are the types stored in the bookkeeping database.
var DBTypes = []any{Record{}}

// DB is a Store persisted in a bstore (bbolt) file.
type DB struct {
	db  *bstore.DB
	now func() time.Time
	log *slog.Logger
}

var _ Store = (*DB)(nil)

// DBOption configures a DB.
type DBOption func(*dbConfig)

type dbConfig struct {
	timeout time.Duration
	perm    os.FileMode
	logger  *slog.Logger
	now     func() time.Time
}

// WithTimeout bounds how long Open waits for the database file lock.
func WithTimeout(d time.Duration) DBOption {
	return func(c *dbConfig) {
		c.timeout = d
	}
}

// WithLogger sets the logger for store events and schema upgrades.
func WithLogger(logger *slog.Logger) DBOption {
	return func(c *dbConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the clock used for Record.Updated.
func WithClock(now func() time.Time) DBOption {
	return func(c *dbConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// Open opens or creates the bookkeeping database at path.
func Open(ctx context.Context, path string, options ...DBOption) (*DB, error) {
	cfg := dbConfig{
		timeout: 5 * time.Second,
		perm:    0o660,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o770); err != nil {
		return nil, fmt.Errorf("bookkeeping: create directory: %w", err)
	}
	opts := bstore.Options{Timeout: cfg.timeout, Perm: cfg.perm, RegisterLogger: cfg.logger}
	db, err := bstore.Open(ctx, path, &opts, DBTypes...)
	if err != nil {
		return nil, fmt.Errorf("bookkeeping: open %s: %w", path, err)
	}
	return &DB{db: db, now: cfg.now, log: cfg.logger}, nil
}

// Close closes the database file.
func (d *DB) Close() error {
	return d.db.Close()
}

// Create inserts r or replaces the record with the same file name.
func (d *DB) Create(ctx context.Context, r Record) error {
	if r.FileName == "" {
		return errors.New("bookkeeping: file name is required")
	}
	r.Updated = d.now().UTC()
	err := d.db.Write(ctx, func(tx *bstore.Tx) error {
		existing := Record{FileName: r.FileName}
		err := tx.Get(&existing)
		if err == bstore.ErrAbsent {
			return tx.Insert(&r)
		} else if err != nil {
			return err
		}
		if existing.PackageID != r.PackageID {
			d.log.Warn("artifact changes owner", "file", r.FileName, "from", existing.PackageID, "to", r.PackageID)
		}
		return tx.Update(&r)
	})
	if err != nil {
		return fmt.Errorf("bookkeeping: create %s: %w", r.FileName, err)
	}
	return nil
}

// Get returns the record for fileName.
func (d *DB) Get(ctx context.Context, fileName string) (Record, error) {
	r := Record{FileName: fileName}
	err := d.db.Get(ctx, &r)
	if err == bstore.ErrAbsent {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, fileName)
	} else if err != nil {
		return Record{}, fmt.Errorf("bookkeeping: get %s: %w", fileName, err)
	}
	return r, nil
}

// FindByPackage lists the records of packageID ordered by file name.
func (d *DB) FindByPackage(ctx context.Context, packageID int64) ([]Record, error) {
	records, err := bstore.QueryDB[Record](ctx, d.db).FilterEqual("PackageID", packageID).SortAsc("FileName").List()
	if err != nil {
		return nil, fmt.Errorf("bookkeeping: find package %d: %w", packageID, err)
	}
	return records, nil
}

// DeleteAll removes the records for fileNames in one transaction.
func (d *DB) DeleteAll(ctx context.Context, fileNames []string) error {
	if len(fileNames) == 0 {
		return nil
	}
	err := d.db.Write(ctx, func(tx *bstore.Tx) error {
		for _, name := range fileNames {
			if name == "" {
				continue
			}
			err := tx.Delete(&Record{FileName: name})
			if err == bstore.ErrAbsent {
				continue
			} else if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bookkeeping: delete records: %w", err)
	}
	return nil
}
