package installer

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-fileform/pkg/artifact"
	"github.com/goliatone/go-fileform/pkg/bookkeeping"
	"github.com/goliatone/go-fileform/pkg/form"
	"github.com/goliatone/go-fileform/pkg/i18n"
	"github.com/goliatone/go-fileform/pkg/schema"
)

// Option customises a Controller.
type Option func(*Controller)

// WithSource sets the package the schema is read from.
func WithSource(src schema.Source) Option {
	return func(c *Controller) {
		c.source = src
	}
}

// WithInstruction names the schema document inside the package. Defaults to
// schema.DefaultInstruction.
func WithInstruction(name string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			c.instruction = trimmed
		}
	}
}

// WithPackageID sets the package that owns the generated artifacts.
func WithPackageID(id int64) Option {
	return func(c *Controller) {
		c.packageID = id
	}
}

// WithRoot sets the directory artifact file names are resolved against.
func WithRoot(dir string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			c.root = trimmed
		}
	}
}

// WithStore sets the bookkeeping store.
func WithStore(store bookkeeping.Store) Option {
	return func(c *Controller) {
		c.store = store
	}
}

// WithEngine sets the form engine.
func WithEngine(engine form.Engine) Option {
	return func(c *Controller) {
		c.engine = engine
	}
}

// WithCatalog sets the language catalog used to resolve labels.
func WithCatalog(catalog i18n.LanguageCatalog) Option {
	return func(c *Controller) {
		c.catalog = catalog
	}
}

// WithLanguage selects the form language. Empty means the catalog default.
func WithLanguage(code string) Option {
	return func(c *Controller) {
		c.language = strings.TrimSpace(code)
	}
}

// WithWriter overrides the artifact writer.
func WithWriter(w *artifact.Writer) Option {
	return func(c *Controller) {
		if w != nil {
			c.writer = w
		}
	}
}

// WithFileHooks sets the hooks run after an artifact was written.
func WithFileHooks(hooks FileHooks) Option {
	return func(c *Controller) {
		if hooks != nil {
			c.hooks = hooks
		}
	}
}

// WithListener registers an observer for lifecycle events.
func WithListener(listener EventListener) Option {
	return func(c *Controller) {
		if listener != nil {
			c.listeners = append(c.listeners, listener)
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithMetrics records outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}
