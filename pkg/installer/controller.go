package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-fileform/pkg/artifact"
	"github.com/goliatone/go-fileform/pkg/bookkeeping"
	"github.com/goliatone/go-fileform/pkg/form"
	"github.com/goliatone/go-fileform/pkg/i18n"
	"github.com/goliatone/go-fileform/pkg/schema"
)

// ErrPathEscapesRoot is returned for artifact file names that are absolute
// or leave the installation root.
var ErrPathEscapesRoot = errors.New("installer: artifact path escapes root")

// Result reports where an operation left the controller.
type Result struct {
	State State
	// Form is set while awaiting submission.
	Form *form.Descriptor
	// Path is the artifact written by install or update.
	Path string
	// Removed lists the artifacts deleted by uninstall.
	Removed []string
}

// Controller runs the lifecycle for one package.
type Controller struct {
	source      schema.Source
	instruction string
	packageID   int64
	root        string
	store       bookkeeping.Store
	engine      form.Engine
	catalog     i18n.LanguageCatalog
	language    string
	writer      *artifact.Writer
	hooks       FileHooks
	listeners   []EventListener
	log         *slog.Logger
	metrics     *Metrics

	builder *form.Builder

	mu    sync.Mutex
	state State
}

// New constructs a Controller. A bookkeeping store and a form engine are
// required; the schema source is only needed for install and update.
func New(ctx context.Context, options ...Option) (*Controller, error) {
	c := &Controller{
		instruction: schema.DefaultInstruction,
		root:        ".",
		writer:      artifact.NewWriter(),
		hooks:       noopHooks{},
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.store == nil {
		return nil, errors.New("installer: bookkeeping store is required")
	}
	if c.engine == nil {
		return nil, errors.New("installer: form engine is required")
	}
	c.builder = form.NewBuilder(i18n.NewResolver(c.catalog))
	c.emit(ctx, Event{Name: EventConstruct})
	return c, nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// IsValidInstruction reports whether name (or the configured instruction
// when empty) is a schema document present in the package.
func (c *Controller) IsValidInstruction(ctx context.Context, name string) bool {
	if name == "" {
		name = c.instruction
	}
	return schema.IsValidInstruction(ctx, c.source, name)
}

// Install runs a first installation step.
func (c *Controller) Install(ctx context.Context) (Result, error) {
	return c.apply(ctx, ActionInstall)
}

// Update runs an update step, seeding defaults from the current artifact.
func (c *Controller) Update(ctx context.Context) (Result, error) {
	return c.apply(ctx, ActionUpdate)
}

// Run performs action to completion, collecting values with collector when
// the form is pending. The engine must implement form.Submitter.
func (c *Controller) Run(ctx context.Context, action Action, collector form.Collector) (Result, error) {
	res, err := c.apply(ctx, action)
	if err != nil || res.State != StateAwaitingSubmission {
		return res, err
	}
	submitter, ok := c.engine.(form.Submitter)
	if !ok {
		return res, errors.New("installer: form engine does not accept submissions")
	}
	if collector == nil {
		return res, errors.New("installer: collector is required")
	}
	values, err := collector.Collect(ctx, *res.Form)
	if err != nil {
		return res, fmt.Errorf("installer: collect %s: %w", res.Form.ID, err)
	}
	if err := submitter.Submit(res.Form.ID, values); err != nil {
		return res, fmt.Errorf("installer: submit %s: %w", res.Form.ID, err)
	}
	return c.apply(ctx, action)
}

func (c *Controller) apply(ctx context.Context, action Action) (res Result, rerr error) {
	op := action.String()
	defer func() {
		switch {
		case rerr != nil:
			c.setState(StateIdle)
			c.metrics.operation(op, "error")
		case res.State == StateAwaitingSubmission:
			c.metrics.operation(op, "awaiting")
		default:
			c.metrics.operation(op, "done")
		}
	}()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	// An update step is an install step too, so both fire for it.
	if action == ActionUpdate {
		c.emit(ctx, Event{Name: EventUpdate, State: c.State()})
	}
	c.emit(ctx, Event{Name: EventInstall, State: c.State()})

	s, err := schema.Load(ctx, c.source, c.instruction)
	if err != nil {
		c.log.Error("loading schema failed", "instruction", c.instruction, "err", err)
		return Result{}, err
	}
	target, err := c.resolve(s.FileName)
	if err != nil {
		return Result{}, err
	}
	log := c.log.With("form", s.Name, "file", s.FileName, "action", op)

	prior, err := c.priorValues(ctx, action, s, log)
	if err != nil {
		return Result{}, err
	}

	id := form.ID(s.Name)
	desc, pending := c.engine.FindForm(id)
	if !pending {
		desc = c.builder.Build(s, prior, c.language)
		if err := c.engine.RegisterForm(desc); err != nil {
			return Result{}, fmt.Errorf("installer: register form %s: %w", id, err)
		}
		log.Debug("form awaiting submission", "id", id)
		c.setState(StateAwaitingSubmission)
		return Result{State: StateAwaitingSubmission, Form: &desc}, nil
	}

	values, err := c.engine.Values(ctx, id)
	if errors.Is(err, form.ErrNotSubmitted) {
		c.setState(StateAwaitingSubmission)
		return Result{State: StateAwaitingSubmission, Form: &desc}, nil
	} else if err != nil {
		return Result{}, fmt.Errorf("installer: values for %s: %w", id, err)
	}

	c.setState(StateWriting)
	if err := c.writer.Write(ctx, target, s.Syntax, artifact.OrderedValues(s.FieldNames(), values)); err != nil {
		log.Error("writing artifact failed", "path", target, "err", err)
		return Result{}, err
	}
	c.metrics.artifactWritten(s.Syntax.String())

	record := bookkeeping.Record{FileName: s.FileName, PackageID: c.packageID, FileType: int(s.Syntax)}
	if err := c.store.Create(ctx, record); err != nil {
		return Result{}, fmt.Errorf("installer: register artifact: %w", err)
	}

	if err := c.hooks.MakeWritable(target); err != nil {
		log.Warn("making artifact writable failed", "path", target, "err", err)
	}
	if err := c.hooks.InvalidateCache(target); err != nil {
		log.Warn("invalidating cache failed", "path", target, "err", err)
	}

	c.setState(StateDone)
	log.Info("artifact written", "path", target, "syntax", s.Syntax.String(), "fields", len(s.Fields))
	return Result{State: StateDone, Path: target}, nil
}

// priorValues reads the current artifact on update. A missing record means
// no defaults; an unreadable artifact is logged and also means no defaults.
func (c *Controller) priorValues(ctx context.Context, action Action, s schema.FormSchema, log *slog.Logger) (map[string]string, error) {
	if action != ActionUpdate {
		return nil, nil
	}
	record, err := c.store.Get(ctx, s.FileName)
	if errors.Is(err, bookkeeping.ErrNotFound) {
		log.Debug("no previous artifact registered")
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("installer: lookup artifact record: %w", err)
	}

	path, err := c.resolve(record.FileName)
	if err != nil {
		return nil, err
	}
	prior, err := artifact.ReadPrior(path, record.Syntax(), s.FieldNames())
	if err != nil {
		c.metrics.priorReadFailed()
		log.Warn("previous artifact unreadable, continuing without defaults", "path", path, "err", err)
		return nil, nil
	}
	return prior, nil
}

// Uninstall deletes every artifact registered for the package and then the
// records. Missing or undeletable files do not stop it.
func (c *Controller) Uninstall(ctx context.Context) (res Result, rerr error) {
	defer func() {
		if rerr != nil {
			c.setState(StateIdle)
			c.metrics.operation("uninstall", "error")
			return
		}
		c.metrics.operation("uninstall", "done")
	}()

	c.emit(ctx, Event{Name: EventUninstall, State: c.State()})
	c.setState(StateUninstalling)
	records, err := c.store.FindByPackage(ctx, c.packageID)
	if err != nil {
		return Result{}, fmt.Errorf("installer: find artifacts: %w", err)
	}

	log := c.log.With("package", c.packageID)
	var removed, names []string
	for _, r := range records {
		names = append(names, r.FileName)
		path, err := c.resolve(r.FileName)
		if err != nil {
			log.Warn("skipping artifact outside root", "file", r.FileName, "err", err)
			continue
		}
		err = os.Remove(path)
		switch {
		case err == nil:
			removed = append(removed, path)
			c.metrics.artifactRemoved()
			log.Info("artifact removed", "path", path)
		case errors.Is(err, fs.ErrNotExist):
			log.Debug("artifact already gone", "path", path)
		default:
			log.Warn("removing artifact failed", "path", path, "err", err)
		}
	}
	if len(names) > 0 {
		if err := c.store.DeleteAll(ctx, names); err != nil {
			return Result{}, fmt.Errorf("installer: delete records: %w", err)
		}
	}

	c.setState(StateDone)
	return Result{State: StateDone, Removed: removed}, nil
}

// HasUninstall reports whether the package owns any artifact.
func (c *Controller) HasUninstall(ctx context.Context) (bool, error) {
	records, err := c.store.FindByPackage(ctx, c.packageID)
	if err != nil {
		return false, fmt.Errorf("installer: find artifacts: %w", err)
	}
	c.emit(ctx, Event{Name: EventHasUninstall, State: c.State()})
	return len(records) > 0, nil
}

// resolve maps an artifact file name onto the installation root.
func (c *Controller) resolve(fileName string) (string, error) {
	local := filepath.FromSlash(fileName)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %q", ErrPathEscapesRoot, fileName)
	}
	return filepath.Join(c.root, local), nil
}

func (c *Controller) emit(ctx context.Context, ev Event) {
	ev.PackageID = c.packageID
	for _, l := range c.listeners {
		l.OnEvent(ctx, ev)
	}
}
