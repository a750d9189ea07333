package installer

import (
	"context"
	"io/fs"
	"os"
)

// FileHooks run after an artifact was written.
type FileHooks interface {
	// MakeWritable relaxes permissions so the host application can rewrite
	// the artifact.
	MakeWritable(path string) error
	// InvalidateCache drops any cached copy of the artifact.
	InvalidateCache(path string) error
}

// OSHooks implements FileHooks on the local filesystem. Invalidate is
// optional.
type OSHooks struct {
	Mode       fs.FileMode
	Invalidate func(path string) error
}

// DefaultWritableMode matches the permissions host applications expect on
// generated settings files.
const DefaultWritableMode fs.FileMode = 0o666

func (h OSHooks) MakeWritable(path string) error {
	mode := h.Mode
	if mode == 0 {
		mode = DefaultWritableMode
	}
	return os.Chmod(path, mode)
}

func (h OSHooks) InvalidateCache(path string) error {
	if h.Invalidate == nil {
		return nil
	}
	return h.Invalidate(path)
}

type noopHooks struct{}

func (noopHooks) MakeWritable(string) error    { return nil }
func (noopHooks) InvalidateCache(string) error { return nil }

// Lifecycle event names.
const (
	EventConstruct    = "construct"
	EventInstall      = "install"
	EventUpdate       = "update"
	EventUninstall    = "uninstall"
	EventHasUninstall = "hasUninstall"
)

// Event describes one lifecycle step. Events fire when the step starts;
// State is the controller state at that moment.
type Event struct {
	Name      string
	PackageID int64
	State     State
}

// EventListener observes lifecycle events.
type EventListener interface {
	OnEvent(ctx context.Context, ev Event)
}

// ListenerFunc adapts a function to EventListener.
type ListenerFunc func(ctx context.Context, ev Event)

// OnEvent calls f.
func (f ListenerFunc) OnEvent(ctx context.Context, ev Event) {
	f(ctx, ev)
}
