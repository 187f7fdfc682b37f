package plugin

import (
	"errors"
	"log"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

var (
	ErrAlreadyEnabled  = errors.New("plugin: already enabled")
	ErrAlreadyDisabled = errors.New("plugin: already disabled")
	ErrEnableRejected  = errors.New("plugin: enable rejected by subscriber")
	ErrUnknownPlugin   = errors.New("plugin: unknown name")
	ErrEmptyName       = errors.New("plugin: name must not be empty")
)

// Logger is the package-level logger used for warnings on non-fatal
// conditions (duplicate load, unknown plugin, rejected enable), using the
// standard library's log.Logger rather than a third-party structured
// logger.
var Logger = log.New(os.Stderr, "plugin: ", log.LstdFlags)

// Registry is a process-global, mutex-guarded map from plugin name to
// entry. Concurrent Load calls for the same name are collapsed via
// singleflight so a racing pair of discovery goroutines only constructs
// the entry once.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Plugin
	group   singleflight.Group
}

// NewRegistry returns an empty registry. Most callers should use the
// process-global Default instead of constructing their own.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Plugin)}
}

// Default is the process-global plugin registry.
var Default = NewRegistry()

// Load registers name if absent and returns its Plugin. Loading a name
// that already exists is not an error: it logs a warning and returns the
// existing entry, matching the "collisions on load are ignored with a
// warning" rule.
func (r *Registry) Load(name string) (*Plugin, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	v, _, _ := r.group.Do(name, func() (any, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if existing, ok := r.entries[name]; ok {
			Logger.Printf("duplicate load of plugin %q ignored", name)
			return existing, nil
		}
		p := NewPlugin(name)
		r.entries[name] = p
		return p, nil
	})
	return v.(*Plugin), nil
}

// Unload removes name from the registry. Unloading an unknown name logs
// a warning and returns ErrUnknownPlugin.
func (r *Registry) Unload(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; !ok {
		Logger.Printf("unload of unknown plugin %q ignored", name)
		return ErrUnknownPlugin
	}
	delete(r.entries, name)
	return nil
}

// Enable transitions name's plugin from Disabled to Enabled, firing its
// OnEnable event. A subscriber returning false reverts the plugin to
// Disabled and the error is returned; enabling an already-enabled plugin
// returns ErrAlreadyEnabled without firing any event.
func (r *Registry) Enable(name string) error {
	p, ok := r.lookup(name)
	if !ok {
		Logger.Printf("enable of unknown plugin %q ignored", name)
		return ErrUnknownPlugin
	}
	_, err := p.enable()
	if err != nil {
		Logger.Printf("plugin %q enable failed: %v", name, err)
	}
	return err
}

// Disable transitions name's plugin from Enabled to Disabled, always
// firing its OnDisable event.
func (r *Registry) Disable(name string) error {
	p, ok := r.lookup(name)
	if !ok {
		Logger.Printf("disable of unknown plugin %q ignored", name)
		return ErrUnknownPlugin
	}
	_, err := p.disable()
	return err
}

func (r *Registry) lookup(name string) (*Plugin, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.entries[name]
	return p, ok
}

// All returns a copy of every registered plugin.
func (r *Registry) All() []*Plugin {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Plugin, 0, len(r.entries))
	for _, p := range r.entries {
		out = append(out, p)
	}
	return out
}

// EnabledPlugins returns a copy of the currently enabled subset.
func (r *Registry) EnabledPlugins() []*Plugin {
	all := r.All()
	out := all[:0:0]
	for _, p := range all {
		if p.Enabled() {
			out = append(out, p)
		}
	}
	return out
}
