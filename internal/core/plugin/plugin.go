// Package plugin implements the process-global, name-keyed plugin
// registry: load/unload, enable/disable lifecycle, and discovery.
package plugin

import (
	"sync/atomic"

	"ecsforge/internal/core/delegate"
)

// Status is the lifecycle state of a Plugin.
type Status int32

const (
	Disabled Status = iota
	Enabled
)

// Plugin is a named, process-wide object with an enable/disable
// lifecycle. Its status transitions are CAS-like: Enable/Disable use
// atomic.Int32 so that only one goroutine can successfully toggle a
// given entry at a time.
type Plugin struct {
	Name string

	status   atomic.Int32
	onEnable delegate.Event[*Plugin]
	onDisable delegate.Event[*Plugin]
}

// NewPlugin returns a Disabled plugin with the given name.
func NewPlugin(name string) *Plugin {
	return &Plugin{Name: name}
}

// Enabled reports whether the plugin is currently enabled.
func (p *Plugin) Enabled() bool {
	return Status(p.status.Load()) == Enabled
}

// OnEnable exposes the enable event's subscription surface. A subscriber
// returning false is treated as "enable failed".
func (p *Plugin) OnEnable() delegate.Proxy[*Plugin] { return delegate.NewProxy(&p.onEnable) }

// OnDisable exposes the disable event's subscription surface.
func (p *Plugin) OnDisable() delegate.Proxy[*Plugin] { return delegate.NewProxy(&p.onDisable) }

// enable attempts the Disabled -> Enabled transition. It returns
// (false, ecs.ErrPluginTransition-equivalent) if the plugin was already
// enabled, or (false, error) if a subscriber vetoed it, in which case the
// status is reverted to Disabled.
func (p *Plugin) enable() (bool, error) {
	if !p.status.CompareAndSwap(int32(Disabled), int32(Enabled)) {
		return false, ErrAlreadyEnabled
	}
	if !p.onEnable.DispatchVeto(p) {
		p.status.Store(int32(Disabled))
		return false, ErrEnableRejected
	}
	return true, nil
}

// disable attempts the Enabled -> Disabled transition, always invoking
// OnDisable regardless of subscriber return values.
func (p *Plugin) disable() (bool, error) {
	if !p.status.CompareAndSwap(int32(Enabled), int32(Disabled)) {
		return false, ErrAlreadyDisabled
	}
	p.onDisable.Dispatch(p)
	return true, nil
}
