// Package components holds example component value types for the demo
// world: plain structs with no base interface, since the generic
// ComponentSet[T] needs nothing beyond the type itself.
package components

import "time"

// Health tracks an entity's hit points, shield, and status effects.
type Health struct {
	Current          int
	Max              int
	Shield           int
	Invincible       bool
	LastDamageTime   time.Time
	RegenerationRate float64
	StatusEffects    []StatusEffect
}

// StatusEffect is a timed modifier applied to a Health component.
type StatusEffect struct {
	Name      string
	Magnitude float64
	ExpiresAt time.Time
}

// NewHealth returns a full-health component with no shield or effects.
func NewHealth(max int) Health {
	return Health{Current: max, Max: max}
}

// TakeDamage reduces Current by amount after absorbing as much as
// possible with Shield, unless Invincible. Returns the amount actually
// applied to Current.
func (h *Health) TakeDamage(amount int, at time.Time) int {
	if h.Invincible || amount <= 0 {
		return 0
	}
	h.LastDamageTime = at
	if h.Shield > 0 {
		absorbed := amount
		if absorbed > h.Shield {
			absorbed = h.Shield
		}
		h.Shield -= absorbed
		amount -= absorbed
	}
	if amount <= 0 {
		return 0
	}
	h.Current -= amount
	if h.Current < 0 {
		amount += h.Current
		h.Current = 0
	}
	return amount
}

// Heal increases Current up to Max.
func (h *Health) Heal(amount int) {
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// IsDead reports whether Current has reached zero.
func (h *Health) IsDead() bool { return h.Current <= 0 }

// AddStatusEffect appends a status effect.
func (h *Health) AddStatusEffect(effect StatusEffect) {
	h.StatusEffects = append(h.StatusEffects, effect)
}

// ExpireStatusEffects drops every effect whose ExpiresAt is at or before
// now.
func (h *Health) ExpireStatusEffects(now time.Time) {
	live := h.StatusEffects[:0]
	for _, effect := range h.StatusEffects {
		if effect.ExpiresAt.After(now) {
			live = append(live, effect)
		}
	}
	h.StatusEffects = live
}
