package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnableDisableLifecycle(t *testing.T) {
	r := NewRegistry()
	p, err := r.Load("physics")
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	var enabled, disabled int
	p.OnEnable().Subscribe(func(*Plugin) bool { enabled++; return true })
	p.OnDisable().Subscribe(func(*Plugin) bool { disabled++; return true })

	require.NoError(t, r.Enable("physics"))
	assert.True(t, p.Enabled())
	require.NoError(t, r.Disable("physics"))
	assert.False(t, p.Enabled())

	assert.Equal(t, 1, enabled)
	assert.Equal(t, 1, disabled)
}

func TestLoadDuplicateReturnsExistingEntry(t *testing.T) {
	r := NewRegistry()
	a, err := r.Load("audio")
	require.NoError(t, err)
	b, err := r.Load("audio")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestEnableAlreadyEnabledFails(t *testing.T) {
	r := NewRegistry()
	_, err := r.Load("net")
	require.NoError(t, err)
	require.NoError(t, r.Enable("net"))

	err = r.Enable("net")
	assert.ErrorIs(t, err, ErrAlreadyEnabled)
}

func TestEnableRejectedRevertsToDisabled(t *testing.T) {
	r := NewRegistry()
	p, err := r.Load("risky")
	require.NoError(t, err)
	p.OnEnable().Subscribe(func(*Plugin) bool { return false })

	err = r.Enable("risky")
	assert.ErrorIs(t, err, ErrEnableRejected)
	assert.False(t, p.Enabled())
}

func TestUnknownPluginOperationsReturnError(t *testing.T) {
	r := NewRegistry()
	assert.ErrorIs(t, r.Enable("ghost"), ErrUnknownPlugin)
	assert.ErrorIs(t, r.Disable("ghost"), ErrUnknownPlugin)
	assert.ErrorIs(t, r.Unload("ghost"), ErrUnknownPlugin)
}
