package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	m := NewManager(NewManagerOptions{MaxSessions: 2})

	a, err := m.Create("ada")
	require.NoError(t, err)
	b, err := m.Create("")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, m.Count())

	_, err = m.Create("grace")
	assert.Error(t, err)

	got, ok := m.Get(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)

	m.Remove(a.ID())
	_, ok = m.Get(a.ID())
	assert.False(t, ok)
	assert.Equal(t, 1, m.Count())
}
