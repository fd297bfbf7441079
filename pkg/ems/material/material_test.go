package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrderAndLookup(t *testing.T) {
	c := NewCatalog()
	var names []string
	for _, m := range c.All() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"pcb", "metal_top", "metal_bot", "hole_fill", "box"}, names)

	m, ok := c.Lookup("hole_fill")
	require.True(t, ok)
	assert.Same(t, c.HoleFill, m)
	assert.Equal(t, 1.0, m.Epsilon)
	assert.Equal(t, 1.0, m.Density)

	_, ok = c.Lookup("copper")
	assert.False(t, ok)
}
