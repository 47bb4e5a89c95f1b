package demo

import (
	"testing"

	"github.com/mchmarny/markingmenu/pkg/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTree(t *testing.T) {
	var got []string
	tree := NewTree("v1.0.0", func(d string) { got = append(got, d) })

	assert.Equal(t, "v1.0.0", tree.Version)
	assert.Equal(t, 8, tree.Root.SlotCount())

	levels := 0
	tree.Root.Walk(func(_ []int, _ *menu.Node) { levels++ })
	assert.Equal(t, 3, levels)

	e, ok := tree.Root.SlotAt(1)
	require.True(t, ok)
	require.True(t, e.IsSubMenu())

	paste, ok := e.Child().SlotAt(2)
	require.True(t, ok)
	paste.Invoke()
	assert.Equal(t, []string{"Paste"}, got)

	_, ok = tree.Root.SlotAt(6)
	assert.False(t, ok)
}
