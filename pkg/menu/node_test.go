package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotCount(t *testing.T) {
	for _, n := range []int{4, 8} {
		node, err := New(n)
		require.NoError(t, err)
		assert.Equal(t, n, node.SlotCount())
	}

	for _, n := range []int{-1, 0, 3, 5, 6, 16} {
		_, err := New(n)
		assert.ErrorIs(t, err, ErrConfiguration, "slot count %d", n)
	}

	assert.Panics(t, func() { MustNew(7) })
}

func TestSetSlotRange(t *testing.T) {
	n := MustNew(4)

	for _, i := range []int{0, 5, -3} {
		err := n.SetSlot(i, Action("x", nil))
		assert.ErrorIs(t, err, ErrRange, "index %d", i)
	}

	require.NoError(t, n.SetSlot(4, Action("x", nil)))
	assert.ErrorIs(t, n.ClearSlot(0), ErrRange)
}

func TestSetSlotSingleAssignment(t *testing.T) {
	n := MustNew(8)
	require.NoError(t, n.SetSlot(3, Action("copy", nil)))

	err := n.SetSlot(3, Action("paste", nil))
	require.ErrorIs(t, err, ErrDuplicateSlot)

	e, ok := n.SlotAt(3)
	require.True(t, ok)
	assert.Equal(t, "copy", e.Description())

	require.NoError(t, n.ClearSlot(3))
	_, ok = n.SlotAt(3)
	assert.False(t, ok)

	require.NoError(t, n.SetSlot(3, Action("paste", nil)))
	e, _ = n.SlotAt(3)
	assert.Equal(t, "paste", e.Description())
}

func TestClearEmptySlotIsSoft(t *testing.T) {
	n := MustNew(4)
	assert.NoError(t, n.ClearSlot(2))
	assert.NoError(t, n.ClearSlot(2))
}

func TestSlotAtNeutralZone(t *testing.T) {
	n := MustNew(4)
	_, ok := n.SlotAt(0)
	assert.False(t, ok)
	_, ok = n.SlotAt(9)
	assert.False(t, ok)
}

func TestInvalidEntries(t *testing.T) {
	n := MustNew(4)
	assert.ErrorIs(t, n.SetSlot(1, nil), ErrConfiguration)
	assert.ErrorIs(t, n.SetSlot(1, SubMenu("empty", nil)), ErrConfiguration)
	assert.ErrorIs(t, n.SetSlot(1, &Entry{}), ErrConfiguration)
}

func TestCycleRejected(t *testing.T) {
	root := MustNew(8)
	child := MustNew(4)
	grandchild := MustNew(4)

	require.NoError(t, root.SetSlot(1, SubMenu("child", child)))
	require.NoError(t, child.SetSlot(2, SubMenu("grandchild", grandchild)))

	assert.ErrorIs(t, root.SetSlot(2, SubMenu("self", root)), ErrCycle)
	assert.ErrorIs(t, grandchild.SetSlot(1, SubMenu("root", root)), ErrCycle)
	assert.ErrorIs(t, grandchild.SetSlot(1, SubMenu("child", child)), ErrCycle)

	// sharing a node in two places is still a tree walk without cycles
	assert.NoError(t, root.SetSlot(3, SubMenu("again", grandchild)))
}

func TestEntryKinds(t *testing.T) {
	calls := 0
	a := Action("run", func() { calls++ })
	s := SubMenu("more", MustNew(4))

	assert.Equal(t, KindAction, a.Kind())
	assert.False(t, a.IsSubMenu())
	assert.Nil(t, a.Child())
	a.Invoke()
	assert.Equal(t, 1, calls)

	assert.Equal(t, KindSubMenu, s.Kind())
	assert.True(t, s.IsSubMenu())
	assert.NotNil(t, s.Child())
	s.Invoke()
	assert.Equal(t, 1, calls)

	assert.Equal(t, "action", KindAction.String())
	assert.Equal(t, "submenu", KindSubMenu.String())
}

func TestWalk(t *testing.T) {
	root := MustNew(8)
	child := MustNew(4)
	grandchild := MustNew(8)

	require.NoError(t, root.SetSlot(5, SubMenu("child", child)))
	require.NoError(t, root.SetSlot(1, Action("a", nil)))
	require.NoError(t, child.SetSlot(3, SubMenu("grandchild", grandchild)))

	var paths [][]int
	var nodes []*Node
	root.Walk(func(path []int, n *Node) {
		paths = append(paths, path)
		nodes = append(nodes, n)
	})

	assert.Equal(t, [][]int{nil, {5}, {5, 3}}, paths)
	assert.Equal(t, []*Node{root, child, grandchild}, nodes)
	assert.True(t, root.IsSubMenu(5))
	assert.False(t, root.IsSubMenu(1))
}

func TestTreeHandler(t *testing.T) {
	root := MustNew(4)
	child := MustNew(8)
	require.NoError(t, root.SetSlot(1, Action("open", nil)))
	require.NoError(t, root.SetSlot(3, SubMenu("edit", child)))
	require.NoError(t, child.SetSlot(8, Action("undo", nil)))

	tree := &Tree{Title: "Root", Version: "v1", Root: root}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	tree.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got struct {
		Title string `json:"title"`
		Menu  struct {
			Slots int `json:"slots"`
			Items []struct {
				Index       int    `json:"index"`
				Description string `json:"description"`
				Kind        string `json:"kind"`
				Menu        *struct {
					Slots int `json:"slots"`
				} `json:"menu"`
			} `json:"items"`
		} `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, "Root", got.Title)
	assert.Equal(t, 4, got.Menu.Slots)
	require.Len(t, got.Menu.Items, 2)
	assert.Equal(t, "action", got.Menu.Items[0].Kind)
	assert.Nil(t, got.Menu.Items[0].Menu)
	assert.Equal(t, 3, got.Menu.Items[1].Index)
	require.NotNil(t, got.Menu.Items[1].Menu)
	assert.Equal(t, 8, got.Menu.Items[1].Menu.Slots)
}
