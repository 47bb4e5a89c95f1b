// Package demo builds the menu tree shared by the marking menu binaries.
package demo

import (
	"fmt"
	"log/slog"

	"github.com/mchmarny/markingmenu/pkg/menu"
)

// NewTree constructs an 8-way root with two 4-way sub-menus. Every action
// logs its description and then calls onAction, which may be nil.
func NewTree(version string, onAction func(description string)) *menu.Tree {
	act := func(description string) *menu.Entry {
		return menu.Action(description, func() {
			slog.Info("action invoked", "description", description)
			if onAction != nil {
				onAction(description)
			}
		})
	}

	edit := menu.MustNew(4)
	mustSet(edit, 1, act("Copy"))
	mustSet(edit, 2, act("Paste"))
	mustSet(edit, 3, act("Cut"))
	mustSet(edit, 4, act("Undo"))

	zoom := menu.MustNew(4)
	mustSet(zoom, 1, act("Zoom In"))
	mustSet(zoom, 3, act("Zoom Out"))
	mustSet(zoom, 2, act("Fit"))

	root := menu.MustNew(8)
	mustSet(root, 1, menu.SubMenu("Edit", edit))
	mustSet(root, 2, act("Save"))
	mustSet(root, 3, act("Open"))
	mustSet(root, 4, act("Print"))
	mustSet(root, 5, menu.SubMenu("View", zoom))
	mustSet(root, 7, act("Close"))
	mustSet(root, 8, act("New"))

	return &menu.Tree{
		Title:       fmt.Sprintf("Marking Menu (%s)", version),
		Description: "Right-drag or ctrl-drag to select, pause to show the menu",
		Version:     version,
		Root:        root,
	}
}

func mustSet(n *menu.Node, index int, e *menu.Entry) {
	if err := n.SetSlot(index, e); err != nil {
		panic(fmt.Errorf("demo menu slot %d: %w", index, err))
	}
}
