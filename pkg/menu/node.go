// Package menu holds the marking menu tree: nodes with a fixed number of
// slices, each slice carrying an action or a nested node.
package menu

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrConfiguration is returned for an invalid slot count or entry.
	ErrConfiguration = errors.New("invalid menu configuration")

	// ErrRange is returned for a slot index outside [1, slotCount].
	ErrRange = errors.New("slot index out of range")

	// ErrDuplicateSlot is returned when assigning an occupied slot.
	ErrDuplicateSlot = errors.New("slot already set")

	// ErrCycle is returned when a sub-menu would contain its own parent.
	ErrCycle = errors.New("menu cycle")
)

// Node is one level of the menu tree. Slice 0 is the neutral zone and never
// holds an entry.
type Node struct {
	slotCount int
	slots     []*Entry
}

// New creates an empty node with 4 or 8 slices.
func New(slotCount int) (*Node, error) {
	if slotCount != 4 && slotCount != 8 {
		return nil, fmt.Errorf("%w: slot count must be 4 or 8, got %d", ErrConfiguration, slotCount)
	}

	return &Node{
		slotCount: slotCount,
		slots:     make([]*Entry, slotCount+1),
	}, nil
}

// MustNew is like New but panics on error. Intended for static trees.
func MustNew(slotCount int) *Node {
	n, err := New(slotCount)
	if err != nil {
		panic(err)
	}
	return n
}

// SlotCount returns the number of slices, 4 or 8.
func (n *Node) SlotCount() int { return n.slotCount }

// SetSlot assigns e to slice index. Occupied slices must be cleared first.
func (n *Node) SetSlot(index int, e *Entry) error {
	if err := n.checkRange(index); err != nil {
		return err
	}

	if e == nil {
		return fmt.Errorf("%w: nil entry for slot %d", ErrConfiguration, index)
	}

	if err := e.validate(); err != nil {
		return err
	}

	if n.slots[index] != nil {
		return fmt.Errorf("%w: slot %d holds %q", ErrDuplicateSlot, index, n.slots[index].description)
	}

	if e.IsSubMenu() && (e.child == n || e.child.contains(n)) {
		return fmt.Errorf("%w: %q would contain its parent", ErrCycle, e.description)
	}

	n.slots[index] = e
	return nil
}

// ClearSlot removes the entry at index. Clearing an empty slot is a no-op.
func (n *Node) ClearSlot(index int) error {
	if err := n.checkRange(index); err != nil {
		return err
	}

	if n.slots[index] == nil {
		slog.Warn("clearing empty menu slot", "slot", index)
		return nil
	}

	n.slots[index] = nil
	return nil
}

// SlotAt returns the entry at index, if any.
func (n *Node) SlotAt(index int) (*Entry, bool) {
	if index < 1 || index > n.slotCount {
		return nil, false
	}

	e := n.slots[index]
	return e, e != nil
}

// IsSubMenu reports whether slice index holds a sub-menu.
func (n *Node) IsSubMenu(index int) bool {
	e, ok := n.SlotAt(index)
	return ok && e.IsSubMenu()
}

// Walk visits n and every nested node depth first. path holds the slice
// indexes leading from n to the visited node.
func (n *Node) Walk(fn func(path []int, node *Node)) {
	n.walk(nil, fn)
}

func (n *Node) walk(path []int, fn func(path []int, node *Node)) {
	fn(path, n)

	for i := 1; i <= n.slotCount; i++ {
		e := n.slots[i]
		if e == nil || !e.IsSubMenu() {
			continue
		}

		// copy so callers may keep the path
		next := make([]int, len(path)+1)
		copy(next, path)
		next[len(path)] = i

		e.child.walk(next, fn)
	}
}

// contains reports whether target is n or any node below n.
func (n *Node) contains(target *Node) bool {
	found := false
	n.Walk(func(_ []int, node *Node) {
		if node == target {
			found = true
		}
	})
	return found
}

func (n *Node) checkRange(index int) error {
	if index < 1 || index > n.slotCount {
		return fmt.Errorf("%w: %d is not between 1 and %d", ErrRange, index, n.slotCount)
	}
	return nil
}
