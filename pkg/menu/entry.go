package menu

import "fmt"

// Kind tells which payload an Entry carries.
type Kind int

const (
	// KindAction is an entry that runs a callback when selected.
	KindAction Kind = iota + 1

	// KindSubMenu is an entry that opens a nested menu.
	KindSubMenu
)

// String returns the lower case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindSubMenu:
		return "submenu"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry is the payload of one menu slice: either an action or a sub-menu.
// The kind is fixed when the entry is built.
type Entry struct {
	// description is the text shown on the slice when the menu is visible.
	description string

	kind   Kind
	action func()
	child  *Node
}

// Action creates an entry that calls fn when selected.
func Action(description string, fn func()) *Entry {
	return &Entry{description: description, kind: KindAction, action: fn}
}

// SubMenu creates an entry that opens child when selected.
func SubMenu(description string, child *Node) *Entry {
	return &Entry{description: description, kind: KindSubMenu, child: child}
}

// Kind returns the entry kind.
func (e *Entry) Kind() Kind { return e.kind }

// Description returns the slice text.
func (e *Entry) Description() string { return e.description }

// IsSubMenu reports whether the entry opens a nested menu.
func (e *Entry) IsSubMenu() bool { return e.kind == KindSubMenu }

// Child returns the nested menu, nil for actions.
func (e *Entry) Child() *Node { return e.child }

// Invoke runs the action. It is a no-op for sub-menus and nil callbacks.
func (e *Entry) Invoke() {
	if e.kind != KindAction || e.action == nil {
		return
	}
	e.action()
}

func (e *Entry) validate() error {
	switch e.kind {
	case KindAction:
		return nil
	case KindSubMenu:
		if e.child == nil {
			return fmt.Errorf("%w: sub-menu %q has no menu", ErrConfiguration, e.description)
		}
		return nil
	default:
		return fmt.Errorf("%w: entry %q has no kind", ErrConfiguration, e.description)
	}
}
