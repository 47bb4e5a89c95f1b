package menu

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Tree is a named root menu, the unit a host publishes.
type Tree struct {
	// Title of the menu
	Title string `json:"title"`

	// Description of the menu
	Description string `json:"description,omitempty"`

	// Version of the menu
	Version string `json:"version,omitempty"`

	// Root is the top level node
	Root *Node `json:"menu"`
}

// item is the serialized form of one slice.
type item struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Menu        *Node  `json:"menu,omitempty"`
}

// MarshalJSON writes the node and its nested menus.
// Actions are represented by their description only.
func (n *Node) MarshalJSON() ([]byte, error) {
	items := make([]item, 0, n.slotCount)

	for i := 1; i <= n.slotCount; i++ {
		e := n.slots[i]
		if e == nil {
			continue
		}

		items = append(items, item{
			Index:       i,
			Description: e.description,
			Kind:        e.kind.String(),
			Menu:        e.child,
		})
	}

	return json.Marshal(struct {
		Slots int    `json:"slots"`
		Items []item `json:"items"`
	}{
		Slots: n.slotCount,
		Items: items,
	})
}

// Handler returns an HTTP handler that responds with the menu tree as JSON.
func (t *Tree) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Info("handling menu request",
			"method", r.Method,
			"url", r.URL.Path,
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(t); err != nil {
			slog.Error("failed to encode menu", "error", err)
			return
		}

		slog.Debug("menu response sent",
			"method", r.Method,
			"url", r.URL.Path,
			"status", http.StatusOK,
		)
	})
}
