// Package replay runs recorded pointer gestures against a menu tree on a
// virtual clock, with no screen attached.
package replay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mchmarny/markingmenu/pkg/controller"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRecording is wrapped by every recording validation error.
var ErrInvalidRecording = errors.New("invalid recording")

// EventType is the kind of a recorded event.
type EventType string

const (
	EventPress   EventType = "press"
	EventMove    EventType = "move"
	EventRelease EventType = "release"

	// EventWait only lets virtual time pass.
	EventWait EventType = "wait"
)

// Duration is a time.Duration that decodes from "200ms" style strings or
// from a number of milliseconds.
type Duration time.Duration

func (d *Duration) set(s string) error {
	if v, err := time.ParseDuration(s); err == nil {
		*d = Duration(v)
		return nil
	}

	var ms float64
	if _, err := fmt.Sscan(s, &ms); err != nil {
		return fmt.Errorf("%w: bad duration %q", ErrInvalidRecording, s)
	}
	*d = Duration(time.Duration(ms * float64(time.Millisecond)))
	return nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	return d.set(strings.Trim(string(b), `"`))
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	return d.set(n.Value)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Event is one recorded input event. After is the virtual time that passes
// before the event is delivered.
type Event struct {
	Type   EventType `json:"type" yaml:"type"`
	X      float64   `json:"x,omitempty" yaml:"x"`
	Y      float64   `json:"y,omitempty" yaml:"y"`
	Button string    `json:"button,omitempty" yaml:"button"`
	Ctrl   bool      `json:"ctrl,omitempty" yaml:"ctrl"`
	After  Duration  `json:"after,omitempty" yaml:"after"`
}

// Recording is an ordered list of events.
type Recording struct {
	Name   string  `json:"name,omitempty" yaml:"name"`
	Events []Event `json:"events" yaml:"events"`
}

// Validate checks event types and buttons.
func (r *Recording) Validate() error {
	if len(r.Events) == 0 {
		return fmt.Errorf("%w: no events", ErrInvalidRecording)
	}

	for i, ev := range r.Events {
		switch ev.Type {
		case EventPress, EventMove, EventRelease, EventWait:
		default:
			return fmt.Errorf("%w: event %d has unknown type %q", ErrInvalidRecording, i, ev.Type)
		}

		if _, err := parseButton(ev.Button); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}

		if ev.After < 0 {
			return fmt.Errorf("%w: event %d waits a negative time", ErrInvalidRecording, i)
		}
	}

	return nil
}

// DecodeJSON reads a JSON recording.
func DecodeJSON(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode recording: %w", err)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return &rec, nil
}

// DecodeYAML reads a YAML recording.
func DecodeYAML(r io.Reader) (*Recording, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}

	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode recording: %w", err)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return &rec, nil
}

// Load reads a recording file, YAML unless the extension is .json.
func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(bytes.NewReader(data))
	}
	return DecodeYAML(bytes.NewReader(data))
}

func parseButton(s string) (controller.Button, error) {
	switch strings.ToLower(s) {
	case "", "secondary", "right":
		return controller.ButtonSecondary, nil
	case "primary", "left":
		return controller.ButtonPrimary, nil
	case "middle":
		return controller.ButtonMiddle, nil
	default:
		return controller.ButtonNone, fmt.Errorf("%w: unknown button %q", ErrInvalidRecording, s)
	}
}
