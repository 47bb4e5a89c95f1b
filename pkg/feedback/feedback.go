// Package feedback plays a short click when a marking menu selects an item.
// Audio is optional: without a sound device the clicker stays silent.
package feedback

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/mchmarny/markingmenu/pkg/controller"
)

const (
	sampleRate = beep.SampleRate(44100)

	clickLength = 40 * time.Millisecond

	// expert selections click higher than assisted ones
	expertTone   = 880.0
	assistedTone = 660.0
)

// Clicker plays a tone per selection.
type Clicker struct {
	ready bool
}

// NewClicker initializes the speaker. Failure is logged and leaves the
// clicker silent.
func NewClicker() *Clicker {
	c := &Clicker{}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		slog.Warn("audio initialization failed, selections will be silent", "error", err)
		return c
	}

	c.ready = true
	return c
}

// Enabled reports whether a sound device is in use.
func (c *Clicker) Enabled() bool { return c.ready }

// Selection plays the click for sel. It is meant for
// controller.WithSelectHandler.
func (c *Clicker) Selection(sel controller.Selection) {
	if !c.ready {
		return
	}

	s, err := click(toneFor(sel.Mode))
	if err != nil {
		slog.Error("failed to build click", "error", err)
		return
	}

	speaker.Play(s)
}

// Close releases the sound device.
func (c *Clicker) Close() {
	if c.ready {
		speaker.Close()
		c.ready = false
	}
}

func toneFor(mode string) float64 {
	if mode == "assisted" {
		return assistedTone
	}
	return expertTone
}

func click(freq float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to create %v Hz tone: %w", freq, err)
	}
	return beep.Take(sampleRate.N(clickLength), sine), nil
}
