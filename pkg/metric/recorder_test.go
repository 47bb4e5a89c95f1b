package metric

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGestureCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := NewGestureCounters(reg)

	g.Gesture(OutcomeSelected)
	g.Gesture(OutcomeSelected)
	g.Gesture(OutcomeNeutral)
	g.Selection("expert")
	g.SubMenuActivation(TriggerDirection)
	g.ViewShown()

	gestures := g.gestures.(*Counter)
	assert.Equal(t, "markingmenu_gestures_total", gestures.Name)
	assert.Equal(t, 2.0, testutil.ToFloat64(gestures.vec.WithLabelValues(OutcomeSelected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(gestures.vec.WithLabelValues(OutcomeNeutral)))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.views.(*Counter).vec.WithLabelValues()))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestRegistryHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := NewGestureCounters(reg)
	g.SubMenuActivation(TriggerPause)

	rec := httptest.NewRecorder()
	GetHandlerForRegistry(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `markingmenu_submenu_activations_total{trigger="pause"} 1`)
}

func TestNopRecorder(t *testing.T) {
	var r Recorder = Nop{}
	assert.NotPanics(t, func() {
		r.Gesture(OutcomeCancelled)
		r.Selection("assisted")
		r.SubMenuActivation(TriggerRelease)
		r.ViewShown()
	})
}
