package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mchmarny/markingmenu/pkg/menu"
	"github.com/mchmarny/markingmenu/pkg/replay"
)

// replayHandler runs a posted recording against root. YAML bodies are
// accepted when the content type says so, JSON otherwise.
func replayHandler(root *menu.Node, opts replay.Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Info("handling replay",
			"method", r.Method,
			"url", r.URL.Path,
			"content_type", r.Header.Get("Content-Type"),
		)

		body := http.MaxBytesReader(w, r.Body, DefaultMaxReplayBytes)
		defer body.Close()

		var (
			rec *replay.Recording
			err error
		)

		if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
			rec, err = replay.DecodeYAML(body)
		} else {
			rec, err = replay.DecodeJSON(body)
		}

		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				writeError(w, http.StatusRequestEntityTooLarge, "recording too large")
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := replay.Run(root, rec, opts)
		if err != nil {
			slog.Error("replay failed", "error", err)
			writeError(w, http.StatusInternalServerError, "error, see logs for details")
			return
		}

		writeJSON(w, http.StatusOK, res)

		slog.Info("replay completed",
			"id", res.ID,
			"selections", len(res.Selections),
		)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	slog.Error("handling error response",
		"status", status,
		"message", message,
	)

	b, _ := json.Marshal(map[string]string{"error": message})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, "error, see logs for details")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		slog.Error("failed to write JSON response", "error", err)
		http.Error(w, fmt.Sprintf("internal server error: %v", err), http.StatusInternalServerError)
		return
	}

	slog.Debug("json response sent", "status", status)
}
