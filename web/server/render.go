package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/df07/go-grid-raytracer/pkg/renderer"
)

// SSEEvent represents a server-sent event queued for the response writer
type SSEEvent struct {
	Type string // "console", "progress", "complete", "error"
	Data string // JSON-encoded data
}

// ProgressUpdate reports finished rows
type ProgressUpdate struct {
	RenderID string `json:"renderId"`
	Rows     int    `json:"rows"`
	Total    int    `json:"total"`
}

// RenderResult is the payload of the complete event
type RenderResult struct {
	RenderID  string      `json:"renderId"`
	ImageData string      `json:"imageData"` // Base64 encoded PNG
	Stats     RenderStats `json:"stats"`
	ElapsedMs int64       `json:"elapsedMs"`
}

// RenderStats represents render statistics
type RenderStats struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	PrimaryRays     int64   `json:"primaryRays"`
	SecondaryRays   int64   `json:"secondaryRays"`
	ShadowRays      int64   `json:"shadowRays"`
	RaysPerSecond   float64 `json:"raysPerSecond"`
	Workers         int     `json:"workers"`
	Accelerator     string  `json:"accelerator"`
	Objects         int     `json:"objects"`
}

func newRenderStats(stats renderer.RenderStats, objects int) RenderStats {
	return RenderStats{
		Width:           stats.Width,
		Height:          stats.Height,
		SamplesPerPixel: stats.SamplesPerPixel,
		PrimaryRays:     stats.Rays.Primary,
		SecondaryRays:   stats.Rays.Secondary,
		ShadowRays:      stats.Rays.Shadow,
		RaysPerSecond:   stats.RaysPerSecond(),
		Workers:         stats.Workers,
		Accelerator:     stats.Accelerator,
		Objects:         objects,
	}
}

// handleRender renders a scene and streams console output, row progress and
// the final image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)
	ctx := r.Context()

	req, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	renderID := uuid.NewString()
	s.logger.WithFields(logrus.Fields{"render": renderID, "scene": req.Scene}).Info("Render requested")

	// Only the render goroutine sends, and it closes the channel when done
	events := make(chan SSEEvent, 64)
	trySend := func(event SSEEvent) bool {
		select {
		case events <- event:
			return true
		default:
			return false
		}
	}
	sendJSON := func(eventType string, v interface{}) bool {
		data, err := json.Marshal(v)
		if err != nil {
			return trySend(SSEEvent{Type: "error", Data: err.Error()})
		}
		return trySend(SSEEvent{Type: eventType, Data: string(data)})
	}
	logger := newRenderLogger(renderID, logrus.DebugLevel, func(msg ConsoleMessage) bool {
		return sendJSON("console", msg)
	})

	go func() {
		defer close(events)
		final := s.render(r, req, renderID, logger, sendJSON)
		select {
		case events <- final:
		case <-ctx.Done():
		}
	}()

	for event := range events {
		if ctx.Err() != nil {
			continue
		}
		writeSSEEvent(w, event)
	}
}

// render runs one render and returns its complete or error event
func (s *Server) render(r *http.Request, req SceneRequest, renderID string, logger logrus.FieldLogger,
	sendJSON func(string, interface{}) bool) SSEEvent {

	start := time.Now()
	sceneObj, err := s.loadScene(req, logger)
	if err != nil {
		return SSEEvent{Type: "error", Data: err.Error()}
	}

	rt := renderer.NewRaytracer(sceneObj, logger)
	rt.SetProgress(func(done, total int) {
		sendJSON("progress", ProgressUpdate{RenderID: renderID, Rows: done, Total: total})
	})

	img, stats, err := rt.Render(r.Context())
	if err != nil {
		s.logger.WithError(err).WithField("render", renderID).Warn("Render failed")
		return SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)}
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		return SSEEvent{Type: "error", Data: fmt.Sprintf("failed to encode image: %v", err)}
	}
	data, err := json.Marshal(RenderResult{
		RenderID:  renderID,
		ImageData: imageData,
		Stats:     newRenderStats(stats, len(sceneObj.Objects)),
		ElapsedMs: time.Since(start).Milliseconds(),
	})
	if err != nil {
		return SSEEvent{Type: "error", Data: err.Error()}
	}
	s.logger.WithFields(stats.Fields()).WithField("render", renderID).Info("Render served")
	return SSEEvent{Type: "complete", Data: string(data)}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvent writes one event and flushes it to the client
func writeSSEEvent(w http.ResponseWriter, event SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
