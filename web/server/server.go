package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/df07/go-grid-raytracer/pkg/loaders"
	"github.com/df07/go-grid-raytracer/pkg/scene"
)

// Server serves the grid raytracer over HTTP
type Server struct {
	port     int
	sceneDir string
	logger   logrus.FieldLogger
}

// NewServer creates a new web server. Scene files are discovered in sceneDir.
func NewServer(port int, sceneDir string, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{port: port, sceneDir: sceneDir, logger: logger}
}

// SceneRequest holds the scene selection and overrides shared by every endpoint
type SceneRequest struct {
	Scene     string
	Overrides scene.Overrides
}

// Handler returns the routes of the API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /api/inspect", s.handleInspect)
	mux.HandleFunc("GET /api/grid", s.handleGrid)
	mux.HandleFunc("GET /api/grid/chart", s.handleGridChart)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", srv.Addr).Info("Starting web server")
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info("Web server stopped")
	return nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes followed by the scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes := scene.BuiltinScenes()
	if s.sceneDir != "" {
		files, err := scene.ListSceneFiles(s.sceneDir)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		scenes = append(scenes, files...)
	}
	writeJSON(w, http.StatusOK, scenes)
}

// parseSceneRequest reads the scene and override parameters from the query
func parseSceneRequest(values url.Values) (SceneRequest, error) {
	req := SceneRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	o := &req.Overrides
	if o.Width, err = parseIntParam(values, "width", 0, 8, 2000); err != nil {
		return req, err
	}
	if o.Height, err = parseIntParam(values, "height", 0, 8, 2000); err != nil {
		return req, err
	}
	if o.AA, err = parseIntParam(values, "aa", 0, 1, 8); err != nil {
		return req, err
	}
	if o.Depth, err = parseIntParam(values, "depth", 0, 1, 20); err != nil {
		return req, err
	}
	if o.Res, err = parseFloatParam(values, "res", 0, 0, 128); err != nil {
		return req, err
	}
	o.Accel = values.Get("accel")
	o.Resolution = values.Get("resolution")
	return req, nil
}

// loadScene builds the requested scene, applies the overrides and
// preprocesses it. Unknown IDs are looked up among the scene files.
func (s *Server) loadScene(req SceneRequest, logger logrus.FieldLogger) (*scene.Scene, error) {
	sceneObj, err := scene.Lookup(req.Scene)
	if errors.Is(err, scene.ErrUnknownScene) && s.sceneDir != "" {
		files, listErr := scene.ListSceneFiles(s.sceneDir)
		if listErr != nil {
			return nil, listErr
		}
		for _, info := range files {
			if info.ID == req.Scene {
				sceneObj, err = loaders.LoadSceneFile(info.FilePath)
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}

	if err := req.Overrides.Apply(sceneObj); err != nil {
		return nil, err
	}
	if err := sceneObj.Preprocess(logger); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// sceneStatus maps scene loading errors to HTTP status codes
func sceneStatus(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
