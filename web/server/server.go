package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/gorilla/websocket"
)

var logger = log.New("server")

var errSceneNotAllowed = errors.New("server: scene file is not in the scene directory")

// Limits for request parameters
const (
	maxImageSize = 2000
	maxSamples   = 10000
	maxDepth     = 500
)

// Server serves preview renders over HTTP
type Server struct {
	port     int
	sceneDir string
	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// NewServer creates a new web server. Scene files are only loaded from sceneDir.
func NewServer(port int, sceneDir string) *Server {
	s := &Server{
		port:     port,
		sceneDir: sceneDir,
		mux:      http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Noticef("serving on http://localhost%s", httpServer.Addr)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Notice("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Built-in scene ID or scene file path
	Width           int    `json:"width"`           // Image width
	Height          int    `json:"height"`          // Image height
	SamplesPerPixel int    `json:"samplesPerPixel"` // Samples per pixel
	MaxDepth        int    `json:"maxDepth"`        // Bounce limit
	Seed            int64  `json:"seed"`            // Sampler seed
	Thumbnail       int    `json:"thumbnail"`       // Longest side of a scaled preview; 0 keeps full size
}

// Sampling returns the renderer settings for the request
func (req *RenderRequest) Sampling() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
		Seed:            req.Seed,
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files in the scene directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	files, err := scene.ListSceneFiles(s.sceneDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, append(scene.List(), files...))
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	defaults := renderer.DefaultSamplingConfig()
	query := r.URL.Query()

	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "simple"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", defaults.Width, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 10, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", defaults.MaxDepth, 0, maxDepth); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", int(defaults.Seed), 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)
	if req.Thumbnail, err = parseIntParam(query, "thumbnail", 0, 0, maxImageSize); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 && req.SamplesPerPixel > 100 {
		logger.Warningf("large render requested: %dx%d at %d spp", req.Width, req.Height, req.SamplesPerPixel)
	}

	return req, nil
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

// createScene builds the requested scene. Scene files must have been discovered in the
// scene directory so clients cannot read arbitrary files.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	aspectRatio := float64(req.Width) / float64(req.Height)
	if !scene.IsSceneFile(req.Scene) {
		return scene.Create(req.Scene, aspectRatio)
	}

	files, err := scene.ListSceneFiles(s.sceneDir)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if filepath.Clean(file.FilePath) == filepath.Clean(req.Scene) {
			return scene.NewFileScene(file.FilePath, aspectRatio)
		}
	}
	return nil, fmt.Errorf("%w: %q", errSceneNotAllowed, req.Scene)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
