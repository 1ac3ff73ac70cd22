package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var renderCounter atomic.Int64

// StreamMessage is a single message sent over the render websocket
type StreamMessage struct {
	Type     string          `json:"type"` // "console", "progress", "complete", "error"
	Progress *ProgressUpdate `json:"progress,omitempty"`
	Console  *ConsoleMessage `json:"console,omitempty"`
	Image    string          `json:"image,omitempty"` // Base64 encoded PNG, complete only
	Stats    *Stats          `json:"stats,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// ProgressUpdate reports a finished row
type ProgressUpdate struct {
	Row       int     `json:"row"`
	RowsDone  int     `json:"rowsDone"`
	TotalRows int     `json:"totalRows"`
	Fraction  float64 `json:"fraction"`
	ElapsedMs int64   `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	Spheres          int     `json:"spheres"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	Workers          int     `json:"workers"`
	RenderTimeMs     int64   `json:"renderTimeMs"`
	AverageLuminance float64 `json:"averageLuminance"` // mean over the whole image, unrendered rows are black
}

func newStats(stats renderer.RenderStats, sc *scene.Scene, img image.Image) *Stats {
	return &Stats{
		Spheres:          sc.GetPrimitiveCount(),
		Width:            stats.Width,
		Height:           stats.Height,
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     stats.TotalSamples,
		AverageSamples:   stats.AverageSamples,
		SamplesPerSecond: stats.SamplesPerSecond(),
		Workers:          stats.Workers,
		RenderTimeMs:     stats.RenderTime.Milliseconds(),
		AverageLuminance: renderer.CalculateAverageLuminance(img),
	}
}

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sc, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, stats, err := renderer.NewRaytracer(sc, req.Sampling()).Render(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, preview(img, req.Thumbnail), output.PNG); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.RenderTime.Milliseconds(), 10))
	w.Header().Set("X-Total-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("write image: %v", err)
	}
}

// handleRenderStream renders over a websocket: console and row progress messages while the
// render runs, then one complete message carrying the image. Closing the socket cancels
// the render.
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sc, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warningf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client never sends anything; a read error means it went away
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	events := make(chan StreamMessage, 100)
	writerDone := make(chan struct{})
	go writeStreamMessages(conn, events, cancel, writerDone)

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	console := NewWebConsole(renderID, events)
	console.Infof("rendering %s at %dx%d, %d spp, depth %d", sc.Name, req.Width, req.Height, req.SamplesPerPixel, req.MaxDepth)

	startTime := time.Now()
	rt := renderer.NewRaytracer(sc, req.Sampling())
	rt.OnProgress(func(p renderer.RowProgress) {
		update := StreamMessage{
			Type: "progress",
			Progress: &ProgressUpdate{
				Row:       p.Row,
				RowsDone:  p.RowsDone,
				TotalRows: p.TotalRows,
				Fraction:  p.Fraction(),
				ElapsedMs: time.Since(startTime).Milliseconds(),
			},
		}
		select {
		case events <- update:
		default:
		}
	})

	img, stats, err := rt.Render(ctx)
	if err != nil {
		console.Errorf("render failed after %d/%d rows: %v", stats.RowsCompleted, stats.Height, err)
		events <- StreamMessage{Type: "error", Error: err.Error(), Stats: newStats(stats, sc, img)}
	} else if imageData, err := imageToBase64PNG(preview(img, req.Thumbnail)); err != nil {
		events <- StreamMessage{Type: "error", Error: "failed to encode image: " + err.Error()}
	} else {
		console.Infof("finished in %s", stats.RenderTime.Round(time.Millisecond))
		events <- StreamMessage{Type: "complete", Image: imageData, Stats: newStats(stats, sc, img)}
	}

	close(events)
	<-writerDone

	closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, closeMessage, time.Now().Add(time.Second))
}

// writeStreamMessages is the only writer of conn. After a failed write it keeps draining
// events so senders never block, and cancels the render.
func writeStreamMessages(conn *websocket.Conn, events <-chan StreamMessage, cancel context.CancelFunc, done chan<- struct{}) {
	defer close(done)

	failed := false
	for msg := range events {
		if failed {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			logger.Warningf("websocket write: %v", err)
			failed = true
			cancel()
		}
	}
}

// preview scales img down when a thumbnail size was requested
func preview(img image.Image, size int) image.Image {
	if size <= 0 {
		return img
	}
	return output.Thumbnail(img, size)
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, output.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
