package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bop/internal/engine"
	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
)

// DanceServer serves the web stage: the shell page, the SSE frame stream and
// the JSON control surface. The grid is optional; without it the tracks
// endpoint returns an empty list.
type DanceServer struct {
	dancer *engine.Dancer
	grid   *library.Grid
	logger *log.Logger
}

// NewDanceServer wires the handlers to a dancer. A nil logger discards the
// request log.
func NewDanceServer(dancer *engine.Dancer, grid *library.Grid, logger *log.Logger) *DanceServer {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &DanceServer{dancer: dancer, grid: grid, logger: logger}
}

// Handler builds the full route table behind the request logger.
func (s *DanceServer) Handler() http.Handler {
	r := NewBasicRouter()
	r.Use(RequestLogger(s.logger))

	r.Handle(http.MethodGet, "/", http.HandlerFunc(s.handleIndex))
	r.Handle(http.MethodGet, "/events", http.HandlerFunc(s.handleEvents))
	r.Handle(http.MethodGet, "/health", http.HandlerFunc(s.handleHealth))

	r.Handle(http.MethodGet, "/api/params", http.HandlerFunc(s.handleParams))
	r.Handle(http.MethodPost, "/api/params", http.HandlerFunc(s.handleSetParam))
	r.Handle(http.MethodPost, "/api/bpm", http.HandlerFunc(s.handleBPM))
	r.Handle(http.MethodPost, "/api/control", http.HandlerFunc(s.handleControl))
	r.Handle(http.MethodGet, "/api/stats", http.HandlerFunc(s.handleStats))
	r.Handle(http.MethodPost, "/api/stages", http.HandlerFunc(s.handleAddStage))
	r.Handle(http.MethodDelete, "/api/stages/{id}", http.HandlerFunc(s.handleRemoveStage))
	r.Handle(http.MethodGet, "/api/tracks", http.HandlerFunc(s.handleTracks))

	return r
}

// Serve runs the HTTP server until the context is cancelled, then shuts it
// down gracefully.
func (s *DanceServer) Serve(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- httpServer.ListenAndServe()
	}()
	s.logger.Info("web stage listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *DanceServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexPage)
}

func (s *DanceServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"running": s.dancer.Running(),
	})
}

// frameEvent is the SSE payload: one JSON object per tick carrying every
// stage's SVG document.
type frameEvent struct {
	Clock   float64           `json:"clock"`
	Beat    float64           `json:"beat"`
	BPM     float64           `json:"bpm"`
	Pose    string            `json:"pose"`
	Artwork string            `json:"artwork,omitempty"`
	Stages  map[string]string `json:"stages"`
}

// handleEvents streams frames as server-sent events until the client leaves.
// The first event is a snapshot so the page paints before the next tick.
func (s *DanceServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	updates, cancel := s.dancer.Subscribe()
	defer cancel()

	writeFrame(w, s.dancer.Snapshot())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case u, open := <-updates:
			if !open {
				return
			}
			writeFrame(w, u)
			flusher.Flush()
		}
	}
}

func writeFrame(w io.Writer, u engine.Update) {
	data, err := json.Marshal(frameEvent{
		Clock:   u.Clock,
		Beat:    u.Beat,
		BPM:     u.BPM,
		Pose:    u.PoseName,
		Artwork: u.Artwork,
		Stages:  u.Stages,
	})
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: frame\ndata: %s\n\n", data)
}

func (s *DanceServer) handleParams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"params": s.dancer.Params()})
}

func (s *DanceServer) handleSetParam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.dancer.SetParam(req.Name, req.Value); err != nil {
		if errors.Is(err, shared.ErrUnknownParam) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, _ := s.dancer.Param(req.Name)
	writeJSON(w, http.StatusOK, map[string]any{"name": req.Name, "value": v})
}

func (s *DanceServer) handleBPM(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BPM float64 `json:"bpm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BPM <= 0 {
		writeError(w, http.StatusBadRequest, "invalid bpm")
		return
	}

	s.dancer.SetBPM(req.BPM)
	v, _ := s.dancer.Param("bpm")
	writeJSON(w, http.StatusOK, map[string]any{"bpm": v})
}

func (s *DanceServer) handleControl(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var err error
	switch req.Action {
	case "start":
		err = s.dancer.Start()
	case "stop":
		err = s.dancer.Stop()
	case "still":
		s.dancer.Still()
	case "reset":
		s.dancer.Reset()
	case "drift-start":
		s.dancer.StartDrift()
	case "drift-stop":
		s.dancer.StopDrift()
	case "auto-start":
		err = s.dancer.EnableAutoDrive()
	case "auto-stop":
		s.dancer.DisableAutoDrive()
	case "refresh-artwork":
		s.dancer.RefreshArtwork()
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown action %q", req.Action))
		return
	}

	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "action": req.Action})
}

func (s *DanceServer) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dancer.Stats())
}

func (s *DanceServer) handleAddStage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scale float64 `json:"scale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := s.dancer.AddStage(req.Scale)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *DanceServer) handleRemoveStage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.dancer.RemoveStage(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *DanceServer) handleTracks(w http.ResponseWriter, r *http.Request) {
	rows := []models.Track{}
	if s.grid != nil {
		rows = s.grid.Rows()
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": rows, "count": len(rows)})
}
