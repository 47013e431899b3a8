// Package web provides an HTTP status server for the blinkband daemon.
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/yudhisthereal/blinkband/internal/status"
)

// Server serves the status page over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
}

// New creates a Server that reads state from the given tracker.
func New(addr string, tracker *status.Tracker) *Server {
	s := &Server{tracker: tracker}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status.json", s.handleJSON)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	renderText(w, snap)
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap))
}

func renderText(w http.ResponseWriter, snap status.Snapshot) {
	fmt.Fprintf(w, "blinkband %s\n\n", snap.Config.DeviceID)
	fmt.Fprintf(w, "link:        %s\n", snap.Link)
	fmt.Fprintf(w, "raw:         red=%d ir=%d\n", snap.Raw.Red, snap.Raw.IR)
	fmt.Fprintf(w, "normalized:  red=%.3f ir=%.3f\n", snap.Norm.Red, snap.Norm.IR)
	fmt.Fprintf(w, "temperature: %.1f°C\n", snap.Temperature)
	fmt.Fprintf(w, "motion:      %.3f\n", snap.Motion)
	fmt.Fprintf(w, "sends:       ok=%d failed=%d last_status=%d\n",
		snap.Sends.OK, snap.Sends.Failed, snap.Sends.LastStatus)
	fmt.Fprintf(w, "uptime:      %s\n", snap.Uptime().Truncate(time.Second))
	fmt.Fprintf(w, "collector:   %s\n", snap.Config.CollectorURL)
}
