// Package webhook serves an HTTP endpoint for injecting remote input and
// reading the last published strip state.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/eventbus"
	"github.com/dokzlo13/ledremote/internal/transport"
)

// maxBody caps request bodies. A WiZmote frame is 13 bytes and codes are short.
const maxBody = 256

// CodeSink receives raw remote codes.
type CodeSink interface {
	Push(code uint32) bool
}

// PacketSink receives ESP-NOW frames and button presses.
type PacketSink interface {
	OnPacket(src string, data []byte) error
	Press(button uint8)
}

// Sinks lists the inputs the server feeds. Routes for nil sinks answer 404.
type Sinks struct {
	IR     CodeSink
	RF     CodeSink
	ESPNow PacketSink
}

// Server is an HTTP server that turns requests into remote input.
//
//	POST /ir            body "0xFF02FD"
//	POST /rf            body "1234"
//	POST /espnow/{mac}  body: raw 13-byte frame
//	POST /button        body "16"
//	GET  /state         last state-updated event
type Server struct {
	addr       string
	sinks      Sinks
	httpServer *http.Server

	mu      sync.Mutex
	state   []byte
	stateAt time.Time
}

// NewServer creates a new webhook server.
func NewServer(host string, port int, sinks Sinks) *Server {
	return &Server{
		addr:  fmt.Sprintf("%s:%d", host, port),
		sinks: sinks,
	}
}

// Subscribe keeps the latest state-updated event for GET /state.
func (s *Server) Subscribe(bus *eventbus.Bus) {
	bus.Subscribe(eventbus.EventTypeStateUpdated, s.handleStateEvent)
}

func (s *Server) handleStateEvent(e eventbus.Event) {
	body, err := json.Marshal(map[string]interface{}{
		"id":        e.ID,
		"call_mode": e.Data[eventbus.KeyCallMode],
		"source":    e.Data[eventbus.KeySource],
		"state":     e.Data[eventbus.KeyState],
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode state event")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Bus workers may deliver events out of order.
	if e.Timestamp.Before(s.stateAt) {
		return
	}
	s.state = body
	s.stateAt = e.Timestamp
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ir", s.handleCode("ir", s.sinks.IR))
	mux.HandleFunc("POST /rf", s.handleCode("rf433", s.sinks.RF))
	mux.HandleFunc("POST /espnow/{mac}", s.handleESPNow)
	mux.HandleFunc("POST /button", s.handleButton)
	mux.HandleFunc("GET /state", s.handleState)
	return mux
}

// Run starts the webhook server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", s.addr).Msg("Starting webhook server")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Webhook server shutdown error")
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleCode(source string, sink CodeSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sink == nil {
			http.NotFound(w, r)
			return
		}
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		code, err := transport.ParseCode(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !sink.Push(code) {
			log.Warn().Str("source", source).Uint32("code", code).Msg("Code queue full, dropping code")
			http.Error(w, "queue full", http.StatusServiceUnavailable)
			return
		}
		log.Debug().Str("source", source).Str("code", fmt.Sprintf("0x%X", code)).Msg("Code injected over HTTP")
		writeOK(w)
	}
}

func (s *Server) handleESPNow(w http.ResponseWriter, r *http.Request) {
	if s.sinks.ESPNow == nil {
		http.NotFound(w, r)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := s.sinks.ESPNow.OnPacket(r.PathValue("mac"), body); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeOK(w)
}

func (s *Server) handleButton(w http.ResponseWriter, r *http.Request) {
	if s.sinks.ESPNow == nil {
		http.NotFound(w, r)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(strings.TrimSpace(string(body)), 10, 8)
	if err != nil {
		http.Error(w, "invalid button id", http.StatusBadRequest)
		return
	}
	s.sinks.ESPNow.Press(uint8(id))
	writeOK(w)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	body := s.state
	s.mu.Unlock()
	if body == nil {
		http.Error(w, "no state published yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("Failed to read webhook request body")
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
