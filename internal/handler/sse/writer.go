package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// EventWriter writes SSE events for one comment stream connection.
// The handler loop and the keep-alive ticker write from separate
// goroutines, so every write serializes on mu.
type EventWriter struct {
	mu         sync.Mutex
	w          http.ResponseWriter
	flusher    http.Flusher
	documentID string
}

// NewEventWriter creates an SSE event writer. Returns false if the
// underlying ResponseWriter does not support flushing.
func NewEventWriter(w http.ResponseWriter, documentID string) (*EventWriter, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &EventWriter{
		w:          w,
		flusher:    flusher,
		documentID: documentID,
	}, true
}

// WriteComments sends the full comment list as one "comments" event
func (s *EventWriter) WriteComments(comments []string) error {
	payload, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("encode comments event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "event: comments\ndata: %s\n\n", payload); err != nil {
		return fmt.Errorf("write comments event: %w", err)
	}

	s.flusher.Flush()
	return nil
}

// WriteKeepAlive writes an SSE comment line (: keepalive) and flushes.
// Returns error if connection is closed or write fails.
func (s *EventWriter) WriteKeepAlive() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// SSE spec: lines starting with : are comments, ignored by clients
	if _, err := fmt.Fprintf(s.w, ": keepalive\n\n"); err != nil {
		return fmt.Errorf("write keepalive failed: %w", err)
	}

	s.flusher.Flush()

	// Zero-byte write detects closed connections
	if _, err := s.w.Write([]byte{}); err != nil {
		return fmt.Errorf("connection closed: %w", err)
	}

	return nil
}
