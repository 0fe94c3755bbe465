package sse

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEventWriterConcurrentWritesKeepFramesWhole(t *testing.T) {
	recorder := httptest.NewRecorder()
	writer, ok := NewEventWriter(recorder, "doc-1")
	if !ok {
		t.Fatal("recorder should support flushing")
	}

	// Keep-alive ticking on its own goroutine while the handler side
	// writes comment events, as a live connection does.
	keepAlive := NewTickerKeepAlive(time.Millisecond)
	done := keepAlive.Start(writer, testLogger())

	for i := 0; i < 200; i++ {
		if err := writer.WriteComments([]string{"first", "second"}); err != nil {
			t.Fatalf("WriteComments: %v", err)
		}
	}

	keepAlive.Stop()
	<-done

	// Every frame in the stream must be whole: a comments event carries
	// its complete data line, and nothing else appears between them.
	scanner := bufio.NewScanner(recorder.Body)
	events := 0
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
		case line == ": keepalive":
		case line == "event: comments":
			if !scanner.Scan() {
				t.Fatal("comments event missing its data line")
			}
			data, found := strings.CutPrefix(scanner.Text(), "data: ")
			if !found {
				t.Fatalf("comments event followed by %q, want a data line", scanner.Text())
			}
			var got []string
			if err := json.Unmarshal([]byte(data), &got); err != nil {
				t.Fatalf("data line is not one whole JSON array: %v", err)
			}
			if len(got) != 2 || got[0] != "first" {
				t.Fatalf("event payload = %#v", got)
			}
			events++
		default:
			t.Fatalf("fragmented frame in stream: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan stream: %v", err)
	}
	if events != 200 {
		t.Errorf("whole comment events = %d, want 200", events)
	}
}

func TestEventWriterRequiresFlusher(t *testing.T) {
	// A plain ResponseWriter with no Flush cannot stream
	if _, ok := NewEventWriter(plainWriter{}, "doc-1"); ok {
		t.Error("expected NewEventWriter to refuse a non-flushing writer")
	}
}

type plainWriter struct{}

func (plainWriter) Header() http.Header       { return http.Header{} }
func (plainWriter) Write(p []byte) (int, error) { return len(p), nil }
func (plainWriter) WriteHeader(int)           {}
