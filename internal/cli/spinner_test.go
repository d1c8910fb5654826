package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Encoding PNG...")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Encoding PNG...") {
		t.Errorf("spinner output %q should contain the message", out.String())
	}
	if !strings.HasSuffix(out.String(), "\r") {
		t.Error("Stop should clear the line")
	}
}

func TestSpinnerClearsOnCancel(t *testing.T) {
	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &out, "Encoding PNG...")

	cancel()
	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after cancellation")
	}
	if !strings.HasSuffix(out.String(), "\r") {
		t.Errorf("cancelled spinner should clear the line, got %q", out.String())
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &syncBuffer{}, "Encoding PNG...")
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithResult(t *testing.T) {
	tests := []struct {
		name string
		stop func(*Spinner)
	}{
		{"success", func(s *Spinner) { s.StopWithSuccess("Saved") }},
		{"error", func(s *Spinner) { s.StopWithError("Saving failed") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out syncBuffer
			s := startSpinner(context.Background(), &out, "Encoding PNG...")
			time.Sleep(50 * time.Millisecond)
			tt.stop(s)
			if !strings.HasSuffix(out.String(), "\r") {
				t.Errorf("line not cleared: %q", out.String())
			}
		})
	}
}
