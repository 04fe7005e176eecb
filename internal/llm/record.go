package llm

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/masquerade/internal/store"
)

// RecordingProvider writes one store event per Generate call and logs it.
// Recording failures are logged and never fail the request.
type RecordingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *log.Logger
}

// WithRecording wraps p. provider is the vendor name stored with each
// event; events and logger may be nil.
func WithRecording(p Provider, provider string, events store.EventRepo, logger *log.Logger) Provider {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &RecordingProvider{inner: p, provider: provider, events: events, logger: logger}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)
	r.logger.Debug("llm request", "purpose", purpose, "model", r.inner.ModelID(), "prompt", summarize(req))

	resp, err := r.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  r.provider,
		Model:     r.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		r.logger.Warn("llm request failed", "purpose", purpose, "latency_ms", data.LatencyMs, "err", err)
	} else {
		r.logger.Info("llm request", "purpose", purpose, "model", data.Model,
			"tokens", resp.Usage.Total(), "latency_ms", data.LatencyMs)
	}

	if r.events != nil {
		if recErr := r.events.AppendLLMRequest(ctx, data); recErr != nil {
			r.logger.Error("record llm request", "err", recErr)
		}
	}
	return resp, err
}

func (r *RecordingProvider) ModelID() string { return r.inner.ModelID() }

// summarize renders a request compactly for debug logs.
func summarize(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system] %s\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s] %s\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		fmt.Fprintf(&b, "[schema] %s", req.Schema.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}
