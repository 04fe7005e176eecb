package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/abhisek/masquerade/internal/store"
)

func TestRecording_StoresEveryCall(t *testing.T) {
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	var logs bytes.Buffer
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 120, OutputTokens: 80}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	p := WithRecording(mock, ProviderMock, st.EventRepo(), log.New(&logs))
	ctx := WithPurpose(context.Background(), "draft-encounters")

	if _, err := p.Generate(ctx, Request{System: "be brief"}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("second call should fail")
	}

	usage, err := st.EventRepo().LLMUsage(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	want := store.LLMUsage{Requests: 2, Failures: 1, InputTokens: 120, OutputTokens: 80}
	if usage != want {
		t.Fatalf("usage = %+v, want %+v", usage, want)
	}
	if !strings.Contains(logs.String(), "llm request failed") {
		t.Fatalf("failure not logged:\n%s", logs.String())
	}
}

func TestRecording_NilRepo(t *testing.T) {
	p := WithRecording(NewMockProvider(MockResponse{Content: json.RawMessage(`1`)}), ProviderMock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != ProviderMock {
		t.Fatalf("model = %q", p.ModelID())
	}
}

func TestPurposeFrom(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("default purpose = %q", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), "x")); got != "x" {
		t.Fatalf("purpose = %q", got)
	}
}

func TestSummarize(t *testing.T) {
	got := summarize(Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Schema:   &Schema{Name: "encounter-draft"},
	})
	want := "[system] sys\n[user] hi\n[schema] encounter-draft"
	if got != want {
		t.Fatalf("summarize = %q, want %q", got, want)
	}
}
