package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"rolechat/internal/llm"
	"rolechat/internal/roles"
)

const directorRole = "Video Director 🎬"

type fakeLLM struct {
	resp llm.Response
	err  error
	got  []llm.Message
}

func (f *fakeLLM) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	f.got = msgs
	return f.resp, f.err
}

type fakeImage struct {
	url   string
	err   error
	calls int
}

func (f *fakeImage) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.url, f.err
}

type fakeAvatar struct{ glyph string }

func (f fakeAvatar) Fetch(ctx context.Context) string { return f.glyph }

func TestSubmitRoundTrip(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "Use low-key lighting."}}
	o := NewOrchestrator(fl, nil, nil, 0)
	sess := NewSession()

	res, err := o.Submit(context.Background(), sess, directorRole, "How do I light a night scene?")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if res.Answer != "Use low-key lighting." {
		t.Fatalf("unexpected answer: %q", res.Answer)
	}

	msgs := sess.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Speaker != SpeakerUser || msgs[0].Text != "How do I light a night scene?" {
		t.Fatalf("unexpected user message: %+v", msgs[0])
	}
	if msgs[0].RoleName != "" || msgs[0].ImageURL != "" {
		t.Fatalf("user message must not carry role or image: %+v", msgs[0])
	}
	if msgs[1].Speaker != SpeakerAssistant || msgs[1].Text != "Use low-key lighting." {
		t.Fatalf("unexpected assistant message: %+v", msgs[1])
	}
	if msgs[1].RoleName != directorRole {
		t.Fatalf("assistant message not tagged with role: %+v", msgs[1])
	}
}

func TestSubmitAssemblesSystemFirst(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "ok"}}
	o := NewOrchestrator(fl, nil, nil, 0)
	sess := NewSession()

	if _, err := o.Submit(context.Background(), sess, directorRole, "first question"); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	// Switch persona; only the new system prompt may be sent.
	if _, err := o.Submit(context.Background(), sess, "Acting Coach 🎭", "second question"); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	coach, _ := roles.Get("Acting Coach 🎭")
	got := fl.got
	if len(got) != 4 {
		t.Fatalf("expected system+2 history+user = 4 messages, got %d", len(got))
	}
	if got[0].Role != llm.RoleSystem || got[0].Content != coach.SystemPrompt {
		t.Fatalf("first message must be the current role's system prompt: %+v", got[0])
	}
	for _, m := range got[1:] {
		if m.Role == llm.RoleSystem {
			t.Fatalf("stale system message resent: %+v", m)
		}
	}
	if got[1].Role != llm.RoleUser || got[1].Content != "first question" {
		t.Fatalf("history user entry wrong: %+v", got[1])
	}
	if got[2].Role != llm.RoleAssistant || got[2].Content != "ok" {
		t.Fatalf("history assistant entry wrong: %+v", got[2])
	}
	if got[3].Role != llm.RoleUser || got[3].Content != "second question" {
		t.Fatalf("new user message must come last: %+v", got[3])
	}
}

func TestSubmitRejectsPlaceholderInput(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "should never be called"}}
	o := NewOrchestrator(fl, nil, nil, 0)
	sess := NewSession()

	for _, raw := range []string{"", "   ", "e.g., anything", "  e.g., anything"} {
		_, err := o.Submit(context.Background(), sess, directorRole, raw)
		if !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("input %q: expected ErrEmptyInput, got %v", raw, err)
		}
	}
	if sess.Len() != 0 {
		t.Fatalf("rejected input mutated history: %d messages", sess.Len())
	}
	if fl.got != nil {
		t.Fatalf("provider called for empty input")
	}
}

func TestSubmitRejectsUnknownRole(t *testing.T) {
	fl := &fakeLLM{}
	o := NewOrchestrator(fl, nil, nil, 0)
	sess := NewSession()

	_, err := o.Submit(context.Background(), sess, "Nonexistent Role", "hi")
	if !errors.Is(err, roles.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if sess.Len() != 0 {
		t.Fatalf("history must stay empty, got %d messages", sess.Len())
	}
	if fl.got != nil {
		t.Fatalf("provider called for unknown role")
	}
}

func TestSubmitProviderFailureLeavesHistoryUntouched(t *testing.T) {
	cause := errors.New("connection reset")
	fl := &fakeLLM{err: fmt.Errorf("failed to create chat completion: %w", cause)}
	o := NewOrchestrator(fl, nil, nil, 0)
	sess := NewSession()

	_, err := o.Submit(context.Background(), sess, directorRole, "hello")
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not preserved: %v", err)
	}
	if sess.Len() != 0 {
		t.Fatalf("failed turn must contribute zero messages, got %d", sess.Len())
	}
}

func TestSubmitQuotaFallbackCommitsMockResponse(t *testing.T) {
	fl := &fakeLLM{err: fmt.Errorf("chat completion: %w", llm.ErrQuotaExhausted)}
	o := NewOrchestrator(fl, nil, nil, 0)
	sess := NewSession()

	res, err := o.Submit(context.Background(), sess, directorRole, "hello")
	if err != nil {
		t.Fatalf("quota exhaustion must not surface as an error: %v", err)
	}
	if !strings.Contains(res.Answer, MockResponseMarker) {
		t.Fatalf("mock marker missing from answer: %q", res.Answer)
	}
	msgs := sess.Messages()
	if len(msgs) != 2 {
		t.Fatalf("quota turn must still commit, got %d messages", len(msgs))
	}
	if !strings.Contains(msgs[1].Text, MockResponseMarker) {
		t.Fatalf("mock body not committed: %q", msgs[1].Text)
	}
}

func TestSubmitAttachesImage(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "answer"}}
	fi := &fakeImage{url: "https://img.example/1.png"}
	o := NewOrchestrator(fl, fi, nil, 0)
	sess := NewSession()

	res, err := o.Submit(context.Background(), sess, directorRole, "a foggy harbor at dawn")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if res.ImageURL != "https://img.example/1.png" || res.Warning != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	msgs := sess.Messages()
	if msgs[1].ImageURL != "https://img.example/1.png" {
		t.Fatalf("image ref not stored on assistant message: %+v", msgs[1])
	}
	if msgs[0].ImageURL != "" {
		t.Fatalf("user message must not carry an image: %+v", msgs[0])
	}
}

func TestSubmitImageFailureIsNonFatal(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "answer"}}
	fi := &fakeImage{err: errors.New("image backend down")}
	o := NewOrchestrator(fl, fi, nil, 0)
	sess := NewSession()

	res, err := o.Submit(context.Background(), sess, directorRole, "hello")
	if err != nil {
		t.Fatalf("image failure must not fail the turn: %v", err)
	}
	if res.ImageURL != "" {
		t.Fatalf("image url should be empty on failure, got %q", res.ImageURL)
	}
	if res.Warning == "" {
		t.Fatalf("caller must observe a non-fatal warning")
	}
	if sess.Len() != 2 {
		t.Fatalf("turn must still commit, got %d messages", sess.Len())
	}
	if sess.Messages()[1].ImageURL != "" {
		t.Fatalf("assistant message must have no image ref on failure")
	}
}

func TestSubmitImageNotRequestedOnProviderFailure(t *testing.T) {
	fl := &fakeLLM{err: errors.New("boom")}
	fi := &fakeImage{url: "https://img.example/1.png"}
	o := NewOrchestrator(fl, fi, nil, 0)

	_, err := o.Submit(context.Background(), NewSession(), directorRole, "hello")
	if err == nil {
		t.Fatalf("expected provider error")
	}
	if fi.calls != 0 {
		t.Fatalf("image provider must not be called after text failure, got %d calls", fi.calls)
	}
}

func TestSubmitAttachesAvatar(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "answer"}}
	o := NewOrchestrator(fl, nil, fakeAvatar{glyph: "&#128512;"}, 0)
	sess := NewSession()

	res, err := o.Submit(context.Background(), sess, directorRole, "hello")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if res.Avatar != "&#128512;" {
		t.Fatalf("unexpected avatar: %q", res.Avatar)
	}
	if sess.Messages()[1].Avatar != "&#128512;" {
		t.Fatalf("avatar not stored on assistant message")
	}
}

func TestSubmitTrimsAnswer(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "  padded answer \n"}}
	o := NewOrchestrator(fl, nil, nil, 0)

	res, err := o.Submit(context.Background(), NewSession(), directorRole, "hello")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if res.Answer != "padded answer" {
		t.Fatalf("answer not trimmed: %q", res.Answer)
	}
}

func TestClean(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"  hello  ", "hello"},
		{"e.g., How can I shoot a dream sequence?", ""},
		{"   e.g., anything", ""},
		{"see e.g., this", "see e.g., this"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Clean(tc.in); got != tc.want {
			t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
