package telegram

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rolechat/internal/chat"
	"rolechat/internal/llm"
	"rolechat/internal/roles"
)

type fakeSender struct{ sent []string }

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	sw := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, sw.Text)
	return tgbotapi.Message{}, nil
}

type fakeLLM struct {
	resp llm.Response
	err  error
}

func (f fakeLLM) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	return f.resp, f.err
}

func newTestBot(client llm.Client) (*Bot, *fakeSender) {
	fs := &fakeSender{}
	b := &Bot{
		s:          fs,
		orch:       chat.NewOrchestrator(client, nil, nil, 0),
		sessions:   make(map[int64]*chat.Session),
		roleByUser: make(map[int64]string),
	}
	return b, fs
}

func userMessage(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID, UserName: "user"},
		Chat: &tgbotapi.Chat{ID: 100},
		Text: text,
	}
}

func command(userID int64, text string) *tgbotapi.Message {
	msg := userMessage(userID, text)
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}}
	return msg
}

func TestHandleMessage_AnswersWithDefaultRole(t *testing.T) {
	b, fs := newTestBot(fakeLLM{resp: llm.Response{Content: "Use low-key lighting."}})

	b.handleIncomingMessage(context.Background(), userMessage(42, "How do I light a night scene?"))

	if len(fs.sent) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(fs.sent))
	}
	out := fs.sent[0]
	if !strings.Contains(out, roles.Default().DisplayName) {
		t.Fatalf("answer missing role header: %q", out)
	}
	if !strings.Contains(out, "Use low-key lighting.") {
		t.Fatalf("answer body missing: %q", out)
	}

	sess, _ := b.session(42)
	if sess.Len() != 2 {
		t.Fatalf("expected committed turn in session, got %d messages", sess.Len())
	}
}

func TestHandleMessage_RoleSwitch(t *testing.T) {
	b, fs := newTestBot(fakeLLM{resp: llm.Response{Content: "Break the scene into beats."}})

	b.handleIncomingMessage(context.Background(), command(42, "/role Acting Coach 🎭"))
	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "Acting Coach 🎭") {
		t.Fatalf("switch confirmation missing: %+v", fs.sent)
	}

	b.handleIncomingMessage(context.Background(), userMessage(42, "How to rehearse?"))
	sess, role := b.session(42)
	if role != "Acting Coach 🎭" {
		t.Fatalf("role not switched: %q", role)
	}
	if sess.Messages()[1].RoleName != "Acting Coach 🎭" {
		t.Fatalf("assistant message tagged with wrong role: %+v", sess.Messages()[1])
	}
}

func TestHandleMessage_UnknownRoleCommand(t *testing.T) {
	b, fs := newTestBot(fakeLLM{})

	b.handleIncomingMessage(context.Background(), command(42, "/role Nonexistent Role"))
	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "Unknown role") {
		t.Fatalf("expected unknown-role reply, got %+v", fs.sent)
	}
	if _, role := b.session(42); role != roles.Default().DisplayName {
		t.Fatalf("selected role changed on failed switch: %q", role)
	}
}

func TestHandleMessage_ProviderFailure(t *testing.T) {
	b, fs := newTestBot(fakeLLM{err: context.DeadlineExceeded})

	b.handleIncomingMessage(context.Background(), userMessage(42, "hello"))
	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "could not be reached") {
		t.Fatalf("expected failure reply, got %+v", fs.sent)
	}
	sess, _ := b.session(42)
	if sess.Len() != 0 {
		t.Fatalf("failed turn mutated session: %d messages", sess.Len())
	}
}

func TestCallbackClearsOnlyThatUser(t *testing.T) {
	b, fs := newTestBot(fakeLLM{resp: llm.Response{Content: "hi"}})
	b.handleIncomingMessage(context.Background(), userMessage(1, "first"))
	b.handleIncomingMessage(context.Background(), userMessage(2, "second"))

	b.handleCallback(&tgbotapi.CallbackQuery{
		From:    &tgbotapi.User{ID: 1},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 100}},
		Data:    clearCmd,
	})

	sess1, _ := b.session(1)
	sess2, _ := b.session(2)
	if sess1.Len() != 0 {
		t.Fatalf("user 1 history not cleared")
	}
	if sess2.Len() != 2 {
		t.Fatalf("user 2 history affected by user 1 clear")
	}
	if !strings.Contains(fs.sent[len(fs.sent)-1], "History cleared") {
		t.Fatalf("clear confirmation missing: %+v", fs.sent)
	}
}

func TestRolesCommandListsCatalog(t *testing.T) {
	b, fs := newTestBot(fakeLLM{})
	b.handleIncomingMessage(context.Background(), command(42, "/roles"))
	if len(fs.sent) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(fs.sent))
	}
	for _, r := range roles.List() {
		if !strings.Contains(fs.sent[0], r.DisplayName) {
			t.Fatalf("role %q missing from listing: %q", r.DisplayName, fs.sent[0])
		}
	}
}
