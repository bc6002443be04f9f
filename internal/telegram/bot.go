// Package telegram drives the chat orchestrator from Telegram: each user
// gets one in-memory session and a currently selected persona, switched with
// bot commands.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rolechat/internal/chat"
	"rolechat/internal/roles"
)

const clearCmd = "clear_history"

type Bot struct {
	api  *tgbotapi.BotAPI
	s    Sender
	orch *chat.Orchestrator

	mu         sync.Mutex
	sessions   map[int64]*chat.Session
	roleByUser map[int64]string
}

func New(botToken string, orch *chat.Orchestrator) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:        api,
		s:          api,
		orch:       orch,
		sessions:   make(map[int64]*chat.Session),
		roleByUser: make(map[int64]string),
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			b.handleIncomingMessage(ctx, update.Message)
			continue
		}
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
			continue
		}
	}
}

// session returns the user's session and selected role, creating defaults on
// first contact.
func (b *Bot) session(userID int64) (*chat.Session, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess, ok := b.sessions[userID]
	if !ok {
		sess = chat.NewSession()
		b.sessions[userID] = sess
	}
	role, ok := b.roleByUser[userID]
	if !ok {
		role = roles.Default().DisplayName
		b.roleByUser[userID] = role
	}
	return sess, role
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	log.Printf("incoming message from %d (@%s): %q", userID, msg.From.UserName, msg.Text)

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	sess, roleName := b.session(userID)
	res, err := b.orch.Submit(ctx, sess, roleName, msg.Text)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyInput):
			b.sendMessage(msg.Chat.ID, "Type a question first.")
		default:
			log.Printf("turn failed for user %d: %v", userID, err)
			b.sendMessage(msg.Chat.ID, "Sorry, the model could not be reached. Please try again.")
		}
		return
	}

	text := fmt.Sprintf("%s\n\n%s", roleName, res.Answer)
	if res.ImageURL != "" {
		text += "\n\n" + res.ImageURL
	}
	if res.Warning != "" {
		log.Printf("turn warning for user %d: %s", userID, res.Warning)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Clear history", clearCmd),
		),
	)
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyMarkup = kb
	if _, err := b.s.Send(out); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		_, roleName := b.session(msg.From.ID)
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(
			"Ask me anything and I answer as your selected creative role.\nCurrent role: %s\nUse /roles to list roles, /role <name> to switch, /clear to start over.",
			roleName))
	case "roles":
		var sb strings.Builder
		sb.WriteString("Available roles:\n")
		for _, r := range roles.List() {
			sb.WriteString(fmt.Sprintf("• %s — %s\n", r.DisplayName, r.ShortDescription))
		}
		b.sendMessage(msg.Chat.ID, sb.String())
	case "role":
		name := strings.TrimSpace(msg.CommandArguments())
		r, err := roles.Get(name)
		if err != nil {
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("Unknown role %q. Use /roles to see the list.", name))
			return
		}
		b.mu.Lock()
		b.roleByUser[msg.From.ID] = r.DisplayName
		b.mu.Unlock()
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("Now answering as %s.", r.DisplayName))
	case "clear":
		sess, _ := b.session(msg.From.ID)
		sess.Clear()
		b.sendMessage(msg.Chat.ID, "History cleared.")
	default:
		b.sendMessage(msg.Chat.ID, "Unknown command. Use /roles, /role <name> or /clear.")
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Data == clearCmd {
		sess, _ := b.session(cb.From.ID)
		sess.Clear()
		b.sendMessage(cb.Message.Chat.ID, "History cleared.")
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
