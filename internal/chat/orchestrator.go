// Package chat turns a (role, user text, session) triple into a committed
// conversation turn: it assembles the persona-scoped prompt, calls the text
// provider, optionally asks for an illustration, and appends the resulting
// user/assistant pair to the session transcript.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"rolechat/internal/image"
	"rolechat/internal/llm"
	"rolechat/internal/roles"
)

// ErrEmptyInput reports that the submitted text was empty after cleaning
// (blank, or still the untouched example placeholder).
var ErrEmptyInput = errors.New("empty input")

// ProviderError classifies a failed text-completion call. The turn is
// rejected and the transcript is left untouched.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return fmt.Sprintf("provider error: %v", e.Err) }
func (e *ProviderError) Unwrap() error { return e.Err }

// examplePrefix marks an untouched example prompt in the input box. Text
// starting with it is treated as if nothing was typed.
const examplePrefix = "e.g.,"

// MockResponseMarker prefixes the fallback body substituted when the text
// provider reports exhausted quota.
const MockResponseMarker = "[Mock response]"

var quotaMockResponse = MockResponseMarker + "\n" +
	"The live model cannot be called right now because the API credit is exhausted.\n" +
	"Here is how this role would think about it instead:\n\n" +
	"- Separate the emotion, composition, and rhythm of the scene and analyze them one at a time\n" +
	"- Decide what you want the audience to feel first, then combine elements to serve that feeling\n" +
	"- Make several short sketches before the real shoot or performance and compare them\n"

// AvatarSource supplies a decorative glyph for assistant bubbles. It has no
// error path; implementations return a default glyph on failure.
type AvatarSource interface {
	Fetch(ctx context.Context) string
}

// TurnResult is the outcome of one committed turn.
type TurnResult struct {
	Answer   string
	ImageURL string
	Avatar   string
	// Warning carries non-fatal notices, currently only an image
	// generation failure. Empty on a fully clean turn.
	Warning string
}

type Orchestrator struct {
	llmClient llm.Client
	images    image.Generator // nil disables the image step
	avatars   AvatarSource    // nil disables avatars
	timeout   time.Duration
}

func NewOrchestrator(llmClient llm.Client, images image.Generator, avatars AvatarSource, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		llmClient: llmClient,
		images:    images,
		avatars:   avatars,
		timeout:   timeout,
	}
}

// Clean trims the raw input and discards it entirely when it is still the
// example placeholder.
func Clean(raw string) string {
	t := strings.TrimSpace(raw)
	if strings.HasPrefix(t, examplePrefix) {
		return ""
	}
	return t
}

// Submit runs one turn against the session. On success exactly two messages
// are appended (the cleaned user text, then the assistant reply tagged with
// the role). On any returned error the session is untouched.
func (o *Orchestrator) Submit(ctx context.Context, sess *Session, roleName, rawText string) (TurnResult, error) {
	role, err := roles.Get(roleName)
	if err != nil {
		return TurnResult{}, err
	}

	text := Clean(rawText)
	if text == "" {
		return TurnResult{}, ErrEmptyInput
	}

	// Only the currently selected role's system prompt is sent; earlier
	// turns keep their text in the transcript but not their framing.
	history := sess.Messages()
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: role.SystemPrompt})
	for _, m := range history {
		msgs = append(msgs, llm.Message{Role: m.Speaker, Content: m.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})

	genCtx, cancel := o.boundCtx(ctx)
	resp, err := o.llmClient.Generate(genCtx, msgs)
	cancel()

	var answer string
	switch {
	case err == nil:
		answer = strings.TrimSpace(resp.Content)
	case errors.Is(err, llm.ErrQuotaExhausted):
		// Keep the session usable for demos: commit the turn with the
		// fixed mock body instead of failing.
		log.Printf("quota exhausted, substituting mock response for role %q", role.DisplayName)
		answer = quotaMockResponse
	default:
		return TurnResult{}, &ProviderError{Err: err}
	}

	res := TurnResult{Answer: answer}

	if o.images != nil {
		imgCtx, cancel := o.boundCtx(ctx)
		url, imgErr := o.images.Generate(imgCtx, fmt.Sprintf("%s: %s", role.DisplayName, text))
		cancel()
		if imgErr != nil {
			log.Printf("image generation failed: %v", imgErr)
			res.Warning = fmt.Sprintf("image generation failed: %v", imgErr)
		} else {
			res.ImageURL = url
		}
	}

	if o.avatars != nil {
		res.Avatar = o.avatars.Fetch(ctx)
	}

	sess.appendTurn(
		Message{Speaker: SpeakerUser, Text: text},
		Message{
			Speaker:  SpeakerAssistant,
			Text:     answer,
			RoleName: role.DisplayName,
			ImageURL: res.ImageURL,
			Avatar:   res.Avatar,
		},
	)
	return res, nil
}

func (o *Orchestrator) boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, o.timeout)
}
