package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"rolechat/internal/chat"
	"rolechat/internal/config"
	"rolechat/internal/image"
	"rolechat/internal/llm"
	"rolechat/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	if cfg.TelegramBotToken == "" {
		log.Fatalf("TELEGRAM_BOT_TOKEN is required")
	}

	client, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	// Telegram cannot render the EmojiHub HTML fragments, so the bot runs
	// without the avatar source.
	var gen image.Generator
	switch cfg.ImageProvider {
	case config.ImageProviderOpenAI:
		gen = image.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ImageModel)
	case config.ImageProviderPlaceholder:
		gen = image.NewPlaceholder()
	}
	orch := chat.NewOrchestrator(client, gen, nil, cfg.RequestTimeout)

	bot, err := telegram.New(cfg.TelegramBotToken, orch)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	log.Printf("telegram bot started")
	bot.Start(context.Background())
}
