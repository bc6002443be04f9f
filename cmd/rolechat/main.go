package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rolechat/internal/avatar"
	"rolechat/internal/chat"
	"rolechat/internal/config"
	"rolechat/internal/image"
	"rolechat/internal/llm"
	"rolechat/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	client, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	gen, err := newImageGenerator(cfg)
	if err != nil {
		log.Fatalf("failed to create image generator: %v", err)
	}

	avatars := avatar.NewFetcher(cfg.EmojiAPIBase, 5*time.Second)
	orch := chat.NewOrchestrator(client, gen, avatars, cfg.RequestTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(cfg.HTTPAddr, orch, cfg.SessionIdleTTL)
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newImageGenerator(cfg *config.Config) (image.Generator, error) {
	switch cfg.ImageProvider {
	case config.ImageProviderOpenAI:
		return image.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ImageModel), nil
	case config.ImageProviderPlaceholder:
		return image.NewPlaceholder(), nil
	case config.ImageProviderOff, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown image provider: %s", cfg.ImageProvider)
	}
}
