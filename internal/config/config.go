package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

// Image provider selection. "off" skips the image step entirely,
// "placeholder" returns a fixed stock-photo URL without any network call.
const (
	ImageProviderOpenAI      = "openai"
	ImageProviderPlaceholder = "placeholder"
	ImageProviderOff         = "off"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Image generation
	ImageProvider string `env:"IMAGE_PROVIDER" envDefault:"off"`
	ImageModel    string `env:"IMAGE_MODEL" envDefault:"dall-e-3"`

	// Decorative avatars
	EmojiAPIBase string `env:"EMOJI_API_BASE" envDefault:"https://emojihub.yurace.pro/api"`

	// Outbound provider calls are bounded by this timeout; expiry is
	// reported like any other provider failure.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"8s"`

	// Web sessions idle longer than this are swept. Zero disables the sweep.
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"1h"`

	// Telegram frontend (only required by cmd/rolechat-bot)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
