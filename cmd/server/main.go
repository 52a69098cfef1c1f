package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tutorbot-backend/internal/cache"
	"tutorbot-backend/internal/config"
	"tutorbot-backend/internal/gemini"
	"tutorbot-backend/internal/logger"
	"tutorbot-backend/internal/safety"
	"tutorbot-backend/internal/services"
)

var rootCmd = &cobra.Command{
	Use:          "tutorbot",
	Short:        "Tutorbot - kid friendly homework helper backed by Gemini",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, initializes logging and builds the tutor
// pipeline. The returned func releases external connections.
func setup() (*config.Config, *services.TutorService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Debug().Msg("✓ Environment variables loaded")

	client, err := gemini.NewClient(gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("gemini client initialization failed: %w", err)
	}
	log.Debug().Str("model", client.ModelID()).Msg("✓ Gemini client initialized")

	cleanup := func() {}
	var replyCache services.ReplyCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, client.ModelID(), cfg.ReplyCacheTTL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		replyCache = redisCache
		cleanup = func() { redisCache.Close() }
		log.Debug().Dur("ttl", cfg.ReplyCacheTTL).Msg("✓ Redis reply cache connected")
	}

	filter := safety.New(cfg.BlockedWordsExtra...)
	tutor := services.NewTutorService(filter, client, replyCache)

	return cfg, tutor, cleanup, nil
}
