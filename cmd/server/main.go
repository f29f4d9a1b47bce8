package main

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chattube/internal/config"
	"chattube/internal/embedding"
	"chattube/internal/llmservice"
	"chattube/internal/rag"
	"chattube/internal/server"
	"chattube/internal/transcript"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	embedder, err := embedding.NewEmbedder(&cfg.OpenAI)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	generator, err := llmservice.NewClient(&cfg.OpenAI)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing generation client")
	}

	fetcher := transcript.NewFetcher(transcript.NewClient(cfg.YouTube.CaptionBaseURL, cfg.YouTube.Language))

	svc := rag.NewService(fetcher, embedder, generator)
	log.Info().Msg("RAG service initialized successfully")

	srv := server.New(cfg, svc)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
