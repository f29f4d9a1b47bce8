package rag

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"chattube/internal/chunker"
	"chattube/internal/models"
	"chattube/internal/transcript"
	"chattube/internal/vectorstore"
)

// TranscriptFetcher retrieves the full transcript text for a video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Generator runs one stateless completion for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// session is one fully built (video, index, chain) triple. It is swapped into
// the service as a whole, so a reader never observes a partial state.
type session struct {
	videoID string
	index   *vectorstore.Index
	chain   *answerChain
}

// Service owns the single active video and the pipeline that builds it.
// It starts empty and becomes ready after the first successful ingestion.
type Service struct {
	fetcher   TranscriptFetcher
	embedder  embeddings.Embedder
	generator Generator

	current atomic.Pointer[session]
}

func NewService(fetcher TranscriptFetcher, embedder embeddings.Embedder, generator Generator) *Service {
	return &Service{
		fetcher:   fetcher,
		embedder:  embedder,
		generator: generator,
	}
}

// ProcessVideo ingests one video: transcript fetch, chunking, index build and
// chain setup. The new session replaces any previous one only after every
// step succeeded; a failed ingestion leaves the prior session untouched.
// Concurrent ingestions race, last writer wins.
func (s *Service) ProcessVideo(ctx context.Context, videoID string) (*models.ProcessVideoResult, error) {
	log.Info().Str("video_id", videoID).Msg("Starting video processing")

	text, err := s.fetcher.Fetch(ctx, videoID)
	if err != nil {
		if errors.Is(err, transcript.ErrTranscriptsDisabled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	passages := chunker.Split(text)
	log.Info().Str("video_id", videoID).Int("chunks", len(passages)).Msg("Chunked transcript")
	if len(passages) == 0 {
		return nil, ErrEmptyTranscript
	}

	index, err := vectorstore.Build(ctx, s.embedder, passages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	chain := newAnswerChain(vectorstore.NewRetriever(index, s.embedder), s.generator)

	s.current.Store(&session{videoID: videoID, index: index, chain: chain})
	log.Info().Str("video_id", videoID).Int("chunks", len(passages)).Msg("Video processed successfully")

	return &models.ProcessVideoResult{
		Message:          "Video processed successfully",
		VideoID:          videoID,
		ChunksCount:      len(passages),
		TranscriptLength: len(text),
	}, nil
}

// Ask answers a question against the currently active video. Asking before
// any video was processed is a caller error, reported as ErrNotReady.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	sess := s.current.Load()
	if sess == nil {
		return "", ErrNotReady
	}
	return sess.chain.answer(ctx, question)
}

// IsReady reports whether a video has been processed and questions can be
// answered against it.
func (s *Service) IsReady() bool {
	return s.current.Load() != nil
}

// CurrentVideoID returns the active video's ID, or "" when no video is loaded.
func (s *Service) CurrentVideoID() string {
	if sess := s.current.Load(); sess != nil {
		return sess.videoID
	}
	return ""
}

// Status reports the service status payload from one consistent snapshot.
func (s *Service) Status() *models.StatusResult {
	st := &models.StatusResult{ServiceStatus: "initialized"}
	if sess := s.current.Load(); sess != nil {
		st.CurrentVideoID = &sess.videoID
		st.ReadyForQuestions = true
	}
	return st
}
