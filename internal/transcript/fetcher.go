package transcript

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog/log"
)

// Fetcher turns caption snippets into a single transcript string.
type Fetcher struct {
	client CaptionClient
}

func NewFetcher(client CaptionClient) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch returns the full transcript for a video, snippet texts joined with
// single spaces in their returned order.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	log.Info().Str("video_id", videoID).Msg("Fetching transcript")

	snippets, err := f.client.FetchCaptions(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrTranscriptsDisabled) {
			return "", err
		}
		return "", fmt.Errorf("failed to fetch transcript: %w", err)
	}

	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		// Caption text arrives with HTML entities still escaped.
		text := strings.TrimSpace(html.UnescapeString(s.Text))
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}

	transcript := strings.Join(parts, " ")
	log.Info().Str("video_id", videoID).Int("length", len(transcript)).Msg("Fetched transcript")
	return transcript, nil
}
