package transcript

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrTranscriptsDisabled reports a video whose captions are turned off or
// simply absent for the requested language.
var ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

// Snippet is one caption entry as returned by the timedtext endpoint.
type Snippet struct {
	Text  string  `xml:",chardata"`
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
}

type timedtext struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []Snippet `xml:"text"`
}

// CaptionClient fetches raw caption snippets for a video in their original order.
type CaptionClient interface {
	FetchCaptions(ctx context.Context, videoID string) ([]Snippet, error)
}

// Client talks to the YouTube timedtext endpoint. Failures propagate
// immediately, retry policy belongs to the caller.
type Client struct {
	baseURL  string
	language string
	http     *http.Client
}

func NewClient(baseURL, language string) *Client {
	return &Client{
		baseURL:  baseURL,
		language: language,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) FetchCaptions(ctx context.Context, videoID string) ([]Snippet, error) {
	u := fmt.Sprintf("%s?lang=%s&v=%s", c.baseURL, url.QueryEscape(c.language), url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build caption request: %v", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch captions: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("caption request failed: %d, %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read caption response: %v", err)
	}

	// The endpoint answers an empty 200 when captions are disabled.
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrTranscriptsDisabled
	}

	var tt timedtext
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("failed to decode caption response: %v", err)
	}
	if len(tt.Texts) == 0 {
		return nil, ErrTranscriptsDisabled
	}
	return tt.Texts, nil
}
