package rag

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chattube/internal/transcript"
)

type fakeFetcher struct {
	transcripts map[string]string
	err         error
}

func (f *fakeFetcher) Fetch(_ context.Context, videoID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	text, ok := f.transcripts[videoID]
	if !ok {
		return "", fmt.Errorf("caption request failed: 404")
	}
	return text, nil
}

type fakeEmbedder struct {
	mu   sync.Mutex
	err  error
	dims int
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vector(t)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeEmbedder) vector(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	sum := h.Sum32()
	v := []float32{float32(sum%101) + 1, float32(sum%53) + 1, float32(sum%29) + 1}
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	scale := float32(math.Sqrt(norm))
	for i := range v {
		v[i] /= scale
	}
	return v
}

// echoGenerator returns the assembled prompt so tests can inspect what the
// chain would send to the model.
type echoGenerator struct {
	err error
}

func (g *echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return prompt, nil
}

func newTestService(transcripts map[string]string) (*Service, *fakeEmbedder) {
	embedder := &fakeEmbedder{}
	svc := NewService(&fakeFetcher{transcripts: transcripts}, embedder, &echoGenerator{})
	return svc, embedder
}

func TestReadinessLifecycle(t *testing.T) {
	svc, _ := newTestService(map[string]string{
		"abc12345678": "cats are great pets cats purr",
	})

	assert.False(t, svc.IsReady())
	assert.Empty(t, svc.CurrentVideoID())

	result, err := svc.ProcessVideo(context.Background(), "abc12345678")
	require.NoError(t, err)

	assert.Equal(t, "abc12345678", result.VideoID)
	assert.Equal(t, 1, result.ChunksCount)
	assert.Equal(t, "Video processed successfully", result.Message)
	assert.True(t, svc.IsReady())
	assert.Equal(t, "abc12345678", svc.CurrentVideoID())
}

func TestAskBeforeIngestIsNotReady(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Ask(context.Background(), "what do cats do?")
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestAskAnswersFromIndexedPassage(t *testing.T) {
	svc, _ := newTestService(map[string]string{
		"abc12345678": "cats are great pets cats purr",
	})
	_, err := svc.ProcessVideo(context.Background(), "abc12345678")
	require.NoError(t, err)

	answer, err := svc.Ask(context.Background(), "what do cats do?")
	require.NoError(t, err)

	assert.Contains(t, answer, "cats are great pets cats purr")
	assert.Contains(t, answer, "what do cats do?")
	assert.Contains(t, answer, "Answer ONLY from the provided transcript context")
	assert.Contains(t, answer, "just say you don't know")
}

func TestFailedIngestionPreservesState(t *testing.T) {
	svc, embedder := newTestService(map[string]string{
		"aaaaaaaaaaa": "cats are great pets cats purr",
		"bbbbbbbbbbb": "dogs are loyal friends",
	})

	_, err := svc.ProcessVideo(context.Background(), "aaaaaaaaaaa")
	require.NoError(t, err)

	embedder.setErr(errors.New("embedding service down"))
	_, err = svc.ProcessVideo(context.Background(), "bbbbbbbbbbb")
	require.ErrorIs(t, err, ErrUpstream)

	assert.True(t, svc.IsReady())
	assert.Equal(t, "aaaaaaaaaaa", svc.CurrentVideoID())
}

func TestFailedFetchIsNotReadyBeforeFirstIngestion(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.ProcessVideo(context.Background(), "aaaaaaaaaaa")
	require.ErrorIs(t, err, ErrUpstream)

	assert.False(t, svc.IsReady())
	assert.Empty(t, svc.CurrentVideoID())
}

func TestDisabledTranscriptsPassThrough(t *testing.T) {
	embedder := &fakeEmbedder{}
	svc := NewService(&fakeFetcher{err: transcript.ErrTranscriptsDisabled}, embedder, &echoGenerator{})

	_, err := svc.ProcessVideo(context.Background(), "aaaaaaaaaaa")
	assert.ErrorIs(t, err, transcript.ErrTranscriptsDisabled)
	assert.False(t, svc.IsReady())
}

func TestEmptyTranscriptRejected(t *testing.T) {
	svc, _ := newTestService(map[string]string{
		"aaaaaaaaaaa": "   ",
	})

	_, err := svc.ProcessVideo(context.Background(), "aaaaaaaaaaa")
	assert.ErrorIs(t, err, ErrEmptyTranscript)
	assert.False(t, svc.IsReady())
}

func TestReingestionReplacesIndexWholesale(t *testing.T) {
	svc, _ := newTestService(map[string]string{
		"aaaaaaaaaaa": "cats are great pets cats purr",
		"bbbbbbbbbbb": "dogs are loyal friends",
	})

	_, err := svc.ProcessVideo(context.Background(), "aaaaaaaaaaa")
	require.NoError(t, err)
	_, err = svc.ProcessVideo(context.Background(), "bbbbbbbbbbb")
	require.NoError(t, err)

	assert.Equal(t, "bbbbbbbbbbb", svc.CurrentVideoID())

	answer, err := svc.Ask(context.Background(), "who is loyal?")
	require.NoError(t, err)
	assert.Contains(t, answer, "dogs are loyal friends")
	assert.NotContains(t, answer, "cats are great pets")
}

func TestGenerationFailureIsUpstream(t *testing.T) {
	embedder := &fakeEmbedder{}
	generator := &echoGenerator{err: errors.New("model timeout")}
	svc := NewService(&fakeFetcher{transcripts: map[string]string{
		"abc12345678": "cats are great pets cats purr",
	}}, embedder, generator)

	_, err := svc.ProcessVideo(context.Background(), "abc12345678")
	require.NoError(t, err)

	_, err = svc.Ask(context.Background(), "what do cats do?")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestStatusPayload(t *testing.T) {
	svc, _ := newTestService(map[string]string{
		"abc12345678": "cats are great pets cats purr",
	})

	st := svc.Status()
	assert.Equal(t, "initialized", st.ServiceStatus)
	assert.Nil(t, st.CurrentVideoID)
	assert.False(t, st.ReadyForQuestions)

	_, err := svc.ProcessVideo(context.Background(), "abc12345678")
	require.NoError(t, err)

	st = svc.Status()
	require.NotNil(t, st.CurrentVideoID)
	assert.Equal(t, "abc12345678", *st.CurrentVideoID)
	assert.True(t, st.ReadyForQuestions)
}

func TestConcurrentQueriesSeeConsistentSnapshots(t *testing.T) {
	const (
		textA = "alpha cats are great pets"
		textB = "beta dogs are loyal friends"
	)
	svc, _ := newTestService(map[string]string{
		"aaaaaaaaaaa": textA,
		"bbbbbbbbbbb": textB,
	})

	_, err := svc.ProcessVideo(context.Background(), "aaaaaaaaaaa")
	require.NoError(t, err)

	answers := make(chan string, 200)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			id := "aaaaaaaaaaa"
			if i%2 == 0 {
				id = "bbbbbbbbbbb"
			}
			_, err := svc.ProcessVideo(context.Background(), id)
			assert.NoError(t, err)
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				answer, err := svc.Ask(context.Background(), "what happens?")
				if assert.NoError(t, err) {
					answers <- answer
				}
			}
		}()
	}

	wg.Wait()
	close(answers)

	for answer := range answers {
		fromA := strings.Contains(answer, textA)
		fromB := strings.Contains(answer, textB)
		assert.True(t, fromA != fromB, "answer must come from exactly one video's index")
	}
}
