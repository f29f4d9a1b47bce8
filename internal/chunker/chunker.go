package chunker

import (
	"strings"

	"chattube/internal/models"
)

// Split cuts a transcript into passages of at most models.ChunkSize
// characters, each overlapping the previous by up to models.ChunkOverlap.
// It is a pure function: identical input yields identical passages.
func Split(transcript string) []models.Passage {
	chunks := chunkContent(transcript, models.ChunkSize, models.ChunkOverlap)
	passages := make([]models.Passage, 0, len(chunks))
	for i, chunk := range chunks {
		passages = append(passages, models.Passage{
			Content: chunk,
			ChunkID: i + 1,
		})
	}
	return passages
}

// chunkContent slices content into windows with maxChars and overlapChars
func chunkContent(content string, maxChars, overlapChars int) []string {
	if maxChars <= 0 {
		return nil
	}
	if overlapChars < 0 {
		overlapChars = 0
	}
	if overlapChars >= maxChars {
		overlapChars = maxChars / 2
	}

	content = strings.TrimSpace(content)
	contentLen := len(content)
	if contentLen == 0 {
		return nil
	}

	// Content shorter than one window is a single passage.
	if contentLen <= maxChars {
		return []string{content}
	}

	var chunks []string
	start := 0
	for start < contentLen {
		end := min(start+maxChars, contentLen)

		// Look for a clean break point within the last 10% of the window.
		if end < contentLen {
			lookBack := min(maxChars/10, end-start)
			for i := end - 1; i >= end-lookBack && i > start; i-- {
				if content[i] == ' ' || content[i] == '\n' || content[i] == '.' {
					end = i + 1
					break
				}
			}
		}

		chunk := strings.TrimSpace(content[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == contentLen {
			break
		}
		start += maxChars - overlapChars
	}

	return chunks
}
