package rag

import (
	"context"
	"fmt"
	"strings"

	"chattube/internal/models"
	"chattube/internal/vectorstore"
)

// answerChain is the fixed retrieve -> format -> fill template -> generate
// pipeline bound to one retriever. It holds no conversation history, each
// call is independent.
type answerChain struct {
	retriever *vectorstore.Retriever
	generator Generator
}

func newAnswerChain(retriever *vectorstore.Retriever, generator Generator) *answerChain {
	return &answerChain{retriever: retriever, generator: generator}
}

func (c *answerChain) answer(ctx context.Context, question string) (string, error) {
	passages, err := c.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%w: failed to retrieve passages: %v", ErrUpstream, err)
	}

	contents := make([]string, len(passages))
	for i, p := range passages {
		contents[i] = p.Content
	}
	contextText := strings.Join(contents, "\n\n")

	prompt := fmt.Sprintf(models.AnswerPromptTemplate, contextText, question)

	answer, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: failed to generate answer: %v", ErrUpstream, err)
	}
	return answer, nil
}
