package models

const (
	// ChunkSize and ChunkOverlap bound the passage windows cut from a transcript.
	ChunkSize    = 1000
	ChunkOverlap = 200

	// TopK is the fixed number of passages retrieved per question.
	TopK = 2

	// Temperature for answer generation, low but nonzero so answers stay
	// grounded without sounding canned.
	Temperature = 0.6
)

var AnswerPromptTemplate = `You are a helpful assistant. Answer ONLY from the provided transcript context.
If the context is insufficient to answer the query, just say you don't know.

Context: %s
Question: %s

Answer:
`
