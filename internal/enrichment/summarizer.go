package enrichment

import (
	"context"
	"log"

	"github.com/octobees/lead-intel/internal/genai"
)

const (
	summaryPromptPrefix = "Summarize the following company description in 1-2 concise, business-focused sentences:\n"
	summaryMaxTokens    = 80
	summaryTemperature  = 0.7
)

// Summarizer compresses a free-text company description into a short
// business-focused summary using a text-generation backend.
type Summarizer struct {
	client genai.TextClient
}

// NewSummarizer wires a summarizer around the given backend client.
func NewSummarizer(client genai.TextClient) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize issues a single generation attempt. The second return value is
// false when no summary could be produced: rate limits, backend errors, and
// empty completions all collapse into that soft failure. It never returns an
// error to the caller.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, bool) {
	summary, err := s.client.Generate(ctx, summaryPromptPrefix+text, summaryMaxTokens, summaryTemperature)
	if err != nil {
		if genai.IsRateLimited(err) {
			log.Printf("summarizer: rate limited: %v", err)
		} else {
			log.Printf("summarizer: backend error: %v", err)
		}
		return "", false
	}
	if summary == "" {
		log.Printf("summarizer: backend returned empty completion")
		return "", false
	}
	return summary, true
}
