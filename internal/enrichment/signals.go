package enrichment

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/octobees/lead-intel/internal/entity"
	"github.com/octobees/lead-intel/internal/genai"
)

const (
	signalsMaxTokens   = 300
	signalsTemperature = 0.2
)

const signalsPrompt = `Extract all critical sales signals from the following text.
For each signal, return a JSON list of objects with these fields:
- type (e.g., 'funding', 'leadership_change', 'tech_adoption')
- value (e.g., '$50M Series B', 'New CTO: Jane Doe', 'Adopted Snowflake')
- confidence (High, Medium, Low)
Only include signals that are relevant for B2B sales intelligence.
Text:
`

// SignalDetector extracts structured sales signals from unstructured text via
// a text-generation backend.
type SignalDetector struct {
	client genai.TextClient
}

// NewSignalDetector wires a detector around the given backend client.
func NewSignalDetector(client genai.TextClient) *SignalDetector {
	return &SignalDetector{client: client}
}

// Detect issues one generation request and decodes the signals out of the
// response. Every failure mode, from a rate limit to malformed output, yields
// an empty slice; the caller never sees an error.
func (d *SignalDetector) Detect(ctx context.Context, text string) []entity.Signal {
	content, err := d.client.Generate(ctx, signalsPrompt+text+"\n\nJSON:", signalsMaxTokens, signalsTemperature)
	if err != nil {
		if genai.IsRateLimited(err) {
			log.Printf("signal detector: rate limited: %v", err)
		} else {
			log.Printf("signal detector: backend error: %v", err)
		}
		return nil
	}

	signals, ok := parseSignalList(content)
	if !ok {
		log.Printf("signal detector: no parsable signal list in response")
		return nil
	}
	log.Printf("signal detector: extracted %d signals", len(signals))
	return signals
}

// parseSignalList locates the first '['..']'-delimited span in the backend's
// free-text response and decodes it as a signal list. Backends wrap structured
// output in prose often enough that decoding the whole response is hopeless.
func parseSignalList(content string) ([]entity.Signal, bool) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, false
	}

	var signals []entity.Signal
	if err := json.Unmarshal([]byte(content[start:end+1]), &signals); err != nil {
		return nil, false
	}
	return signals, true
}
