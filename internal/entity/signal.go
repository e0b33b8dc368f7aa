package entity

// Confidence grades how certain the detector is about a signal.
type Confidence string

// Ordinal confidence levels reported by the signal detector.
const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Signal is a sales-relevant event extracted from unstructured text, such as
// a funding round, a leadership change, or a technology adoption.
type Signal struct {
	Type       string     `json:"type"`
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence"`
}
