// parser.go - Validation and repair of raw model replies

package ai

import (
	"encoding/json"
	"strings"
)

// rawReply mirrors the JSON shape the prompts mandate. Pointers distinguish
// "missing" from zero values during the required-field check.
type rawReply struct {
	Label      *string  `json:"label"`
	Confidence *float64 `json:"confidence"`
	Reasoning  *string  `json:"reasoning"`
}

// ParseClassification parses a raw model reply into a RawClassification.
// The model is prompted not to wrap its reply in markdown fences but may
// anyway, so a single leading/trailing fence (optionally tagged "json") is
// stripped first. The remainder must be one strict JSON object with a
// non-empty label, a numeric confidence, and a non-empty reasoning.
// Confidence is clamped into [0.0, 1.0]; out-of-range values are corrected
// silently, not rejected. Every failure is a *MalformedResponseError so the
// orchestrator can apply its one-shot retry uniformly.
func ParseClassification(raw string) (*RawClassification, error) {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return nil, &MalformedResponseError{Reason: "empty response", Raw: raw}
	}

	var reply rawReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return nil, &MalformedResponseError{Reason: "invalid JSON: " + err.Error(), Raw: raw}
	}

	if reply.Label == nil || *reply.Label == "" {
		return nil, &MalformedResponseError{Reason: "missing or empty label field", Raw: raw}
	}
	if reply.Confidence == nil {
		return nil, &MalformedResponseError{Reason: "missing or non-numeric confidence field", Raw: raw}
	}
	if reply.Reasoning == nil || *reply.Reasoning == "" {
		return nil, &MalformedResponseError{Reason: "missing or empty reasoning field", Raw: raw}
	}

	return &RawClassification{
		Label:      *reply.Label,
		Confidence: clampConfidence(*reply.Confidence),
		Reasoning:  *reply.Reasoning,
	}, nil
}

// stripCodeFence removes one surrounding markdown code fence, if present
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = text[4:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}

// clampConfidence forces confidence into the closed interval [0.0, 1.0]
func clampConfidence(confidence float64) float64 {
	if confidence < 0.0 {
		return 0.0
	}
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}
