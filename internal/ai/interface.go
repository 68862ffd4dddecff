// interface.go - Classifier Provider Interface for supporting multiple AI providers

package ai

import (
	"context"

	"github.com/bosocmputer/document_classifier/internal/common"
)

// Modality identifies which channel carries the document content to the model
type Modality string

const (
	// ModalityText sends extracted PDF text embedded in the prompt
	ModalityText Modality = "text"
	// ModalityImage sends base64 image bytes plus the vision prompt
	ModalityImage Modality = "image"
	// ModalityPDF sends the original PDF bytes plus the vision prompt
	// (used when text extraction fails, letting the model handle scanned layouts)
	ModalityPDF Modality = "pdf"
)

// InvokePayload is the single request shape shared by all three modalities.
// Prompt is always set; Media/MediaType are set for image and pdf only.
type InvokePayload struct {
	Modality  Modality
	Prompt    string
	Media     []byte
	MediaType string
}

// RawClassification is the validated three-field reply from the model.
// Confidence is always clamped to [0.0, 1.0] - model output is untrusted.
type RawClassification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ClassifierProvider defines the interface that all model providers must implement
// This allows us to support multiple AI providers (Anthropic, Gemini, etc.) with the same interface
type ClassifierProvider interface {
	// Invoke sends one single-turn request for the given modality and returns
	// the first text block of the reply (empty string if the reply has none,
	// which fails validation downstream rather than silently succeeding).
	// Each call enforces the configured hard timeout; retry policy lives in
	// the orchestrator, not here.
	Invoke(ctx context.Context, payload InvokePayload, reqCtx *common.RequestContext) (string, *common.TokenUsage, error)

	// GetProviderName returns the name of the provider (e.g., "anthropic", "gemini")
	GetProviderName() string
}
