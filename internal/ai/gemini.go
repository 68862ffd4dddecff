// gemini.go - Gemini classifier provider

package ai

import (
	"context"
	"time"

	"github.com/bosocmputer/document_classifier/configs"
	"github.com/bosocmputer/document_classifier/internal/common"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements ClassifierProvider using the Gemini API.
// Gemini accepts image and PDF bytes through the same inline Blob part, so
// both visual modalities share one request shape here.
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGeminiProvider creates a new Gemini provider instance
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		apiKey: apiKey,
		model:  model,
	}
}

// GetProviderName returns the provider name
func (p *GeminiProvider) GetProviderName() string {
	return "gemini"
}

// Invoke sends one generateContent request and returns the first text part of
// the reply.
func (p *GeminiProvider) Invoke(ctx context.Context, payload InvokePayload, reqCtx *common.RequestContext) (string, *common.TokenUsage, error) {
	timeout := time.Duration(configs.CLASSIFY_TIMEOUT_MS) * time.Millisecond
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := genai.NewClient(callCtx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", nil, CategorizeInvocationError(err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.model)
	model.SetMaxOutputTokens(int32(configs.MAX_OUTPUT_TOKENS))

	parts := buildGeminiParts(payload)

	start := time.Now()

	resp, err := model.GenerateContent(callCtx, parts...)
	if err != nil {
		invErr := CategorizeInvocationError(err)
		reqCtx.LogError("Gemini call failed after %.2fs: %s", time.Since(start).Seconds(), invErr.Error())
		return "", nil, invErr
	}

	// First text-bearing part; empty string fails validation downstream
	var text string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text = string(t)
				break
			}
		}
	}

	tokens := &common.TokenUsage{}
	if resp.UsageMetadata != nil {
		tokens.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		tokens.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		tokens.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	reqCtx.LogInfo("Gemini reply received | modality: %s | %.2fs | %d tokens",
		payload.Modality, time.Since(start).Seconds(), tokens.TotalTokens)

	return text, tokens, nil
}

// buildGeminiParts constructs the per-modality content parts
func buildGeminiParts(payload InvokePayload) []genai.Part {
	switch payload.Modality {
	case ModalityText:
		return []genai.Part{genai.Text(payload.Prompt)}

	case ModalityImage, ModalityPDF:
		return []genai.Part{
			genai.Blob{
				MIMEType: payload.MediaType,
				Data:     payload.Media,
			},
			genai.Text(payload.Prompt),
		}

	default:
		return []genai.Part{genai.Text(payload.Prompt)}
	}
}
