// anthropic.go - Anthropic (Claude) classifier provider

package ai

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bosocmputer/document_classifier/configs"
	"github.com/bosocmputer/document_classifier/internal/common"
)

// AnthropicProvider implements ClassifierProvider using the Anthropic Messages API
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicProvider creates a new Anthropic provider instance
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{
		client: &client,
		model:  model,
	}
}

// GetProviderName returns the provider name
func (p *AnthropicProvider) GetProviderName() string {
	return "anthropic"
}

// Invoke sends one single-turn message and returns the first text block of the
// reply. The three modalities differ only in payload construction; the call,
// timeout, and reply extraction are shared.
func (p *AnthropicProvider) Invoke(ctx context.Context, payload InvokePayload, reqCtx *common.RequestContext) (string, *common.TokenUsage, error) {
	contentBlocks, err := buildAnthropicBlocks(payload)
	if err != nil {
		return "", nil, err
	}

	// Hard per-attempt timeout; the retry budget is the orchestrator's concern
	timeout := time.Duration(configs.CLASSIFY_TIMEOUT_MS) * time.Millisecond
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	message, err := p.client.Messages.New(callCtx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(configs.MAX_OUTPUT_TOKENS),
		Messages: []anthropic.MessageParam{
			{
				Role:    anthropic.MessageParamRoleUser,
				Content: contentBlocks,
			},
		},
	})
	if err != nil {
		invErr := CategorizeInvocationError(err)
		reqCtx.LogError("Anthropic call failed after %.2fs: %s", time.Since(start).Seconds(), invErr.Error())
		return "", nil, invErr
	}

	// First text-bearing content block; empty string fails validation downstream
	var text string
	for _, block := range message.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			text = b.Text
			break
		}
	}

	tokens := &common.TokenUsage{
		InputTokens:  int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
		TotalTokens:  int(message.Usage.InputTokens + message.Usage.OutputTokens),
	}

	reqCtx.LogInfo("Anthropic reply received | modality: %s | %.2fs | %d tokens",
		payload.Modality, time.Since(start).Seconds(), tokens.TotalTokens)

	return text, tokens, nil
}

// buildAnthropicBlocks constructs the per-modality content blocks
func buildAnthropicBlocks(payload InvokePayload) ([]anthropic.ContentBlockParamUnion, error) {
	switch payload.Modality {
	case ModalityText:
		return []anthropic.ContentBlockParamUnion{
			anthropic.NewTextBlock(payload.Prompt),
		}, nil

	case ModalityImage:
		return []anthropic.ContentBlockParamUnion{
			anthropic.NewImageBlockBase64(
				payload.MediaType,
				base64.StdEncoding.EncodeToString(payload.Media),
			),
			anthropic.NewTextBlock(payload.Prompt),
		}, nil

	case ModalityPDF:
		return []anthropic.ContentBlockParamUnion{
			anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
				Data: base64.StdEncoding.EncodeToString(payload.Media),
			}),
			anthropic.NewTextBlock(payload.Prompt),
		}, nil

	default:
		return nil, &InvocationError{
			Category: "bad_request",
			Message:  "unsupported modality: " + string(payload.Modality),
		}
	}
}
