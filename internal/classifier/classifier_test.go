package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bosocmputer/document_classifier/configs"
	"github.com/bosocmputer/document_classifier/internal/ai"
	"github.com/bosocmputer/document_classifier/internal/common"
)

func init() {
	// Tests bypass LoadConfig, so set the limits the pipeline reads directly
	configs.MAX_FILE_SIZE_BYTES = 4718592
	configs.TEXT_MIN_LENGTH = 50
	configs.TEXT_MAX_LENGTH = 3000
	configs.MAX_PDF_PAGES = 2
	configs.ENABLE_IMAGE_PREPROCESSING = false
	configs.MAX_IMAGE_DIMENSION = 2000
}

const validReply = `{"label": "Electric Bill", "confidence": 0.93, "reasoning": "Utility header and kWh usage"}`

// fakeProvider replays scripted replies/errors and records every payload
type fakeProvider struct {
	replies  []string
	errs     []error
	calls    int
	payloads []ai.InvokePayload
}

func (f *fakeProvider) Invoke(ctx context.Context, payload ai.InvokePayload, reqCtx *common.RequestContext) (string, *common.TokenUsage, error) {
	i := f.calls
	f.calls++
	f.payloads = append(f.payloads, payload)

	if i < len(f.errs) && f.errs[i] != nil {
		return "", nil, f.errs[i]
	}

	reply := validReply
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return reply, &common.TokenUsage{InputTokens: 100, OutputTokens: 30, TotalTokens: 130}, nil
}

func (f *fakeProvider) GetProviderName() string { return "fake" }

func extractorReturning(text string) ExtractTextFunc {
	return func(pdfBytes []byte) string { return text }
}

func TestClassify_ImageUsesVisionPath(t *testing.T) {
	provider := &fakeProvider{}
	extractorCalled := false
	clf := NewWithExtractor(provider, func(pdfBytes []byte) string {
		extractorCalled = true
		return ""
	})

	result, err := clf.Classify(context.Background(), []byte("png-bytes"), MimePNG, common.NewRequestContext(MimePNG))

	require.NoError(t, err)
	assert.Equal(t, MethodVision, result.ExtractionMethod)
	assert.False(t, extractorCalled, "images must never go through PDF text extraction")

	require.Len(t, provider.payloads, 1)
	payload := provider.payloads[0]
	assert.Equal(t, ai.ModalityImage, payload.Modality)
	assert.Equal(t, []byte("png-bytes"), payload.Media)
	assert.Equal(t, MimePNG, payload.MediaType)
}

func TestClassify_PDFWithTextUsesTextPath(t *testing.T) {
	extracted := strings.Repeat("ELECTRIC BILL account 12345 amount due $87.50 ", 3)
	provider := &fakeProvider{}
	clf := NewWithExtractor(provider, extractorReturning(extracted))

	result, err := clf.Classify(context.Background(), []byte("%PDF-1.4 ..."), MimePDF, common.NewRequestContext(MimePDF))

	require.NoError(t, err)
	assert.Equal(t, MethodText, result.ExtractionMethod)
	assert.Equal(t, "Electric Bill", result.Label)
	assert.Equal(t, 0.93, result.Confidence)
	assert.GreaterOrEqual(t, result.ProcessingTimeMs, int64(0))

	require.Len(t, provider.payloads, 1)
	payload := provider.payloads[0]
	assert.Equal(t, ai.ModalityText, payload.Modality)
	assert.Contains(t, payload.Prompt, extracted, "extracted text must be embedded in the prompt")
	assert.Nil(t, payload.Media, "text path sends no document bytes")
}

func TestClassify_PDFWithoutTextFallsBackToVision(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 scanned")
	provider := &fakeProvider{}
	clf := NewWithExtractor(provider, extractorReturning(""))

	result, err := clf.Classify(context.Background(), pdfBytes, MimePDF, common.NewRequestContext(MimePDF))

	require.NoError(t, err)
	assert.Equal(t, MethodVision, result.ExtractionMethod)

	require.Len(t, provider.payloads, 1)
	payload := provider.payloads[0]
	assert.Equal(t, ai.ModalityPDF, payload.Modality)
	assert.Equal(t, pdfBytes, payload.Media, "fallback sends the original PDF bytes")
	assert.Equal(t, MimePDF, payload.MediaType)
}

func TestClassify_RetriesOnceOnMalformedReply(t *testing.T) {
	provider := &fakeProvider{
		replies: []string{"I think this is an invoice", validReply},
	}
	clf := NewWithExtractor(provider, extractorReturning(""))

	result, err := clf.Classify(context.Background(), []byte("png"), MimePNG, common.NewRequestContext(MimePNG))

	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, "Electric Bill", result.Label, "result must come from the retry reply")
}

func TestClassify_SecondMalformedReplyIsTerminal(t *testing.T) {
	provider := &fakeProvider{
		replies: []string{"not json", `{"label": "Invoice"}`},
	}
	clf := NewWithExtractor(provider, extractorReturning(""))

	_, err := clf.Classify(context.Background(), []byte("png"), MimePNG, common.NewRequestContext(MimePNG))

	require.Error(t, err)
	assert.True(t, ai.IsMalformedResponse(err))
	assert.Equal(t, 2, provider.calls, "exactly one retry, never more")
}

func TestClassify_TransportErrorIsNotRetried(t *testing.T) {
	transportErr := &ai.InvocationError{
		OriginalError: errors.New("deadline exceeded"),
		Category:      "timeout",
		Message:       "Model invocation timed out",
	}
	provider := &fakeProvider{errs: []error{transportErr}}
	clf := NewWithExtractor(provider, extractorReturning(""))

	_, err := clf.Classify(context.Background(), []byte("png"), MimePNG, common.NewRequestContext(MimePNG))

	require.Error(t, err)
	assert.True(t, ai.IsInvocationTimeout(err))
	assert.Equal(t, 1, provider.calls, "transport errors must not consume the retry")
}

func TestClassify_RejectsUnsupportedInput(t *testing.T) {
	provider := &fakeProvider{}
	clf := New(provider)

	tests := []struct {
		name     string
		content  []byte
		mimeType string
	}{
		{"unknown mime type", []byte("data"), "text/plain"},
		{"empty content", []byte{}, MimePNG},
		{"oversized content", make([]byte, configs.MAX_FILE_SIZE_BYTES+1), MimeJPEG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := clf.Classify(context.Background(), tt.content, tt.mimeType, common.NewRequestContext(tt.mimeType))

			require.Error(t, err)
			var unsupported *UnsupportedInputError
			assert.True(t, errors.As(err, &unsupported))
			assert.Equal(t, 0, provider.calls, "invalid input must never reach the model")
		})
	}
}

func TestClassify_JPEGAliasHandledByVisionPath(t *testing.T) {
	provider := &fakeProvider{}
	clf := NewWithExtractor(provider, extractorReturning(""))

	result, err := clf.Classify(context.Background(), []byte("jpg-bytes"), MimeJPEG, common.NewRequestContext(MimeJPEG))

	require.NoError(t, err)
	assert.Equal(t, MethodVision, result.ExtractionMethod)
	require.Len(t, provider.payloads, 1)
	assert.Equal(t, ai.ModalityImage, provider.payloads[0].Modality)
}
