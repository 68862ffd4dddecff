// classifier.go - The extraction-and-classification pipeline orchestrator

package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/bosocmputer/document_classifier/configs"
	"github.com/bosocmputer/document_classifier/internal/ai"
	"github.com/bosocmputer/document_classifier/internal/common"
	"github.com/bosocmputer/document_classifier/internal/extractor"
	"github.com/bosocmputer/document_classifier/internal/processor"
)

// Accepted MIME types
const (
	MimePDF  = "application/pdf"
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
)

// Extraction methods reported on the result
const (
	MethodText   = "text"
	MethodVision = "vision"
)

// Result is the final, immutable classification outcome. Constructed once per
// request at the end of the pipeline; never persisted here.
type Result struct {
	Label            string  `json:"label"`
	Confidence       float64 `json:"confidence"`
	Reasoning        string  `json:"reasoning"`
	ExtractionMethod string  `json:"extractionMethod"`
	ProcessingTimeMs int64   `json:"processingTimeMs"`
}

// UnsupportedInputError means the MIME type or size is outside the accepted
// set. Pre-validation is the caller's responsibility, but the pipeline still
// rejects defensively.
type UnsupportedInputError struct {
	MimeType string
	Size     int64
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported input: mime type %q, size %d bytes", e.MimeType, e.Size)
}

// ExtractTextFunc pulls text from PDF bytes, returning "" for absent
type ExtractTextFunc func(pdfBytes []byte) string

// Classifier runs one document through extraction, model invocation, and
// response validation. The provider handle is process-wide state created at
// boot and injected here; every intermediate value below is local to one
// Classify call, so concurrent invocations share nothing mutable.
type Classifier struct {
	provider    ai.ClassifierProvider
	extractText ExtractTextFunc
}

// New creates a Classifier backed by the given provider
func New(provider ai.ClassifierProvider) *Classifier {
	return &Classifier{
		provider:    provider,
		extractText: extractor.ExtractText,
	}
}

// NewWithExtractor creates a Classifier with a custom text extractor
func NewWithExtractor(provider ai.ClassifierProvider, extract ExtractTextFunc) *Classifier {
	return &Classifier{
		provider:    provider,
		extractText: extract,
	}
}

// Classify runs the full pipeline for one document and returns exactly one
// Result or a terminal error. No partial results are ever returned.
func (c *Classifier) Classify(ctx context.Context, content []byte, mimeType string, reqCtx *common.RequestContext) (*Result, error) {
	start := time.Now()

	if err := validateInput(content, mimeType); err != nil {
		return nil, err
	}

	// Modality selection: images go straight to vision; PDFs try text
	// extraction first and fall back to the PDF-native visual path
	var payload ai.InvokePayload
	var method string

	switch mimeType {
	case MimePNG, MimeJPEG:
		method = MethodVision
		payload = c.buildImagePayload(content, mimeType, reqCtx)

	case MimePDF:
		reqCtx.StartStep("extract_pdf_text")
		text := c.extractText(content)
		if text != "" {
			reqCtx.EndStep("success", nil, nil)
			reqCtx.LogInfo("Extracted %d characters, using text path", len(text))
			method = MethodText
			payload = ai.InvokePayload{
				Modality: ai.ModalityText,
				Prompt:   ai.BuildTextClassificationPrompt(text),
			}
		} else {
			// Expected outcome for scanned PDFs, not an error
			reqCtx.EndStep("skipped", nil, nil)
			reqCtx.LogInfo("No usable text, falling back to PDF-native visual path")
			method = MethodVision
			payload = ai.InvokePayload{
				Modality:  ai.ModalityPDF,
				Prompt:    ai.BuildVisionClassificationPrompt(),
				Media:     content,
				MediaType: MimePDF,
			}
		}
	}

	raw, err := c.classifyWithRetry(ctx, payload, reqCtx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Label:            raw.Label,
		Confidence:       raw.Confidence,
		Reasoning:        raw.Reasoning,
		ExtractionMethod: method,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// buildImagePayload prepares the image-modality payload, downscaling
// oversized uploads first
func (c *Classifier) buildImagePayload(content []byte, mimeType string, reqCtx *common.RequestContext) ai.InvokePayload {
	reqCtx.StartStep("preprocess_image")
	media, mediaType := processor.PrepareImageForVision(content, mimeType)
	reqCtx.EndStep("success", nil, nil)

	if len(media) != len(content) {
		reqCtx.LogInfo("Image preprocessed: %d -> %d bytes", len(content), len(media))
	}

	return ai.InvokePayload{
		Modality:  ai.ModalityImage,
		Prompt:    ai.BuildVisionClassificationPrompt(),
		Media:     media,
		MediaType: mediaType,
	}
}

// classifyWithRetry invokes the model and validates its reply, re-running the
// same invocation exactly once more if the reply is malformed. A second
// malformed reply is terminal, and transport errors (network, timeout, abort)
// are never retried - the retry budget is bounded to keep worst-case latency
// at roughly two invocation timeouts.
func (c *Classifier) classifyWithRetry(ctx context.Context, payload ai.InvokePayload, reqCtx *common.RequestContext) (*ai.RawClassification, error) {
	raw, err := c.invokeOnce(ctx, payload, reqCtx, "invoke_model")
	if err == nil {
		return raw, nil
	}
	if !ai.IsMalformedResponse(err) {
		return nil, err
	}

	reqCtx.LogWarning("Model reply failed validation, retrying once: %v", err)

	raw, err = c.invokeOnce(ctx, payload, reqCtx, "retry_invoke_model")
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// invokeOnce runs one Invoking -> Validating transition
func (c *Classifier) invokeOnce(ctx context.Context, payload ai.InvokePayload, reqCtx *common.RequestContext, stepName string) (*ai.RawClassification, error) {
	reqCtx.StartStep(stepName)
	reply, tokens, err := c.provider.Invoke(ctx, payload, reqCtx)
	if err != nil {
		reqCtx.EndStep("failed", nil, err)
		return nil, err
	}
	reqCtx.EndStep("success", tokens, nil)

	reqCtx.StartStep("validate_response")
	raw, err := ai.ParseClassification(reply)
	if err != nil {
		reqCtx.EndStep("failed", nil, err)
		return nil, err
	}
	reqCtx.EndStep("success", nil, nil)

	return raw, nil
}

// validateInput defensively rejects inputs outside the accepted contract
func validateInput(content []byte, mimeType string) error {
	switch mimeType {
	case MimePDF, MimePNG, MimeJPEG:
	default:
		return &UnsupportedInputError{MimeType: mimeType, Size: int64(len(content))}
	}

	if len(content) == 0 || int64(len(content)) > configs.MAX_FILE_SIZE_BYTES {
		return &UnsupportedInputError{MimeType: mimeType, Size: int64(len(content))}
	}

	return nil
}
