// handlers.go - HTTP handlers for document upload and classification

package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/bosocmputer/document_classifier/configs"
	"github.com/bosocmputer/document_classifier/internal/ai"
	"github.com/bosocmputer/document_classifier/internal/classifier"
	"github.com/bosocmputer/document_classifier/internal/common"
	"github.com/bosocmputer/document_classifier/internal/storage"
	"github.com/gin-gonic/gin"
)

// Handler bundles the classification pipeline and its result cache.
// The classifier (and through it the provider client) is created once at
// startup and injected here so tests can substitute a fake invoker.
type Handler struct {
	classifier *classifier.Classifier
	cache      *storage.ResultCache
}

// NewHandler creates an API handler around the given classifier
func NewHandler(clf *classifier.Classifier) *Handler {
	return &Handler{
		classifier: clf,
		cache:      storage.NewResultCache(),
	}
}

// ClassifyDocument handles POST requests to /api/v1/classify-document.
// It accepts a multipart upload (field "file"), validates type and size, and
// runs the classification pipeline.
func (h *Handler) ClassifyDocument(c *gin.Context) {
	// Step 1: Read the uploaded file
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No file provided",
		})
		return
	}

	mimeType := normalizeMimeType(fileHeader.Header.Get("Content-Type"))

	// Step 2: Validate type and size before touching the pipeline
	if !isAllowedType(mimeType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Unsupported file type: " + mimeType + ". Accepted: PDF, PNG, JPG",
		})
		return
	}

	if fileHeader.Size > configs.MAX_FILE_SIZE_BYTES {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "File too large. Maximum size is 4.5MB",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to read uploaded file",
		})
		return
	}

	reqCtx := common.NewRequestContext(mimeType)

	// Step 3: Serve identical re-uploads from the result cache
	cacheKey := storage.CacheKey(content, mimeType)
	if cached := h.cache.Get(cacheKey); cached != nil {
		reqCtx.LogInfo("Cache hit, skipping model invocation")
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"result":     cached,
			"request_id": reqCtx.RequestID,
			"cached":     true,
		})
		return
	}

	// Step 4: Run the classification pipeline
	result, err := h.classifier.Classify(c.Request.Context(), content, mimeType, reqCtx)
	if err != nil {
		h.writeClassifyError(c, reqCtx, err)
		return
	}

	h.cache.Set(cacheKey, result)
	reqCtx.GetSummary()

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"result":     result,
		"request_id": reqCtx.RequestID,
	})
}

// writeClassifyError maps pipeline error kinds to HTTP responses. Callers
// should treat any failure as "classification unavailable, try again".
func (h *Handler) writeClassifyError(c *gin.Context, reqCtx *common.RequestContext, err error) {
	reqCtx.LogError("Classification failed: %v", err)

	switch {
	case isUnsupportedInput(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"error":      err.Error(),
			"request_id": reqCtx.RequestID,
		})

	case ai.IsInvocationTimeout(err):
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"success":    false,
			"error":      "Classification timed out",
			"suggestion": "The model took too long to respond. Please try again.",
			"request_id": reqCtx.RequestID,
		})

	case ai.IsMalformedResponse(err):
		c.JSON(http.StatusBadGateway, gin.H{
			"success":    false,
			"error":      "Model returned an unusable response",
			"suggestion": "Classification is temporarily unavailable. Please try again.",
			"request_id": reqCtx.RequestID,
		})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"error":      "Classification failed",
			"details":    err.Error(),
			"request_id": reqCtx.RequestID,
		})
	}
}

// isUnsupportedInput reports whether err is the pipeline's defensive rejection
func isUnsupportedInput(err error) bool {
	var unsupported *classifier.UnsupportedInputError
	return errors.As(err, &unsupported)
}

// isAllowedType checks the accepted MIME set
func isAllowedType(mimeType string) bool {
	switch mimeType {
	case classifier.MimePDF, classifier.MimePNG, classifier.MimeJPEG:
		return true
	}
	return false
}

// normalizeMimeType strips parameters and maps the common "image/jpg" alias
func normalizeMimeType(contentType string) string {
	mimeType := strings.TrimSpace(strings.ToLower(strings.SplitN(contentType, ";", 2)[0]))
	if mimeType == "image/jpg" {
		return classifier.MimeJPEG
	}
	return mimeType
}
