// prompts.go - Prompt templates for document classification

package ai

import "fmt"

// Both prompts request the exact same three-key JSON schema so the response
// parser can treat all modalities uniformly.

const textClassificationTemplate = `You are a document classifier. Analyze the document content below. Identify the document type based on keywords, structure, and context.

## Rules:
- Determine the most specific document type you can (e.g. "Electric Bill", "W-2 Tax Form", "Auto Insurance Policy", "Bank Statement")
- Provide a short label (2-4 words)
- Confidence should reflect how certain you are (0.0 = uncertain, 1.0 = certain)
- Keep reasoning to 1 sentence

## Document Content:
%s

Respond with ONLY valid JSON, no markdown fences:
{"label": "Document Type", "confidence": 0.95, "reasoning": "Brief explanation"}`

const visionClassificationPrompt = `You are a document classifier. Look at the document image(s) and identify the document type based on visual layout, logos, text, and structure.

## Rules:
- Determine the most specific document type you can (e.g. "Electric Bill", "W-2 Tax Form", "Auto Insurance Policy", "Bank Statement")
- Provide a short label (2-4 words)
- Confidence should reflect how certain you are (0.0 = uncertain, 1.0 = certain)
- Keep reasoning to 1 sentence

Respond with ONLY valid JSON, no markdown fences:
{"label": "Document Type", "confidence": 0.95, "reasoning": "Brief explanation"}`

// BuildTextClassificationPrompt embeds extracted document text verbatim into
// the classification instruction template.
func BuildTextClassificationPrompt(content string) string {
	return fmt.Sprintf(textClassificationTemplate, content)
}

// BuildVisionClassificationPrompt returns the instruction for the visual
// modalities. Document content is not embedded - it travels as a separate
// image or PDF payload.
func BuildVisionClassificationPrompt() string {
	return visionClassificationPrompt
}
