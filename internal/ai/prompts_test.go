package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTextClassificationPrompt_EmbedsContent(t *testing.T) {
	content := "ACME POWER COMPANY\nStatement date: 2024-03-01\nTotal due: $87.50"

	prompt := BuildTextClassificationPrompt(content)

	assert.Contains(t, prompt, content, "document text must appear verbatim")
	assert.Contains(t, prompt, `"label"`)
	assert.Contains(t, prompt, `"confidence"`)
	assert.Contains(t, prompt, `"reasoning"`)
}

func TestBuildTextClassificationPrompt_PercentSignsSurvive(t *testing.T) {
	// Extracted text may contain fmt verbs; they must not be interpreted
	content := "APR 24.99% of balance, 100%s satisfaction"

	prompt := BuildTextClassificationPrompt(content)

	assert.Contains(t, prompt, content)
	assert.NotContains(t, prompt, "%!")
}

func TestBuildVisionClassificationPrompt_RequestsSameSchema(t *testing.T) {
	prompt := BuildVisionClassificationPrompt()

	for _, key := range []string{`"label"`, `"confidence"`, `"reasoning"`} {
		assert.Contains(t, prompt, key)
	}
	assert.NotContains(t, prompt, "%s", "vision prompt has no content placeholder")
}

func TestPrompts_BothDiscourageFencing(t *testing.T) {
	for _, prompt := range []string{
		BuildTextClassificationPrompt("some document text"),
		BuildVisionClassificationPrompt(),
	} {
		assert.True(t, strings.Contains(prompt, "ONLY valid JSON"))
		assert.Contains(t, prompt, "no markdown fences")
	}
}
