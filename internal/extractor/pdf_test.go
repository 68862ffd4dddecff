package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bosocmputer/document_classifier/configs"
)

func init() {
	configs.TEXT_MIN_LENGTH = 50
	configs.TEXT_MAX_LENGTH = 3000
	configs.MAX_PDF_PAGES = 2
}

func TestExtractText_UnparseableInputIsAbsent(t *testing.T) {
	// Parse failures degrade to "" so the pipeline can fall back to vision
	inputs := map[string][]byte{
		"empty":            {},
		"not a pdf":        []byte("just some text, definitely not a PDF"),
		"truncated header": []byte("%PDF-1.4"),
		"binary garbage":   {0x00, 0xFF, 0x13, 0x37, 0xDE, 0xAD, 0xBE, 0xEF},
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "", ExtractText(input))
		})
	}
}

func TestFinalizeText_BelowMinimumIsAbsent(t *testing.T) {
	assert.Equal(t, "", FinalizeText(nil))
	assert.Equal(t, "", FinalizeText([]string{""}))
	assert.Equal(t, "", FinalizeText([]string{"short scrap"}))

	// Whitespace does not count toward the minimum once trimmed
	padded := "   " + strings.Repeat(" ", 60) + "tiny" + strings.Repeat(" ", 60)
	assert.Equal(t, "", FinalizeText([]string{padded}))
}

func TestFinalizeText_JoinsAndTrims(t *testing.T) {
	page1 := "ELECTRIC BILL - ACME POWER COMPANY statement for March"
	page2 := "Total amount due: $87.50 by April 15"

	text := FinalizeText([]string{"  " + page1 + "  ", page2 + "\n"})

	assert.Equal(t, page1+"  \n"+page2, text)
}

func TestFinalizeText_TruncatesToMaxLength(t *testing.T) {
	long := strings.Repeat("a", configs.TEXT_MAX_LENGTH+500)

	text := FinalizeText([]string{long})

	assert.Len(t, []rune(text), configs.TEXT_MAX_LENGTH)
}

func TestFinalizeText_TruncationIsRuneSafe(t *testing.T) {
	// Multi-byte runes near the cut point must not be split
	long := strings.Repeat("ü", configs.TEXT_MAX_LENGTH+10)

	text := FinalizeText([]string{long})

	assert.Len(t, []rune(text), configs.TEXT_MAX_LENGTH)
	assert.True(t, strings.HasSuffix(text, "ü"))
}
