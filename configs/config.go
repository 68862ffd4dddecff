// config.go - Configuration loaded from environment variables

package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	// AI Provider selection: "anthropic" or "gemini"
	AI_PROVIDER string

	// Anthropic Configuration
	ANTHROPIC_API_KEY string
	ANTHROPIC_MODEL   string

	// Gemini Configuration
	GEMINI_API_KEY string
	GEMINI_MODEL   string

	// Model invocation settings
	MAX_OUTPUT_TOKENS   int // Classification replies are a small fixed-schema JSON object
	CLASSIFY_TIMEOUT_MS int // Hard per-attempt timeout for model calls

	// Server Configuration
	PORT            string
	ALLOWED_ORIGINS string

	// Upload limits
	MAX_FILE_SIZE_BYTES int64

	// PDF text extraction policy
	TEXT_MIN_LENGTH int // Below this the PDF is treated as scanned (no usable text)
	TEXT_MAX_LENGTH int // Token-budget containment, not character accuracy
	MAX_PDF_PAGES   int

	// Image preprocessing settings
	ENABLE_IMAGE_PREPROCESSING bool
	MAX_IMAGE_DIMENSION        int

	// Rate limiting (hosting-layer concern, applied as middleware)
	RATE_LIMIT_PER_MINUTE int
)

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Load .env file if exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AI_PROVIDER = getEnv("AI_PROVIDER", "anthropic")

	ANTHROPIC_API_KEY = getEnv("ANTHROPIC_API_KEY", "")
	ANTHROPIC_MODEL = getEnv("ANTHROPIC_MODEL", "claude-haiku-4-5-20251001")

	GEMINI_API_KEY = getEnv("GEMINI_API_KEY", "")
	GEMINI_MODEL = getEnv("GEMINI_MODEL", "gemini-2.5-flash")

	switch AI_PROVIDER {
	case "anthropic":
		if ANTHROPIC_API_KEY == "" {
			log.Fatal("ANTHROPIC_API_KEY environment variable is required when AI_PROVIDER=anthropic")
		}
	case "gemini":
		if GEMINI_API_KEY == "" {
			log.Fatal("GEMINI_API_KEY environment variable is required when AI_PROVIDER=gemini")
		}
	}

	MAX_OUTPUT_TOKENS = getEnvInt("MAX_OUTPUT_TOKENS", 128)
	CLASSIFY_TIMEOUT_MS = getEnvInt("CLASSIFY_TIMEOUT_MS", 6000)

	PORT = getEnv("PORT", "8080")
	ALLOWED_ORIGINS = getEnv("ALLOWED_ORIGINS", "*")

	// 4.5MB cap, matching the caller-side validation contract
	MAX_FILE_SIZE_BYTES = int64(getEnvInt("MAX_FILE_SIZE_BYTES", 4718592))

	TEXT_MIN_LENGTH = getEnvInt("TEXT_MIN_LENGTH", 50)
	TEXT_MAX_LENGTH = getEnvInt("TEXT_MAX_LENGTH", 3000)
	MAX_PDF_PAGES = getEnvInt("MAX_PDF_PAGES", 2)

	ENABLE_IMAGE_PREPROCESSING = getEnvBool("ENABLE_IMAGE_PREPROCESSING", true)
	MAX_IMAGE_DIMENSION = getEnvInt("MAX_IMAGE_DIMENSION", 2000)

	RATE_LIMIT_PER_MINUTE = getEnvInt("RATE_LIMIT_PER_MINUTE", 60)

	log.Println("✓ Configuration loaded successfully")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
