package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	LedgerURL      string
	LedgerToken    string
	Port           string
	VoiceLocale    string
	AllowedOrigins []string
}

func mustConfig() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		LedgerURL:      getenv("LEDGER_URL", "http://127.0.0.1:4000"),
		LedgerToken:    os.Getenv("LEDGER_TOKEN"),
		Port:           getenv("PORT", "8080"),
		VoiceLocale:    getenv("VOICE_LOCALE", "hi-IN"),
		AllowedOrigins: strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000"), ","),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
