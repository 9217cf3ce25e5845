package internal

import (
	"net/http"
	"time"
)

type Config struct {
	URL     string
	Timeout time.Duration
	MaxBody int64

	HTTPClient *http.Client // nil means a client built from Timeout
}

const DEFAULT_URL = "https://raw.githubusercontent.com/sappho192/ffxiv-hermes/main/latest/address.json"
const DEFAULT_TIMEOUT = 10 * time.Second
const DEFAULT_MAX_BODY = 1 << 20 // 1MB is far above any address document

func DefaultConfig() *Config {
	return &Config{
		URL:     DEFAULT_URL,
		Timeout: DEFAULT_TIMEOUT,
		MaxBody: DEFAULT_MAX_BODY,
	}
}
