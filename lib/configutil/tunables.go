package configutil

import (
	"log/slog"
	"os"

	"dario.cat/mergo"
)

// Tunables are knobs that ship with sane defaults and may be overridden
// by an optional platforms.json5 (+ .local variant) next to the binary.
type Tunables struct {
	Model                string  `json:"model"`
	MaxTokens            int     `json:"max_tokens"`
	Temperature          float64 `json:"temperature"`
	HealthTimeoutSeconds int     `json:"health_timeout_seconds"`
	MaxRedirects         int     `json:"max_redirects"`
}

func defaultTunables() Tunables {
	return Tunables{
		Model:                "claude-3-5-sonnet-20240620",
		MaxTokens:            8000,
		Temperature:          0.4,
		HealthTimeoutSeconds: 30,
		MaxRedirects:         5,
	}
}

func LoadTunables() Tunables {
	config, err := ReadRecursively[Tunables]("platforms.json5")
	if os.IsNotExist(err) {
		return defaultTunables()
	}
	if err != nil {
		slog.Warn("ignoring unreadable platforms.json5", "err", err)
		return defaultTunables()
	}
	// fill anything the file left unset
	if err := mergo.Merge(&config, defaultTunables()); err != nil {
		slog.Warn("failed to merge tunable defaults", "err", err)
		return defaultTunables()
	}
	return config
}
