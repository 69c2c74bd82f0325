// Package config provides environment-based configuration helpers
// for gazekit commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the gazed daemon.
const (
	DefaultListenAddr  = ":8750"
	DefaultFrameWidth  = 1280
	DefaultFrameHeight = 720
)

// ListenAddr returns the HTTP listen address from GAZED_ADDR.
// Falls back to DefaultListenAddr if not set.
func ListenAddr() string {
	if addr := os.Getenv("GAZED_ADDR"); addr != "" {
		return addr
	}
	return DefaultListenAddr
}

// LogLevel returns the log level from GAZED_LOG_LEVEL ("debug",
// "info", "warn", "error"). Empty means the logger default.
func LogLevel() string {
	return os.Getenv("GAZED_LOG_LEVEL")
}

// ProviderURL returns the landmark provider websocket URL from
// GAZED_PROVIDER_URL. Empty means no outbound provider: frames are
// expected on the inbound /ws/landmarks endpoint instead.
func ProviderURL() string {
	return os.Getenv("GAZED_PROVIDER_URL")
}

// FrameWidth returns the screen/video frame width in pixels from
// GAZED_FRAME_WIDTH, or the default.
func FrameWidth() float64 {
	return envFloat("GAZED_FRAME_WIDTH", DefaultFrameWidth)
}

// FrameHeight returns the screen/video frame height in pixels from
// GAZED_FRAME_HEIGHT, or the default.
func FrameHeight() float64 {
	return envFloat("GAZED_FRAME_HEIGHT", DefaultFrameHeight)
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
