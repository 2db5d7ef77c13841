package logger

import (
	"log/slog"
	"strings"
)

// Key patterns whose string values are never logged in full.
var sensitiveKeyPatterns = []string{
	"auth_key",
	"authkey",
	"password",
	"secret",
	"credential",
	"api_key",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive replaces attribute values that look like credential
// material. Groups are walked recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		if IsSensitiveKey(a.Key) && a.Value.String() != "" {
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// IsSensitiveKey checks if a key name suggests credential content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// MaskAuthKey partially masks an auth key for display: first and last two
// characters around a fixed filler, or all asterisks for short keys.
func MaskAuthKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return strings.Repeat("*", len(key))
	}
	return key[:2] + "..." + key[len(key)-2:]
}
