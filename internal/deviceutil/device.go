package deviceutil

import (
	"strings"

	"github.com/mssola/useragent"
)

// ClientDevice renders a User-Agent as "<browser>, <os>".
func ClientDevice(userAgent string) string {
	browser, os := "Unknown Browser", "Unknown OS"
	if userAgent != "" {
		ua := useragent.New(userAgent)
		if name, _ := ua.Browser(); name != "" {
			browser = name
		}
		if info := ua.OSInfo(); info.Name != "" {
			os = info.Name
		}
		// Brave reports itself as Chrome unless it adds its own token.
		if strings.Contains(userAgent, "Brave") {
			browser = "Brave"
		}
	}
	return browser + ", " + os
}

// ClientIP prefers the first X-Forwarded-For hop, then the socket address.
func ClientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return "unknown"
}
