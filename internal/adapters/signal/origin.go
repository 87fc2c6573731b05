package signal

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// originChecker builds an upgrader CheckOrigin from an allowlist. "*" allows any
// origin; requests without an Origin header come from non-browser clients and pass.
func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	allowAll := len(origins) == 0
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			allowAll = true
			continue
		}
		normalized, ok := normalizeOrigin(trimmed)
		if !ok {
			log.Warn().Str("module", "signal").Str("origin", origin).Msg("ignoring invalid origin in configuration")
			continue
		}
		allowed[normalized] = struct{}{}
	}

	return func(r *http.Request) bool {
		header := r.Header.Get("Origin")
		if header == "" || allowAll {
			return true
		}
		normalized, ok := normalizeOrigin(header)
		if !ok {
			return false
		}
		if _, ok := allowed[normalized]; ok {
			return true
		}
		log.Warn().Str("module", "signal").Str("origin", header).Msg("rejected websocket origin")
		return false
	}
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil {
		return "", false
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}
