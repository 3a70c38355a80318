package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
)

// wildcardOrigin is an allowed origin of the form scheme://*.domain.tld that
// matches exactly one subdomain label
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin returns nil unless pattern is a valid single-label wildcard
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	idx := strings.Index(pattern, "://")
	if idx < 0 {
		return nil
	}
	scheme, rest := pattern[:idx+3], pattern[idx+3:]
	if !strings.HasPrefix(rest, "*.") {
		return nil
	}
	suffix := rest[1:]
	if strings.Contains(suffix, "*") || strings.Count(suffix, ".") < 2 {
		return nil
	}
	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) {
		return false
	}
	host := origin[len(w.scheme):]
	if !strings.HasSuffix(host, w.suffix) {
		return false
	}
	label := host[:len(host)-len(w.suffix)]
	return label != "" && !strings.ContainsAny(label, "./:")
}

// CORS allows the configured origins. Entries may be exact origins,
// single-label wildcards like https://*.example.com, or "*" for any origin.
// Credentials are only allowed for explicit origins.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	exact := make(map[string]bool)
	var wildcards []*wildcardOrigin
	allowAll := false

	for _, origin := range allowedOrigins {
		switch {
		case origin == "*":
			allowAll = true
		case strings.Contains(origin, "*"):
			if w := parseWildcardOrigin(origin); w != nil {
				wildcards = append(wildcards, w)
			} else {
				logger.Warn("ignoring invalid wildcard CORS origin", logger.String("origin", origin))
			}
		default:
			exact[origin] = true
		}
	}

	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}

	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowCredentials = true
		cfg.AllowOriginFunc = func(origin string) bool {
			if exact[origin] {
				return true
			}
			for _, w := range wildcards {
				if w.matches(origin) {
					return true
				}
			}
			return false
		}
	}

	return cors.New(cfg)
}
