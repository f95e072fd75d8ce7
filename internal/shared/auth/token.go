package auth

import (
	"net/http"
	"strings"
)

// ExtractBearerTokenFromHeader returns the token part of an Authorization header value.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// ExtractToken looks at the Authorization header first, then the query parameter
// (default "token"), which browsers need for websocket upgrades.
func ExtractToken(r *http.Request, queryParam string) string {
	if r == nil {
		return ""
	}
	if token := ExtractBearerTokenFromHeader(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if queryParam == "" {
		queryParam = "token"
	}
	if r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(queryParam))
}
