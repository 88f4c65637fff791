package auth

import (
	"net/http"
	"strings"
)

// ExtractBearerTokenFromHeader extracts the token from an Authorization header value,
// accepting either "Bearer" or "bearer" as prefix.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < len("bearer ") {
		return ""
	}
	if strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	return ""
}

// ExtractToken returns the bearer token from the Authorization header, falling back
// to the queryParam query value (default "token"). Browsers cannot set headers on
// websocket upgrades, hence the fallback.
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
