package helpers

import (
	"context"
	"net/http"
	"strings"
)

type baseURLKey struct{}

// RequestBaseURL derives scheme://host for r, honouring X-Forwarded-Proto.
func RequestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + r.Host
}

// WithBaseURL stores the public base URL of the current request in ctx.
func WithBaseURL(ctx context.Context, baseURL string) context.Context {
	return context.WithValue(ctx, baseURLKey{}, strings.TrimRight(baseURL, "/"))
}

// AbsoluteURL prefixes publicPath with the request base URL stored in ctx.
// Empty paths stay empty so optional images serialize as "".
func AbsoluteURL(ctx context.Context, publicPath string) string {
	if publicPath == "" {
		return ""
	}
	base, _ := ctx.Value(baseURLKey{}).(string)
	return base + "/" + strings.TrimLeft(publicPath, "/")
}
