package httpx

import (
	"net/http"
	"strings"
)

// RequestOrigin returns the scheme://host the client used to reach us.
//
// With trustForwarded set, X-Forwarded-Proto and X-Forwarded-Host from a
// TLS-terminating proxy win over what the listener saw. Only the first value
// of a comma-separated forwarded header is used.
func RequestOrigin(r *http.Request, trustForwarded bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host

	if trustForwarded {
		if proto := firstHeaderValue(r, "X-Forwarded-Proto"); proto != "" {
			scheme = strings.ToLower(proto)
		}
		if fwdHost := firstHeaderValue(r, "X-Forwarded-Host"); fwdHost != "" {
			host = fwdHost
		}
	}

	return scheme + "://" + host
}

func firstHeaderValue(r *http.Request, name string) string {
	v := r.Header.Get(name)
	if v == "" {
		return ""
	}
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
