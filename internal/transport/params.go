package transport

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// pathParam returns a decoded URL parameter. chi routes on RawPath when the
// request carries one, in which case the captured value is still escaped.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

// rawQueryParam returns the first value of key from the raw query string.
// Values are percent-decoded only, so a literal '+' stays a '+'.
func rawQueryParam(r *http.Request, key string) (string, bool) {
	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(k)
		if err != nil || name != key {
			continue
		}
		val, err := url.PathUnescape(v)
		if err != nil {
			return "", false
		}
		return val, true
	}
	return "", false
}
