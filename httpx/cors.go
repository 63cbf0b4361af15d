package httpx

import "net/http"

// setCORSHeaders sets deliberately permissive cross-origin headers: origin,
// method and requested headers are mirrored back when present, "*" otherwise.
func setCORSHeaders(h http.Header, r *http.Request) {
	h.Set("Access-Control-Allow-Origin", headerOr(r, "Origin", "*"))
	h.Set("Access-Control-Allow-Method", headerOr(r, "Access-Control-Request-Method", "*"))
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Access-Control-Allow-Headers", headerOr(r, "Access-Control-Request-Headers", "*"))
	h.Set("Access-Control-Expose-Headers", "*")
}

func headerOr(r *http.Request, name, fallback string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	return fallback
}
