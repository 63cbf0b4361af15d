// Package request adapts inbound HTTP requests into typed snapshots that the
// console renderer and the capture layer consume.
package request

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// BodyKind tags the parsed request body.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyDocument
	BodyForm
)

// Pair is one key/value entry, order-preserving where the wire format allows.
type Pair struct {
	Key   string
	Value string
}

// File is one uploaded file, held in memory.
type File struct {
	Name string
	Data []byte
}

// Snapshot is the typed view of a single inbound request. Status is filled in
// by the handler after the response has been synthesized.
type Snapshot struct {
	ClientAddr    string
	Time          time.Time
	Method        string
	PathWithQuery string
	Proto         string
	Status        int

	Headers  []Pair
	BodyKind BodyKind
	Document any
	Form     []Pair
	Query    []Pair
	Files    []File
}

const maxBodyBytes = 32 << 20

// FromHTTP builds a Snapshot from r, consuming the request body. proxyHops
// picks the client address from the Nth-from-last X-Forwarded-For entry when
// positive; otherwise the socket peer is used. A body that fails to parse is
// reported as empty, never as an error.
func FromHTTP(r *http.Request, proxyHops int) *Snapshot {
	s := &Snapshot{
		ClientAddr:    clientAddr(r, proxyHops),
		Time:          time.Now(),
		Method:        r.Method,
		PathWithQuery: r.URL.RequestURI(),
		Proto:         r.Proto,
		Headers:       headerPairs(r.Header),
		Query:         ParsePairs(r.URL.RawQuery),
	}
	s.parseBody(r)
	return s
}

func clientAddr(r *http.Request, proxyHops int) string {
	if proxyHops > 0 {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			if i := len(hops) - proxyHops; i >= 0 {
				return strings.TrimSpace(hops[i])
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// headerPairs flattens the header map to a sorted pair list. Go's http.Header
// does not retain wire order, so sorted keys are the stable alternative.
func headerPairs(h http.Header) []Pair {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]Pair, 0, len(h))
	for _, k := range keys {
		for _, v := range h[k] {
			pairs = append(pairs, Pair{Key: k, Value: v})
		}
	}
	return pairs
}

// ParsePairs splits a raw query or urlencoded body into pairs, preserving
// wire order. Bare keys (no "=") are kept with an empty value.
func ParsePairs(raw string) []Pair {
	var pairs []Pair
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs
}

// HasParam reports whether any pair carries the given key, regardless of its
// value.
func HasParam(pairs []Pair, key string) bool {
	for _, p := range pairs {
		if p.Key == key {
			return true
		}
	}
	return false
}

func (s *Snapshot) parseBody(r *http.Request) {
	ct, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		ct = ""
	}
	switch {
	case strings.Contains(ct, "json"):
		data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return
		}
		var doc any
		if json.Unmarshal(data, &doc) != nil {
			return
		}
		s.BodyKind = BodyDocument
		s.Document = doc
	case ct == "application/x-www-form-urlencoded":
		data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil || len(data) == 0 {
			return
		}
		s.Form = ParsePairs(string(data))
		if len(s.Form) > 0 {
			s.BodyKind = BodyForm
		}
	case ct == "multipart/form-data":
		s.parseMultipart(r.Body, params["boundary"])
	}
}

func (s *Snapshot) parseMultipart(body io.Reader, boundary string) {
	if boundary == "" {
		return
	}
	mr := multipart.NewReader(io.LimitReader(body, maxBodyBytes), boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			break
		}
		if name := part.FileName(); name != "" {
			s.Files = append(s.Files, File{Name: name, Data: data})
			continue
		}
		s.Form = append(s.Form, Pair{Key: part.FormName(), Value: string(data)})
	}
	if len(s.Form) > 0 {
		s.BodyKind = BodyForm
	}
}

// RequestLine renders the request in common log form, second-resolution
// local time.
func (s *Snapshot) RequestLine() string {
	return fmt.Sprintf("%s - - [%s] \"%s %s %s\" %d -",
		s.ClientAddr, s.Time.Format("02/Jan/2006 15:04:05"),
		s.Method, s.PathWithQuery, s.Proto, s.Status)
}
