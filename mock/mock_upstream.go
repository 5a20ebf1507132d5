// Package mock provides a scripted stand-in for the Korean open-data APIs,
// used by tests to exercise caching, retries, and traffic shaping without a
// network.
package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"time"
)

// Response is one scripted upstream answer.
type Response struct {
	Status int
	Body   string
}

// Upstream is an HTTP server that plays back scripted responses in order.
// When the script runs out the last response repeats. It records every
// request and tracks how many were in flight at once.
type Upstream struct {
	Delay time.Duration // per-request latency, set before first request

	mu       sync.Mutex
	script   []Response
	position int
	requests []RecordedRequest

	calls       int64
	inFlight    int64
	maxInFlight int64

	server *httptest.Server
}

// RecordedRequest captures what one upstream call looked like.
type RecordedRequest struct {
	Path  string
	Query url.Values
}

// NewUpstream starts a server scripted with the given responses. Callers
// must Close it.
func NewUpstream(responses ...Response) *Upstream {
	u := &Upstream{script: responses}
	u.server = httptest.NewServer(http.HandlerFunc(u.handle))
	return u
}

func (u *Upstream) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&u.calls, 1)
	n := atomic.AddInt64(&u.inFlight, 1)
	for {
		old := atomic.LoadInt64(&u.maxInFlight)
		if n <= old || atomic.CompareAndSwapInt64(&u.maxInFlight, old, n) {
			break
		}
	}
	defer atomic.AddInt64(&u.inFlight, -1)

	if u.Delay > 0 {
		time.Sleep(u.Delay)
	}

	u.mu.Lock()
	u.requests = append(u.requests, RecordedRequest{Path: r.URL.Path, Query: r.URL.Query()})
	var resp Response
	if len(u.script) == 0 {
		resp = Response{Status: http.StatusOK, Body: SuccessBody()}
	} else {
		resp = u.script[u.position]
		if u.position < len(u.script)-1 {
			u.position++
		}
	}
	u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}

// URL returns the server's base URL.
func (u *Upstream) URL() string { return u.server.URL }

// Calls returns how many requests the server has received.
func (u *Upstream) Calls() int64 { return atomic.LoadInt64(&u.calls) }

// MaxInFlight returns the highest number of simultaneous requests observed.
func (u *Upstream) MaxInFlight() int64 { return atomic.LoadInt64(&u.maxInFlight) }

// Requests returns a copy of every recorded request in arrival order.
func (u *Upstream) Requests() []RecordedRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]RecordedRequest, len(u.requests))
	copy(out, u.requests)
	return out
}

// LastRequest returns the most recent recorded request, or false if none.
func (u *Upstream) LastRequest() (RecordedRequest, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.requests) == 0 {
		return RecordedRequest{}, false
	}
	return u.requests[len(u.requests)-1], true
}

// Close shuts the server down.
func (u *Upstream) Close() { u.server.Close() }

// SuccessBody builds a success envelope containing the given items. With a
// single item the items container holds a bare object, the way the real
// service answers single-record results.
func SuccessBody(items ...map[string]any) string {
	var itemField any
	switch len(items) {
	case 0:
		itemField = nil
	case 1:
		itemField = items[0]
	default:
		itemField = items
	}

	body := map[string]any{
		"numOfRows": len(items),
		"pageNo":    1,
	}
	if len(items) == 0 {
		body["totalCount"] = 0
		body["items"] = ""
	} else {
		body["totalCount"] = len(items)
		body["items"] = map[string]any{"item": itemField}
	}
	return marshalEnvelope("0000", "OK", body)
}

// SuccessBodyWithTotal is SuccessBody with an explicit total count, for
// simulating paginated results.
func SuccessBodyWithTotal(total int, items ...map[string]any) string {
	var itemField any
	switch len(items) {
	case 1:
		itemField = items[0]
	default:
		itemField = items
	}
	body := map[string]any{
		"totalCount": total,
		"numOfRows":  len(items),
		"pageNo":     1,
		"items":      map[string]any{"item": itemField},
	}
	return marshalEnvelope("0000", "OK", body)
}

// ErrorBody builds an envelope carrying an application-level failure code
// inside an HTTP 200 response.
func ErrorBody(resultCode, resultMsg string) string {
	return marshalEnvelope(resultCode, resultMsg, map[string]any{})
}

func marshalEnvelope(resultCode, resultMsg string, body map[string]any) string {
	envelope := map[string]any{
		"response": map[string]any{
			"header": map[string]any{
				"resultCode": resultCode,
				"resultMsg":  resultMsg,
			},
			"body": body,
		},
	}
	encoded, err := json.Marshal(envelope)
	if err != nil {
		panic(err)
	}
	return string(encoded)
}
