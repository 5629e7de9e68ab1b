package clients

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient() *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		maxRetries:  3,
		backoffBase: time.Millisecond,
	}
}

func TestDoJSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Correlation-ID") != "corr-1" {
			t.Errorf("не передан X-Correlation-ID")
		}
		if r.Header.Get("Authorization") != "Bearer token-1" {
			t.Errorf("не передан Authorization: %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Idempotency-Key") != "idem-1" {
			t.Errorf("не передан Idempotency-Key")
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	var out struct {
		Status string `json:"status"`
	}
	headers := Headers{CorrelationID: "corr-1", Token: "token-1", IdempotencyKey: "idem-1"}
	if err := testClient().DoJSON(http.MethodGet, srv.URL, headers, nil, &out); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if out.Status != "ok" {
		t.Errorf("получили %q", out.Status)
	}
}

func TestDoJSONRetriesOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	var out struct {
		Status string `json:"status"`
	}
	if err := testClient().DoJSON(http.MethodGet, srv.URL, Headers{}, nil, &out); err != nil {
		t.Fatalf("ожидали успех после повторов: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("ожидали 3 попытки, было %d", got)
	}
}

func TestDoJSONNoRetryOn4xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`not found`))
	}))
	defer srv.Close()

	err := testClient().DoJSON(http.MethodGet, srv.URL, Headers{}, nil, nil)
	if err == nil {
		t.Fatal("ожидали ошибку")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("ожидали *APIError, получили %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("статус %d", apiErr.StatusCode)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("4xx не должен повторяться, было попыток: %d", got)
	}
}

func TestDoJSONExhaustedRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := testClient().DoJSON(http.MethodGet, srv.URL, Headers{}, nil, nil)
	if err == nil {
		t.Fatal("ожидали ошибку после исчерпания повторов")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("ожидали 3 попытки, было %d", got)
	}
}

func TestDoJSONPostBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("неверный Content-Type: %q", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	body := map[string]string{"key": "value"}
	if err := testClient().DoJSON(http.MethodPost, srv.URL, Headers{}, body, nil); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
}
