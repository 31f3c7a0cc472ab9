package sheet

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeDoer struct {
	fn func(*http.Request) (*http.Response, error)
}

func (f fakeDoer) Do(req *http.Request) (*http.Response, error) {
	return f.fn(req)
}

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestHTTPClient_FetchCSVReturnsBody(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != "shuttleboard-test" {
			t.Errorf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, "Time,Bus\n7:00 AM,Red\n")
	}))
	defer ts.Close()

	client, err := NewClient(ClientConfig{URL: ts.URL, UserAgent: "shuttleboard-test"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	text, err := client.FetchCSV(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if text != "Time,Bus\n7:00 AM,Red\n" {
		t.Fatalf("unexpected body %q", text)
	}
}

func TestHTTPClient_NonSuccessStatusIsNetworkError(t *testing.T) {
	t.Parallel()

	client, err := NewClient(ClientConfig{
		URL: "https://sheets.example.test/pub",
		HTTPClient: fakeDoer{fn: func(*http.Request) (*http.Response, error) {
			return textResponse(http.StatusNotFound, "missing"), nil
		}},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.FetchCSV(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
	if netErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", netErr.StatusCode)
	}
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected errors.Is(err, ErrNetwork)")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status in message, got %q", err.Error())
	}
}

func TestHTTPClient_TransportFailureIsNetworkError(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: no such host")
	calls := 0
	client, err := NewClient(ClientConfig{
		URL: "https://sheets.example.test/pub",
		HTTPClient: fakeDoer{fn: func(*http.Request) (*http.Response, error) {
			calls++
			return nil, cause
		}},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.FetchCSV(context.Background())
	if !errors.Is(err, ErrNetwork) || !errors.Is(err, cause) {
		t.Fatalf("expected network error wrapping cause, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestNewClient_DefaultsAndValidation(t *testing.T) {
	t.Parallel()

	client, err := NewClient(ClientConfig{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.URL() != DefaultURL {
		t.Fatalf("expected default URL, got %q", client.URL())
	}

	if _, err := NewClient(ClientConfig{URL: "not a url"}); err == nil {
		t.Fatalf("expected invalid URL error")
	}
}

func TestHTTPClient_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	status := http.StatusOK
	url := "https://sheets.example.test/pub"
	client, err := NewClient(ClientConfig{
		URL:     url,
		Metrics: metrics,
		HTTPClient: fakeDoer{fn: func(*http.Request) (*http.Response, error) {
			return textResponse(status, "Time\n"), nil
		}},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.FetchCSV(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	status = http.StatusInternalServerError
	if _, err := client.FetchCSV(context.Background()); err == nil {
		t.Fatalf("expected error on 500")
	}

	if got := testutil.ToFloat64(metrics.downloads.WithLabelValues(url)); got != 1 {
		t.Fatalf("expected 1 download, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.failures.WithLabelValues(url)); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}

	again, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("re-register metrics: %v", err)
	}
	if again.downloads != metrics.downloads {
		t.Fatalf("expected existing collectors to be reused")
	}
}
