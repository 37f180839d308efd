package vk

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type mockTransport struct {
	responses []string
	statuses  []int
	requests  []*http.Request
	err       error
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	i := len(m.requests)
	m.requests = append(m.requests, req)
	status := http.StatusOK
	if i < len(m.statuses) {
		status = m.statuses[i]
	}
	body := "{}"
	if i < len(m.responses) {
		body = m.responses[i]
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}, nil
}

func newTestClient(transport *mockTransport) *Client {
	c := New(transport, "https://vk.test", "test-token")
	c.limiter.SetLimit(1e9) // no throttling in tests
	return c
}

func TestSearchSinglePage(t *testing.T) {
	transport := &mockTransport{responses: []string{
		`{"response": {"items": [
			{"owner_id": -100, "id": 1, "date": 1700000000},
			{"owner_id": 55, "id": 2, "date": 1700000100}
		]}}`,
	}}

	c := newTestClient(transport)
	items, err := c.Search(context.Background(), "Котлас", 1699999000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Item{
		{OwnerID: -100, ID: 1, Date: 1700000000},
		{OwnerID: 55, ID: 2, Date: 1700000100},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	if len(transport.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(transport.requests))
	}
	q := transport.requests[0].URL.Query()
	if got := q.Get("q"); got != "Котлас" {
		t.Errorf("q = %q, want %q", got, "Котлас")
	}
	if got := q.Get("start_time"); got != "1699999000" {
		t.Errorf("start_time = %q, want %q", got, "1699999000")
	}
	if got := q.Get("start_from"); got != "" {
		t.Errorf("start_from should be absent on the first page, got %q", got)
	}
}

func TestSearchPagination(t *testing.T) {
	transport := &mockTransport{responses: []string{
		`{"response": {"items": [{"owner_id": -100, "id": 1, "date": 10}], "next_from": "page2"}}`,
		`{"response": {"items": [{"owner_id": -200, "id": 2, "date": 20}]}}`,
	}}

	c := newTestClient(transport)
	items, err := c.Search(context.Background(), "Коряжма", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Exactly two requests: the second page carries the cursor, the second
	// response has no next_from so pagination stops.
	if len(transport.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(transport.requests))
	}
	if got := transport.requests[1].URL.Query().Get("start_from"); got != "page2" {
		t.Errorf("second request start_from = %q, want %q", got, "page2")
	}

	want := []Item{
		{OwnerID: -100, ID: 1, Date: 10},
		{OwnerID: -200, ID: 2, Date: 20},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("aggregated items mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name      string
		transport *mockTransport
	}{
		{
			name:      "network error",
			transport: &mockTransport{err: io.ErrUnexpectedEOF},
		},
		{
			name:      "http error status",
			transport: &mockTransport{responses: []string{"server error"}, statuses: []int{500}},
		},
		{
			name:      "invalid json",
			transport: &mockTransport{responses: []string{"not json"}},
		},
		{
			name:      "api error envelope",
			transport: &mockTransport{responses: []string{`{"error": {"error_code": 6, "error_msg": "Too many requests per second"}}`}},
		},
		{
			name:      "missing response field",
			transport: &mockTransport{responses: []string{`{}`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(tt.transport)
			if _, err := c.Search(context.Background(), "Котлас", 0); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
