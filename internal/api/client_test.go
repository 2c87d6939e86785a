package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type staticTokens string

func (s staticTokens) Token(context.Context) string { return string(s) }

func newTestClient(t *testing.T, rt roundTripFunc, opts ...Option) *Client {
	t.Helper()
	opts = append(opts, WithHTTPClient(&http.Client{Transport: rt}))
	client, err := NewClient("http://store.test", opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestBaseURLNormalization(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"http://store.test", "http://store.test"},
		{"http://store.test/", "http://store.test"},
		{"  http://store.test//  ", "http://store.test"},
	}
	for _, tc := range cases {
		client, err := NewClient(tc.raw)
		if err != nil {
			t.Fatalf("NewClient(%q): %v", tc.raw, err)
		}
		if got := client.BaseURL(); got != tc.want {
			t.Fatalf("BaseURL() for %q = %q, want %q", tc.raw, got, tc.want)
		}
	}

	if _, err := NewClient("   "); err == nil {
		t.Fatal("expected blank base URL to be rejected")
	}
}

func TestGetAttachesTokenHeader(t *testing.T) {
	var captured http.Header
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req.Header.Clone()
		return jsonResponse(http.StatusOK, `{"ok":true}`), nil
	}, WithTokenSource(staticTokens("secret-token")))

	var out struct {
		OK bool `json:"ok"`
	}
	if err := client.Get(context.Background(), "/api/products/", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := captured.Get("Authorization"); got != "Token secret-token" {
		t.Fatalf("unexpected auth header %q", got)
	}
	if !out.OK {
		t.Fatalf("response not decoded")
	}
}

func TestGetOmitsAuthHeaderWithoutToken(t *testing.T) {
	var captured http.Header
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req.Header.Clone()
		return jsonResponse(http.StatusOK, `{}`), nil
	}, WithTokenSource(staticTokens("")))

	if err := client.Get(context.Background(), "/api/products/", nil, nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if captured.Get("Authorization") != "" {
		t.Fatalf("anonymous request must not carry auth header")
	}
}

func TestQueryEncoding(t *testing.T) {
	var capturedURL string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	query := url.Values{}
	query.Set("search", "vitamin c")
	query.Set("page", "2")
	if err := client.Get(context.Background(), "api/products/", query, nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if capturedURL != "http://store.test/api/products/?page=2&search=vitamin+c" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusBadRequest, pkgerrors.CodeValidation},
		{http.StatusUnauthorized, pkgerrors.CodeUnauthorized},
		{http.StatusForbidden, pkgerrors.CodeUnauthorized},
		{http.StatusNotFound, pkgerrors.CodeNotFound},
		{http.StatusInternalServerError, pkgerrors.CodeDependency},
		{http.StatusBadGateway, pkgerrors.CodeDependency},
	}

	for _, tt := range tests {
		client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return jsonResponse(tt.status, `{"detail":"nope"}`), nil
		})
		err := client.Get(context.Background(), "/api/orders/", nil, nil)
		if !pkgerrors.IsCode(err, tt.code) {
			t.Fatalf("status %d: expected code %s, got %v", tt.status, tt.code, err)
		}
	}
}

func TestValidationDetailSurfaces(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"detail":"quantity must be positive"}`), nil
	})

	err := client.Post(context.Background(), "/api/orders/", map[string]any{}, nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "quantity must be positive" {
		t.Fatalf("expected detail to surface, got %v", err)
	}
}

func TestGetRawReturnsPayloadAndContentType(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("%PDF-1.4 fake")),
			Header:     http.Header{"Content-Type": []string{"application/pdf"}},
		}, nil
	})

	body, contentType, err := client.GetRaw(context.Background(), "/api/reports/low-stock/", nil)
	if err != nil {
		t.Fatalf("get raw: %v", err)
	}
	if contentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", contentType)
	}
	if string(body) != "%PDF-1.4 fake" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestNetworkErrorMapsToDependency(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})
	err := client.Get(context.Background(), "/api/products/", nil, nil)
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
