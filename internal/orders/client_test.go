package orders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mediguide/storefront-client/internal/api"
	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
	"github.com/shopspring/decimal"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	transport, err := api.NewClient("http://store.test",
		api.WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	client, err := NewClient(transport)
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

func validInput() CreateInput {
	return CreateInput{
		ShippingName:    "Ana Diaz",
		ShippingAddress: "1 Main St",
		ShippingCity:    "Springfield",
		ShippingState:   "IL",
		ShippingZip:     "62701",
		ShippingPhone:   "555-0100",
		PaymentIntentID: "pi_123",
		Subtotal:        decimal.RequireFromString("19.98"),
		Tax:             decimal.RequireFromString("1.60"),
		ShippingCost:    decimal.RequireFromString("5.00"),
		Total:           decimal.RequireFromString("26.58"),
		Items: []ItemInput{
			{Product: 1, Quantity: 2, Price: decimal.RequireFromString("9.99")},
		},
	}
}

func TestCreateSendsPayloadAndIdempotencyKey(t *testing.T) {
	var capturedKey string
	var capturedBody map[string]any
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/orders/" || req.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", req.Method, req.URL.Path)
		}
		capturedKey = req.Header.Get("X-Idempotency-Key")
		body, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(body, &capturedBody); err != nil {
			t.Fatalf("unmarshal request: %v", err)
		}
		return jsonResponse(http.StatusCreated, `{"id":42,"status":"pending","total":"26.58"}`), nil
	})

	order, err := client.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.ID != 42 || order.Status != StatusPending {
		t.Fatalf("unexpected order %+v", order)
	}
	if _, err := uuid.Parse(capturedKey); err != nil {
		t.Fatalf("idempotency key %q is not a uuid: %v", capturedKey, err)
	}
	if capturedBody["payment_intent_id"] != "pi_123" {
		t.Fatalf("payment intent id missing from payload: %v", capturedBody)
	}
	if capturedBody["subtotal"] != "19.98" {
		t.Fatalf("decimal fields must serialize as strings, got %v", capturedBody["subtotal"])
	}
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})
	input := validInput()
	input.Items = nil
	if _, err := client.Create(context.Background(), input); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsMissingPaymentConfirmation(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})
	input := validInput()
	input.PaymentIntentID = ""
	if _, err := client.Create(context.Background(), input); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListMine(t *testing.T) {
	var capturedURL string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return jsonResponse(http.StatusOK,
			`[{"id":7,"status":"delivered","total":"12.00","items":[{"id":1,"product":3,"product_name":"Ibuprofen","quantity":2,"price":"6.00","subtotal":"12.00"}]}]`), nil
	})

	result, err := client.ListMine(context.Background())
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if capturedURL != "http://store.test/api/orders/my-orders/" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if len(result) != 1 || result[0].Items[0].ProductName != "Ibuprofen" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestGetSurfacesNotFound(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"detail":"not found"}`), nil
	})
	if _, err := client.Get(context.Background(), 99); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
