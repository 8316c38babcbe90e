package payments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(baseURL string) *FlutterwaveClient {
	return &FlutterwaveClient{
		baseURL:   baseURL,
		secretKey: "FLWSECK_TEST-key",
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func TestNewFlutterwaveClientRequiresSecretKey(t *testing.T) {
	if _, err := NewFlutterwaveClient("  "); !errors.Is(err, ErrMissingSecretKey) {
		t.Fatalf("expected ErrMissingSecretKey, got %v", err)
	}
}

func TestVerifyTransactionParsesSuccessfulCharge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/transactions/12345/verify" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer FLWSECK_TEST-key" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"message": "Transaction fetched successfully",
			"data": {
				"id": 12345,
				"tx_ref": "64f0c1d2e3a4b5c6d7e8f901",
				"amount": 4680,
				"currency": "NGN",
				"status": "successful"
			}
		}`))
	}))
	defer server.Close()

	tx, err := newTestClient(server.URL).VerifyTransaction(context.Background(), "12345")
	if err != nil {
		t.Fatalf("VerifyTransaction returned error: %v", err)
	}
	if tx.ID != "12345" || tx.TxRef != "64f0c1d2e3a4b5c6d7e8f901" {
		t.Fatalf("unexpected transaction identity: %+v", tx)
	}
	if tx.Amount != 4680 || tx.Currency != "NGN" {
		t.Fatalf("unexpected transaction amount/currency: %+v", tx)
	}
	if !tx.Successful() {
		t.Fatal("expected Successful() to be true")
	}
}

func TestVerifyTransactionRejectsGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"error","message":"No transaction was found for this id"}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).VerifyTransaction(context.Background(), "99"); err == nil {
		t.Fatal("expected error for gateway error status")
	}
}

func TestVerifyTransactionNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).VerifyTransaction(context.Background(), "99"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestVerifyTransactionRequiresID(t *testing.T) {
	if _, err := newTestClient("http://localhost").VerifyTransaction(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty transaction id")
	}
}
