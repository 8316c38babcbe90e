package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodstore/internal/models"
	"foodstore/internal/payments"
)

func newWebhookRouter(webhookHash string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// nil db/verifier: the cases below must be rejected or acknowledged
	// before any store or gateway access happens.
	r.POST("/api/payments/webhook", PaymentWebhook(nil, nil, webhookHash, "NGN"))
	return r
}

func TestPaymentWebhookRejectsMissingSignature(t *testing.T) {
	r := newWebhookRouter("top-secret-hash")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPaymentWebhookRejectsWrongSignature(t *testing.T) {
	r := newWebhookRouter("top-secret-hash")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{}`))
	req.Header.Set("verif-hash", "guessed-hash")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid signature") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestPaymentWebhookRejectsWhenHashUnconfigured(t *testing.T) {
	// An empty configured hash must never match, even an empty header.
	r := newWebhookRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPaymentWebhookAcknowledgesIgnoredEvents(t *testing.T) {
	r := newWebhookRouter("top-secret-hash")

	bodies := []string{
		`{"event":"charge.completed","data":{"id":1,"tx_ref":"ref","status":"failed"}}`,
		`{"event":"transfer.completed","data":{"id":1,"tx_ref":"ref","status":"successful"}}`,
	}
	for _, body := range bodies {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(body))
		req.Header.Set("verif-hash", "top-secret-hash")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 ack for %s, got %d", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), "success") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	}
}

func TestPaymentWebhookRejectsBadTxRef(t *testing.T) {
	r := newWebhookRouter("top-secret-hash")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook",
		strings.NewReader(`{"event":"charge.completed","data":{"id":1,"tx_ref":"not-a-quote-id","status":"successful"}}`))
	req.Header.Set("verif-hash", "top-secret-hash")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCheckVerifiedTransaction(t *testing.T) {
	quote := models.Quote{ID: primitive.NewObjectID(), GrandTotal: 3180}
	ref := quote.ID.Hex()

	ok := payments.VerifiedTransaction{TxRef: ref, Amount: 3180, Currency: "NGN", Status: "successful"}
	if err := checkVerifiedTransaction(ok, quote, "NGN"); err != nil {
		t.Fatalf("expected matching transaction to pass, got %v", err)
	}

	overpaid := payments.VerifiedTransaction{TxRef: ref, Amount: 5000, Currency: "ngn", Status: "successful"}
	if err := checkVerifiedTransaction(overpaid, quote, "NGN"); err != nil {
		t.Fatalf("expected overpayment with case-folded currency to pass, got %v", err)
	}

	wrongRef := payments.VerifiedTransaction{TxRef: primitive.NewObjectID().Hex(), Amount: 3180, Currency: "NGN", Status: "successful"}
	if err := checkVerifiedTransaction(wrongRef, quote, "NGN"); err == nil {
		t.Fatal("expected a transaction referencing another quote to be rejected")
	}

	underpaid := payments.VerifiedTransaction{TxRef: ref, Amount: 3000, Currency: "NGN", Status: "successful"}
	if err := checkVerifiedTransaction(underpaid, quote, "NGN"); err == nil {
		t.Fatal("expected underpayment to be rejected")
	}

	wrongCurrency := payments.VerifiedTransaction{TxRef: ref, Amount: 3180, Currency: "USD", Status: "successful"}
	if err := checkVerifiedTransaction(wrongCurrency, quote, "NGN"); err == nil {
		t.Fatal("expected currency mismatch to be rejected")
	}

	notSettled := payments.VerifiedTransaction{TxRef: ref, Amount: 3180, Currency: "NGN", Status: "pending"}
	if err := checkVerifiedTransaction(notSettled, quote, "NGN"); err == nil {
		t.Fatal("expected unsettled transaction to be rejected")
	}
}
