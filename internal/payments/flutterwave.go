package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

var ErrMissingSecretKey = errors.New("missing FLW_SECRET_KEY")
var ErrTransactionNotFound = errors.New("transaction not found")

const defaultBaseURL = "https://api.flutterwave.com"

// VerifiedTransaction is the gateway's own record of a charge, fetched
// server-to-server so webhook bodies are never trusted on their own.
type VerifiedTransaction struct {
	ID       string
	TxRef    string
	Amount   float64
	Currency string
	Status   string
}

// Successful reports whether the gateway settled the charge.
func (t VerifiedTransaction) Successful() bool {
	return strings.EqualFold(t.Status, "successful")
}

type TransactionVerifier interface {
	VerifyTransaction(ctx context.Context, transactionID string) (VerifiedTransaction, error)
}

type FlutterwaveClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

var _ TransactionVerifier = (*FlutterwaveClient)(nil)

func NewFlutterwaveClient(secretKey string) (*FlutterwaveClient, error) {
	if strings.TrimSpace(secretKey) == "" {
		log.Println("[PAYMENT] [ERROR] missing FLW_SECRET_KEY")
		return nil, ErrMissingSecretKey
	}

	return &FlutterwaveClient{
		baseURL:   defaultBaseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type verifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID       int64   `json:"id"`
		TxRef    string  `json:"tx_ref"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
		Status   string  `json:"status"`
	} `json:"data"`
}

// VerifyTransaction calls GET /v3/transactions/{id}/verify.
func (f *FlutterwaveClient) VerifyTransaction(ctx context.Context, transactionID string) (VerifiedTransaction, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return VerifiedTransaction{}, errors.New("transaction id is required")
	}

	url := fmt.Sprintf("%s/v3/transactions/%s/verify", f.baseURL, transactionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return VerifiedTransaction{}, err
	}
	req.Header.Set("Authorization", "Bearer "+f.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		log.Println("[PAYMENT] [ERROR] verify request failed:", err)
		return VerifiedTransaction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return VerifiedTransaction{}, ErrTransactionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[PAYMENT] [ERROR] verify returned %d: %s", resp.StatusCode, string(body))
		return VerifiedTransaction{}, fmt.Errorf("gateway verify returned status %d", resp.StatusCode)
	}

	var parsed verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Println("[PAYMENT] [ERROR] verify decode failed:", err)
		return VerifiedTransaction{}, err
	}

	if !strings.EqualFold(parsed.Status, "success") {
		return VerifiedTransaction{}, fmt.Errorf("gateway verify rejected transaction: %s", parsed.Message)
	}

	return VerifiedTransaction{
		ID:       fmt.Sprintf("%d", parsed.Data.ID),
		TxRef:    parsed.Data.TxRef,
		Amount:   parsed.Data.Amount,
		Currency: parsed.Data.Currency,
		Status:   parsed.Data.Status,
	}, nil
}
