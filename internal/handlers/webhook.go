package handlers

import (
	"context"
	"crypto/hmac"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"foodstore/internal/models"
	"foodstore/internal/payments"
)

type webhookCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type webhookData struct {
	ID       int64           `json:"id"`
	TxRef    string          `json:"tx_ref"`
	Amount   float64         `json:"amount"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
	Customer webhookCustomer `json:"customer"`
}

type webhookRequest struct {
	Event string      `json:"event"`
	Data  webhookData `json:"data"`
}

// PaymentWebhook handles charge notifications from the gateway. The signature
// header must match the configured hash before the body is read, the charge is
// re-verified server-to-server, and the paid-quote transition itself is
// idempotent, so gateway retries are safe.
func PaymentWebhook(db *mongo.Database, verifier payments.TransactionVerifier, webhookHash, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payments/webhook"
		defer handlePanic(c, route)

		signature := strings.TrimSpace(c.GetHeader("verif-hash"))
		if webhookHash == "" || !hmac.Equal([]byte(signature), []byte(webhookHash)) {
			log.Println("[WEBHOOK] [ERROR] signature mismatch")
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid signature"})
			return
		}

		var req webhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
			return
		}

		if req.Event != "charge.completed" || !strings.EqualFold(req.Data.Status, "successful") {
			// Not a settled charge; acknowledge so the gateway stops retrying.
			c.JSON(http.StatusOK, gin.H{"status": "success"})
			return
		}

		quoteID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.Data.TxRef))
		if err != nil {
			log.Println("[WEBHOOK] [ERROR] tx_ref is not a quote id:", req.Data.TxRef)
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid tx_ref"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		var quote models.Quote
		if err := db.Collection("quotes").FindOne(ctx, bson.M{"_id": quoteID}).Decode(&quote); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "quote not found"})
				return
			}
			log.Println("[WEBHOOK] [ERROR] quote lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "db error"})
			return
		}

		if quote.Status == models.QuoteStatusPaid {
			c.JSON(http.StatusOK, gin.H{"status": "success"})
			return
		}

		transactionID := formatTransactionID(req.Data.ID)
		verified, err := verifier.VerifyTransaction(ctx, transactionID)
		if err != nil {
			log.Println("[WEBHOOK] [ERROR] gateway verification failed:", err)
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "transaction verification failed"})
			return
		}

		if err := checkVerifiedTransaction(verified, quote, currency); err != nil {
			log.Println("[WEBHOOK] [ERROR]", err)
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}

		result, err := finalizeQuotePayment(ctx, db, quoteID, transactionID)
		if err != nil {
			switch {
			case errors.Is(err, ErrQuoteNotFound):
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "quote not found"})
			case errors.Is(err, ErrQuoteNotPayable):
				c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "quote is not ready for payment"})
			default:
				log.Println("[WEBHOOK] [ERROR] finalize failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "payment could not be recorded"})
			}
			return
		}

		if result.AlreadyPaid {
			log.Println("[WEBHOOK] [INFO] duplicate delivery for paid quote:", quoteID.Hex())
		} else {
			log.Println("[WEBHOOK] [INFO] order created from quote:", quoteID.Hex())
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

// checkVerifiedTransaction rejects charges that reference another quote, were
// settled for less than the quoted total or were charged in another currency.
func checkVerifiedTransaction(verified payments.VerifiedTransaction, quote models.Quote, currency string) error {
	if !verified.Successful() {
		return errors.New("transaction is not successful")
	}
	if verified.TxRef != quote.ID.Hex() {
		return errors.New("transaction does not reference this quote")
	}
	if verified.Amount < quote.GrandTotal {
		return errors.New("amount is below the quoted total")
	}
	if !strings.EqualFold(verified.Currency, currency) {
		return errors.New("currency mismatch")
	}
	return nil
}

func formatTransactionID(id int64) string {
	return strconv.FormatInt(id, 10)
}
