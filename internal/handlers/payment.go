package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"foodstore/internal/models"
	"foodstore/internal/payments"
)

type confirmPaymentRequest struct {
	QuoteID       string `json:"quoteId" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
}

// ConfirmPayment is the client-confirmation path. The browser only reports
// that the gateway widget succeeded; the charge is still re-verified
// server-to-server and the same finalizer as the webhook performs the
// transition, so a webhook racing this call cannot create a second order.
func ConfirmPayment(db *mongo.Database, verifier payments.TransactionVerifier, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /payments/confirm"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req confirmPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		quoteID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.QuoteID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quoteId"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		var quote models.Quote
		err = db.Collection("quotes").FindOne(ctx, bson.M{
			"_id":    quoteID,
			"userId": userIDValue,
		}).Decode(&quote)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if quote.Status == models.QuoteStatusPaid {
			c.JSON(http.StatusOK, gin.H{"message": "payment already recorded"})
			return
		}

		verified, err := verifier.VerifyTransaction(ctx, strings.TrimSpace(req.TransactionID))
		if err != nil {
			log.Println("[PAYMENT] [ERROR] gateway verification failed:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "transaction verification failed"})
			return
		}

		if err := checkVerifiedTransaction(verified, quote, currency); err != nil {
			log.Println("[PAYMENT] [ERROR]", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := finalizeQuotePayment(ctx, db, quoteID, strings.TrimSpace(req.TransactionID))
		if err != nil {
			switch {
			case errors.Is(err, ErrQuoteNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
			case errors.Is(err, ErrQuoteNotPayable):
				c.JSON(http.StatusConflict, gin.H{"error": "quote is not ready for payment"})
			default:
				log.Println("[PAYMENT] [ERROR] finalize failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "payment could not be recorded")
			}
			return
		}

		if result.AlreadyPaid {
			c.JSON(http.StatusOK, gin.H{"message": "payment already recorded"})
			return
		}

		log.Println("[PAYMENT] [INFO] order created from quote:", quoteID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"orderId": result.OrderID.Hex(),
			"message": "payment confirmed",
		})
	}
}
