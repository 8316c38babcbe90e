package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodstore/internal/models"
)

type priceQuoteRequest struct {
	UnitCosts      []float64          `json:"unitCosts" binding:"required,min=1"`
	PricedServices map[string]float64 `json:"pricedServices"`
	ShippingCost   float64            `json:"shippingCost"`
}

type updateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func GetAllQuotes(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination params"})
			return
		}

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("quotes").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("quotes").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		quotes := make([]models.Quote, 0)
		if err := cursor.All(ctx, &quotes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":  quotes,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

func GetQuote(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var quote models.Quote
		err = db.Collection("quotes").FindOne(ctx, bson.M{"_id": quoteID}).Decode(&quote)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, quote)
	}
}

// PriceQuote writes admin-supplied costs onto a pending quote, derives the
// totals and notifies the owner, all in one grouped write. Quotes that already
// reached "Quote Ready" or "Paid" are left untouched.
func PriceQuote(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/quotes/:id/pricing"
		defer handlePanic(c, route)

		quoteID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req priceQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var quote models.Quote
		if err := db.Collection("quotes").FindOne(ctx, bson.M{"_id": quoteID}).Decode(&quote); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if len(req.UnitCosts) != len(quote.Items) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unitCosts must match the quote items"})
			return
		}

		items := make([]models.QuoteItem, len(quote.Items))
		copy(items, quote.Items)
		for i := range items {
			items[i].UnitCost = req.UnitCosts[i]
		}

		if err := validateQuotePricing(items, req.PricedServices, req.ShippingCost); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		pricing := computeQuotePricing(items, req.PricedServices, req.ShippingCost)

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var updated models.Quote
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			now := time.Now()
			err := db.Collection("quotes").FindOneAndUpdate(
				sessCtx,
				bson.M{
					"_id": quoteID,
					"status": bson.M{"$in": []string{
						models.QuoteStatusPendingReview,
						models.QuoteStatusPendingUserAction,
					}},
				},
				bson.M{"$set": bson.M{
					"items":          items,
					"pricedServices": req.PricedServices,
					"shippingCost":   req.ShippingCost,
					"itemsTotal":     pricing.ItemsTotal,
					"servicesTotal":  pricing.ServicesTotal,
					"serviceCharge":  pricing.ServiceCharge,
					"grandTotal":     pricing.GrandTotal,
					"status":         models.QuoteStatusPendingUserAction,
					"updatedAt":      now,
				}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).Decode(&updated)
			if err != nil {
				return nil, err
			}

			notification := models.Notification{
				UserID:      updated.UserID.Hex(),
				Title:       "Your quote is ready",
				Description: "Your custom order request has been priced. Review and accept it to continue.",
				Href:        "/quotes/" + quoteID.Hex(),
				CreatedAt:   now,
			}
			if _, err := db.Collection("notifications").InsertOne(sessCtx, notification); err != nil {
				return nil, err
			}
			return nil, nil
		})
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusConflict, gin.H{"error": "quote can no longer be priced"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// UpdateQuoteStatus lets an admin push a quote forward through its lifecycle.
// Regressions are rejected and "Paid" is reserved for payment capture.
func UpdateQuoteStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req updateQuoteStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		status := strings.TrimSpace(req.Status)
		if _, ok := quoteStatusRank[status]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		if status == models.QuoteStatusPaid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Paid is set through payment capture only"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var quote models.Quote
		if err := db.Collection("quotes").FindOne(ctx, bson.M{"_id": quoteID}).Decode(&quote); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if !isForwardQuoteTransition(quote.Status, status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quote status can only move forward"})
			return
		}

		var updated models.Quote
		err = db.Collection("quotes").FindOneAndUpdate(
			ctx,
			bson.M{"_id": quoteID, "status": quote.Status},
			bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusConflict, gin.H{"error": "quote changed concurrently"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
