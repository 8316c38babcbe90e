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

type createQuoteItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit" binding:"required"`
}

type createQuoteRequest struct {
	CustomerName    string                   `json:"customerName" binding:"required"`
	CustomerEmail   string                   `json:"customerEmail" binding:"required,email"`
	CustomerPhone   string                   `json:"customerPhone"`
	Items           []createQuoteItemRequest `json:"items" binding:"required,min=1,dive"`
	Services        []string                 `json:"services"`
	ShippingAddress string                   `json:"shippingAddress" binding:"required"`
}

func CreateQuote(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /quotes"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req createQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		items := make([]models.QuoteItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.QuoteItem{
				Name:     strings.TrimSpace(item.Name),
				Quantity: item.Quantity,
				Unit:     strings.TrimSpace(item.Unit),
			})
		}

		now := time.Now()
		quote := models.Quote{
			UserID:          userID,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerEmail:   strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
			CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
			Items:           items,
			Services:        req.Services,
			ShippingAddress: strings.TrimSpace(req.ShippingAddress),
			Status:          models.QuoteStatusPendingReview,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var quoteID primitive.ObjectID
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			res, err := db.Collection("quotes").InsertOne(sessCtx, quote)
			if err != nil {
				return nil, err
			}
			id, _ := res.InsertedID.(primitive.ObjectID)
			quoteID = id

			notification := models.Notification{
				UserID:      models.NotificationAdminFeed,
				Title:       "New quote request",
				Description: quote.CustomerName + " submitted a custom order request",
				Href:        "/admin/quotes/" + id.Hex(),
				CreatedAt:   now,
			}
			if _, err := db.Collection("notifications").InsertOne(sessCtx, notification); err != nil {
				return nil, err
			}
			return nil, nil
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		quote.ID = quoteID
		c.JSON(http.StatusCreated, quote)
	}
}

func GetMyQuotes(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("quotes").Find(ctx, bson.M{"userId": userIDValue}, opts)
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

		c.JSON(http.StatusOK, gin.H{"data": quotes})
	}
}

func GetMyQuote(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		quoteID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
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
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, quote)
	}
}

// AcceptQuote moves a priced quote to "Quote Ready" so it can be paid. The
// status filter keeps the transition forward-only even under a double submit.
func AcceptQuote(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /quotes/:id/accept"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		quoteID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var quote models.Quote
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			now := time.Now()
			err := db.Collection("quotes").FindOneAndUpdate(
				sessCtx,
				bson.M{
					"_id":    quoteID,
					"userId": userIDValue,
					"status": models.QuoteStatusPendingUserAction,
				},
				bson.M{"$set": bson.M{
					"status":    models.QuoteStatusQuoteReady,
					"updatedAt": now,
				}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).Decode(&quote)
			if err != nil {
				return nil, err
			}

			notification := models.Notification{
				UserID:      models.NotificationAdminFeed,
				Title:       "Quote accepted",
				Description: quote.CustomerName + " accepted the quoted price",
				Href:        "/admin/quotes/" + quoteID.Hex(),
				CreatedAt:   now,
			}
			if _, err := db.Collection("notifications").InsertOne(sessCtx, notification); err != nil {
				return nil, err
			}
			return nil, nil
		})
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusConflict, gin.H{"error": "quote is not awaiting acceptance"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, quote)
	}
}
