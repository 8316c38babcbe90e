package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"foodstore/internal/models"
)

// GetDashboard returns the headline counts for the admin landing page.
func GetDashboard(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/dashboard"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		pendingQuotes, err := db.Collection("quotes").CountDocuments(ctx, bson.M{
			"status": models.QuoteStatusPendingReview,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		activeOrders, err := db.Collection("orders").CountDocuments(ctx, bson.M{
			"status": bson.M{"$in": []string{
				models.OrderStatusPending,
				models.OrderStatusProcessing,
				models.OrderStatusShipped,
			}},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		issuedPurchaseOrders, err := db.Collection("purchaseOrders").CountDocuments(ctx, bson.M{
			"status": models.PurchaseOrderStatusIssued,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		unreadNotifications, err := db.Collection("notifications").CountDocuments(ctx, bson.M{
			"userId": models.NotificationAdminFeed,
			"isRead": false,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"pendingQuotes":        pendingQuotes,
			"activeOrders":         activeOrders,
			"issuedPurchaseOrders": issuedPurchaseOrders,
			"unreadNotifications":  unreadNotifications,
		})
	}
}
