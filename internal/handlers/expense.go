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

type createExpenseRequest struct {
	Description string    `json:"description" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Date        time.Time `json:"date" binding:"required"`
	ReceiptURL  string    `json:"receiptUrl"`
}

type updateExpenseRequest struct {
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Amount      *float64   `json:"amount"`
	Date        *time.Time `json:"date"`
	ReceiptURL  *string    `json:"receiptUrl"`
}

func CreateExpense(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createExpenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		expense := models.Expense{
			Description: strings.TrimSpace(req.Description),
			Category:    strings.TrimSpace(req.Category),
			Amount:      req.Amount,
			Date:        req.Date,
			ReceiptURL:  strings.TrimSpace(req.ReceiptURL),
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("expenses").InsertOne(ctx, expense)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		expense.ID, _ = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, expense)
	}
}

func GetExpenses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
		cursor, err := db.Collection("expenses").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		expenses := make([]models.Expense, 0)
		if err := cursor.All(ctx, &expenses); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": expenses})
	}
}

func UpdateExpense(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenseID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req updateExpenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		update := bson.M{}
		if req.Description != nil {
			description := strings.TrimSpace(*req.Description)
			if description == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "description cannot be empty"})
				return
			}
			update["description"] = description
		}
		if req.Category != nil {
			update["category"] = strings.TrimSpace(*req.Category)
		}
		if req.Amount != nil {
			if *req.Amount <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than 0"})
				return
			}
			update["amount"] = *req.Amount
		}
		if req.Date != nil {
			update["date"] = *req.Date
		}
		if req.ReceiptURL != nil {
			update["receiptUrl"] = strings.TrimSpace(*req.ReceiptURL)
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Expense
		err = db.Collection("expenses").FindOneAndUpdate(
			ctx,
			bson.M{"_id": expenseID},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
