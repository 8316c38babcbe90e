package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodstore/internal/models"
)

// Singleton settings documents live in the "settings" collection keyed by
// name. Unknown names are rejected so the collection cannot grow unbounded.
var settingsNames = map[string]bool{
	"homepage":    true,
	"footer":      true,
	"store":       true,
	"customOrder": true,
	"accounting":  true,
}

func defaultSettings(name string) interface{} {
	switch name {
	case "store":
		return models.StoreSettings{Currency: "NGN"}
	case "customOrder":
		return models.CustomOrderSettings{
			Units:    []string{"kg", "pcs", "crate", "basket", "bag"},
			Services: []string{"Cleaning", "Cutting", "Packaging"},
			ShippingZones: []models.ShippingZone{
				{Name: "Lagos Island", Cost: 1500},
				{Name: "Lagos Mainland", Cost: 1000},
				{Name: "Lekki-Ajah", Cost: 2000},
				{Name: "Ikorodu", Cost: 2500},
			},
			Suppliers: []models.Supplier{},
		}
	case "accounting":
		return models.AccountingSettings{
			ExpenseCategories: []string{"Logistics", "Packaging", "Utilities", "Staff", "Other"},
		}
	default:
		return bson.M{}
	}
}

func GetSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.Param("name"))
		if !settingsNames[name] {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown settings document"})
			return
		}

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var doc bson.M
		err := db.Collection("settings").FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{"name": name, "data": defaultSettings(name)})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		delete(doc, "_id")
		delete(doc, "updatedAt")
		c.JSON(http.StatusOK, gin.H{"name": name, "data": doc})
	}
}

func UpdateSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.Param("name"))
		if !settingsNames[name] {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown settings document"})
			return
		}

		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if len(body) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		delete(body, "_id")

		update := bson.M{"updatedAt": time.Now()}
		for key, value := range body {
			update[key] = value
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := db.Collection("settings").UpdateByID(
			ctx,
			name,
			bson.M{"$set": update},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
	}
}
