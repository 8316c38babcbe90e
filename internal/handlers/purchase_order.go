package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodstore/internal/models"
)

var purchaseOrderStatuses = map[string]bool{
	models.PurchaseOrderStatusDraft:     true,
	models.PurchaseOrderStatusIssued:    true,
	models.PurchaseOrderStatusCompleted: true,
	models.PurchaseOrderStatusCancelled: true,
}

type purchaseOrderItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit"`
	UnitCost float64 `json:"unitCost" binding:"required,gt=0"`
}

type createPurchaseOrderRequest struct {
	Supplier     models.Supplier            `json:"supplier" binding:"required"`
	Items        []purchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Tax          float64                    `json:"tax"`
	Shipping     float64                    `json:"shipping"`
	DeliveryDate *time.Time                 `json:"deliveryDate"`
	Notes        string                     `json:"notes"`
}

type updatePurchaseOrderRequest struct {
	Supplier     *models.Supplier           `json:"supplier"`
	Items        []purchaseOrderItemRequest `json:"items"`
	Tax          *float64                   `json:"tax"`
	Shipping     *float64                   `json:"shipping"`
	DeliveryDate *time.Time                 `json:"deliveryDate"`
	Notes        *string                    `json:"notes"`
}

type updatePurchaseOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func purchaseOrderItems(reqItems []purchaseOrderItemRequest) []models.PurchaseOrderItem {
	items := make([]models.PurchaseOrderItem, 0, len(reqItems))
	for _, item := range reqItems {
		items = append(items, models.PurchaseOrderItem{
			Name:     strings.TrimSpace(item.Name),
			Quantity: item.Quantity,
			Unit:     strings.TrimSpace(item.Unit),
			UnitCost: item.UnitCost,
		})
	}
	return items
}

// computePurchaseOrderTotals derives subtotal and total; stored totals are
// never taken from the request.
func computePurchaseOrderTotals(items []models.PurchaseOrderItem, tax, shipping float64) (subtotal, total float64) {
	for _, item := range items {
		subtotal += item.UnitCost * item.Quantity
	}
	return subtotal, subtotal + tax + shipping
}

func newPONumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("PO-%s-%s", now.Format("20060102"), suffix)
}

func CreatePurchaseOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPurchaseOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if strings.TrimSpace(req.Supplier.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "supplier name is required"})
			return
		}
		if req.Tax < 0 || req.Shipping < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tax and shipping cannot be negative"})
			return
		}

		items := purchaseOrderItems(req.Items)
		subtotal, total := computePurchaseOrderTotals(items, req.Tax, req.Shipping)

		now := time.Now()
		po := models.PurchaseOrder{
			PONumber:     newPONumber(now),
			Supplier:     req.Supplier,
			Items:        items,
			Subtotal:     subtotal,
			Tax:          req.Tax,
			Shipping:     req.Shipping,
			Total:        total,
			Status:       models.PurchaseOrderStatusDraft,
			IssueDate:    now,
			DeliveryDate: req.DeliveryDate,
			Notes:        strings.TrimSpace(req.Notes),
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("purchaseOrders").InsertOne(ctx, po)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		po.ID, _ = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, po)
	}
}

func GetPurchaseOrders(db *mongo.Database) gin.HandlerFunc {
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

		total, err := db.Collection("purchaseOrders").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "issueDate", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("purchaseOrders").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		purchaseOrders := make([]models.PurchaseOrder, 0)
		if err := cursor.All(ctx, &purchaseOrders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":  purchaseOrders,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// UpdatePurchaseOrder edits a draft PO. Totals are recomputed whenever items,
// tax or shipping change.
func UpdatePurchaseOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		poID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req updatePurchaseOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var po models.PurchaseOrder
		if err := db.Collection("purchaseOrders").FindOne(ctx, bson.M{"_id": poID}).Decode(&po); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if po.Status != models.PurchaseOrderStatusDraft {
			c.JSON(http.StatusConflict, gin.H{"error": "only draft purchase orders can be edited"})
			return
		}

		update := bson.M{}

		if req.Supplier != nil {
			if strings.TrimSpace(req.Supplier.Name) == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "supplier name is required"})
				return
			}
			po.Supplier = *req.Supplier
			update["supplier"] = po.Supplier
		}
		if req.Items != nil {
			if len(req.Items) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "at least one item is required"})
				return
			}
			po.Items = purchaseOrderItems(req.Items)
			update["items"] = po.Items
		}
		if req.Tax != nil {
			if *req.Tax < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "tax cannot be negative"})
				return
			}
			po.Tax = *req.Tax
			update["tax"] = po.Tax
		}
		if req.Shipping != nil {
			if *req.Shipping < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "shipping cannot be negative"})
				return
			}
			po.Shipping = *req.Shipping
			update["shipping"] = po.Shipping
		}
		if req.DeliveryDate != nil {
			update["deliveryDate"] = req.DeliveryDate
		}
		if req.Notes != nil {
			update["notes"] = strings.TrimSpace(*req.Notes)
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		subtotal, total := computePurchaseOrderTotals(po.Items, po.Tax, po.Shipping)
		update["subtotal"] = subtotal
		update["total"] = total
		update["updatedAt"] = time.Now()

		var updated models.PurchaseOrder
		err = db.Collection("purchaseOrders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": poID, "status": models.PurchaseOrderStatusDraft},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusConflict, gin.H{"error": "purchase order changed concurrently"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// UpdatePurchaseOrderStatus is a single-document write; purchase orders have
// no customer to notify.
func UpdatePurchaseOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		poID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req updatePurchaseOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		status := strings.TrimSpace(req.Status)
		if !purchaseOrderStatuses[status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.PurchaseOrder
		err = db.Collection("purchaseOrders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": poID, "status": bson.M{"$ne": status}},
			bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			count, countErr := db.Collection("purchaseOrders").CountDocuments(ctx, bson.M{"_id": poID})
			if countErr == nil && count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "purchase order already has this status"})
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
