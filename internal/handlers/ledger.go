package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"foodstore/internal/models"
)

const (
	LedgerEntryIncome  = "income"
	LedgerEntryExpense = "expense"
)

// LedgerEntry is one row of the merged accounting view.
type LedgerEntry struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	RefID       string    `json:"refId"`
	Amount      float64   `json:"amount"`
}

// buildLedger merges delivered orders (income), completed purchase orders and
// manual expenses (both expense) into one list sorted by date descending, and
// returns the running balance over the full set.
func buildLedger(orders []models.Order, purchaseOrders []models.PurchaseOrder, expenses []models.Expense) ([]LedgerEntry, float64) {
	entries := make([]LedgerEntry, 0, len(orders)+len(purchaseOrders)+len(expenses))

	for _, order := range orders {
		entries = append(entries, LedgerEntry{
			Date:        order.CreatedAt,
			Description: "Order " + order.ID.Hex(),
			Type:        LedgerEntryIncome,
			Source:      "order",
			RefID:       order.ID.Hex(),
			Amount:      order.TotalCost,
		})
	}
	for _, po := range purchaseOrders {
		entries = append(entries, LedgerEntry{
			Date:        po.IssueDate,
			Description: "Purchase order " + po.PONumber,
			Type:        LedgerEntryExpense,
			Source:      "purchaseOrder",
			RefID:       po.ID.Hex(),
			Amount:      po.Total,
		})
	}
	for _, expense := range expenses {
		entries = append(entries, LedgerEntry{
			Date:        expense.Date,
			Description: expense.Description,
			Type:        LedgerEntryExpense,
			Source:      "expense",
			RefID:       expense.ID.Hex(),
			Amount:      expense.Amount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	balance := 0.0
	for _, entry := range entries {
		if entry.Type == LedgerEntryIncome {
			balance += entry.Amount
		} else {
			balance -= entry.Amount
		}
	}

	return entries, balance
}

// paginateLedger slices an already-merged ledger. Out-of-range pages return an
// empty slice rather than an error.
func paginateLedger(entries []LedgerEntry, page, limit int64) []LedgerEntry {
	start := (page - 1) * limit
	if start >= int64(len(entries)) {
		return []LedgerEntry{}
	}
	end := start + limit
	if end > int64(len(entries)) {
		end = int64(len(entries))
	}
	return entries[start:end]
}

func GetLedger(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/ledger"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination params"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var orders []models.Order
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"status": models.OrderStatusDelivered})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		var purchaseOrders []models.PurchaseOrder
		cursor, err = db.Collection("purchaseOrders").Find(ctx, bson.M{"status": models.PurchaseOrderStatusCompleted})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if err := cursor.All(ctx, &purchaseOrders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		var expenses []models.Expense
		cursor, err = db.Collection("expenses").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if err := cursor.All(ctx, &expenses); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		entries, balance := buildLedger(orders, purchaseOrders, expenses)

		c.JSON(http.StatusOK, gin.H{
			"data":    paginateLedger(entries, page, limit),
			"balance": balance,
			"total":   len(entries),
			"page":    page,
			"limit":   limit,
		})
	}
}
