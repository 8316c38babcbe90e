package handlers

import (
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodstore/internal/models"
)

func ledgerFixture() ([]models.Order, []models.PurchaseOrder, []models.Expense) {
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{ID: primitive.NewObjectID(), TotalCost: 4000, Status: models.OrderStatusDelivered, CreatedAt: base.AddDate(0, 0, 1)},
		{ID: primitive.NewObjectID(), TotalCost: 3500, Status: models.OrderStatusDelivered, CreatedAt: base.AddDate(0, 0, 3)},
		{ID: primitive.NewObjectID(), TotalCost: 2500, Status: models.OrderStatusDelivered, CreatedAt: base.AddDate(0, 0, 5)},
	}
	purchaseOrders := []models.PurchaseOrder{
		{ID: primitive.NewObjectID(), PONumber: "PO-20240302-AB12CD34", Total: 4000, Status: models.PurchaseOrderStatusCompleted, IssueDate: base.AddDate(0, 0, 2)},
	}
	expenses := []models.Expense{
		{ID: primitive.NewObjectID(), Description: "Fuel", Category: "Logistics", Amount: 500, Date: base.AddDate(0, 0, 4)},
	}

	return orders, purchaseOrders, expenses
}

func TestBuildLedgerRunningBalance(t *testing.T) {
	orders, purchaseOrders, expenses := ledgerFixture()

	entries, balance := buildLedger(orders, purchaseOrders, expenses)

	// ₦10,000 delivered income − ₦4,000 completed PO − ₦500 manual expense
	if balance != 5500 {
		t.Fatalf("expected balance 5500, got %v", balance)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 ledger entries, got %d", len(entries))
	}
}

func TestBuildLedgerSortsByDateDescending(t *testing.T) {
	orders, purchaseOrders, expenses := ledgerFixture()

	entries, _ := buildLedger(orders, purchaseOrders, expenses)

	for i := 1; i < len(entries); i++ {
		if entries[i].Date.After(entries[i-1].Date) {
			t.Fatalf("entries not sorted descending at index %d", i)
		}
	}
	if entries[0].Source != "order" || entries[0].Amount != 2500 {
		t.Fatalf("expected newest entry to be the 2500 order, got %+v", entries[0])
	}
}

func TestBuildLedgerEntryTypes(t *testing.T) {
	orders, purchaseOrders, expenses := ledgerFixture()

	entries, _ := buildLedger(orders, purchaseOrders, expenses)

	for _, entry := range entries {
		switch entry.Source {
		case "order":
			if entry.Type != LedgerEntryIncome {
				t.Fatalf("order entry should be income, got %q", entry.Type)
			}
		case "purchaseOrder", "expense":
			if entry.Type != LedgerEntryExpense {
				t.Fatalf("%s entry should be expense, got %q", entry.Source, entry.Type)
			}
		default:
			t.Fatalf("unexpected source %q", entry.Source)
		}
	}
}

func TestPaginateLedgerNeverSkipsOrDuplicates(t *testing.T) {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]LedgerEntry, 0, 25)
	for i := 0; i < 25; i++ {
		entries = append(entries, LedgerEntry{
			Date:  base.AddDate(0, 0, i),
			RefID: fmt.Sprintf("entry-%d", i),
		})
	}

	seen := make(map[string]int)
	sizes := []int{}
	for page := int64(1); ; page++ {
		chunk := paginateLedger(entries, page, 10)
		if len(chunk) == 0 {
			break
		}
		sizes = append(sizes, len(chunk))
		for _, entry := range chunk {
			seen[entry.RefID]++
		}
	}

	if len(sizes) != 3 || sizes[0] != 10 || sizes[1] != 10 || sizes[2] != 5 {
		t.Fatalf("expected pages of 10,10,5, got %v", sizes)
	}
	if len(seen) != 25 {
		t.Fatalf("expected 25 distinct rows, got %d", len(seen))
	}
	for refID, count := range seen {
		if count != 1 {
			t.Fatalf("row %s appeared %d times", refID, count)
		}
	}
}

func TestPaginateLedgerOutOfRangePage(t *testing.T) {
	entries := []LedgerEntry{{RefID: "only"}}

	if got := paginateLedger(entries, 5, 10); len(got) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(got))
	}
}

func TestBuildLedgerEmptyInputs(t *testing.T) {
	entries, balance := buildLedger(nil, nil, nil)
	if len(entries) != 0 || balance != 0 {
		t.Fatalf("expected empty ledger with zero balance, got %d entries balance %v", len(entries), balance)
	}
}
