package handlers

import (
	"strings"
	"testing"
	"time"

	"foodstore/internal/models"
)

func TestComputePurchaseOrderTotals(t *testing.T) {
	items := []models.PurchaseOrderItem{
		{Name: "Rice", Quantity: 10, Unit: "bag", UnitCost: 450},
		{Name: "Palm oil", Quantity: 2, Unit: "jerrycan", UnitCost: 1200},
	}

	subtotal, total := computePurchaseOrderTotals(items, 300, 500)

	if subtotal != 6900 {
		t.Fatalf("expected subtotal 6900, got %v", subtotal)
	}
	if total != 7700 {
		t.Fatalf("expected total 7700, got %v", total)
	}
}

func TestComputePurchaseOrderTotalsNoItems(t *testing.T) {
	subtotal, total := computePurchaseOrderTotals(nil, 0, 0)
	if subtotal != 0 || total != 0 {
		t.Fatalf("expected zero totals, got subtotal %v total %v", subtotal, total)
	}
}

func TestNewPONumberFormat(t *testing.T) {
	now := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)

	number := newPONumber(now)

	if !strings.HasPrefix(number, "PO-20240305-") {
		t.Fatalf("unexpected prefix: %s", number)
	}
	suffix := strings.TrimPrefix(number, "PO-20240305-")
	if len(suffix) != 8 {
		t.Fatalf("expected 8-char suffix, got %q", suffix)
	}
	if suffix != strings.ToUpper(suffix) {
		t.Fatalf("expected uppercase suffix, got %q", suffix)
	}
}

func TestNewPONumberIsUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		number := newPONumber(now)
		if seen[number] {
			t.Fatalf("duplicate PO number: %s", number)
		}
		seen[number] = true
	}
}

func TestPurchaseOrderStatusSet(t *testing.T) {
	for _, status := range []string{
		models.PurchaseOrderStatusDraft,
		models.PurchaseOrderStatusIssued,
		models.PurchaseOrderStatusCompleted,
		models.PurchaseOrderStatusCancelled,
	} {
		if !purchaseOrderStatuses[status] {
			t.Fatalf("expected %q to be a valid status", status)
		}
	}
	if purchaseOrderStatuses["Archived"] || purchaseOrderStatuses[""] {
		t.Fatal("unexpected status accepted")
	}
}
