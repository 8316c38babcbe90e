package handlers

import (
	"testing"

	"foodstore/internal/models"
)

func TestComputeQuotePricingFixedSample(t *testing.T) {
	items := []models.QuoteItem{
		{Name: "Yam", Quantity: 1, Unit: "basket", UnitCost: 1000},
		{Name: "Catfish", Quantity: 1, Unit: "kg", UnitCost: 2000},
	}

	pricing := computeQuotePricing(items, nil, 0)

	if pricing.ItemsTotal != 3000 {
		t.Fatalf("expected itemsTotal 3000, got %v", pricing.ItemsTotal)
	}
	if pricing.ServiceCharge != 180 {
		t.Fatalf("expected serviceCharge 180, got %v", pricing.ServiceCharge)
	}
	if pricing.GrandTotal != 3180 {
		t.Fatalf("expected grandTotal 3180, got %v", pricing.GrandTotal)
	}
}

func TestComputeQuotePricingIncludesServicesAndShipping(t *testing.T) {
	items := []models.QuoteItem{
		{Name: "Tomatoes", Quantity: 2, Unit: "basket", UnitCost: 1500},
	}
	services := map[string]float64{
		"Cleaning":  500,
		"Packaging": 300,
	}

	pricing := computeQuotePricing(items, services, 1000)

	if pricing.ItemsTotal != 3000 {
		t.Fatalf("expected itemsTotal 3000, got %v", pricing.ItemsTotal)
	}
	if pricing.ServicesTotal != 800 {
		t.Fatalf("expected servicesTotal 800, got %v", pricing.ServicesTotal)
	}
	if pricing.ServiceCharge != 180 {
		t.Fatalf("expected serviceCharge 180, got %v", pricing.ServiceCharge)
	}
	if pricing.GrandTotal != 3000+800+180+1000 {
		t.Fatalf("expected grandTotal 4980, got %v", pricing.GrandTotal)
	}
}

func TestComputeQuotePricingRoundsServiceCharge(t *testing.T) {
	items := []models.QuoteItem{
		{Name: "Pepper", Quantity: 1, Unit: "bag", UnitCost: 1025},
	}

	pricing := computeQuotePricing(items, nil, 0)

	// 1025 * 0.06 = 61.5, rounds to 62
	if pricing.ServiceCharge != 62 {
		t.Fatalf("expected serviceCharge 62, got %v", pricing.ServiceCharge)
	}
}

func TestValidateQuotePricingRejectsUnpricedItem(t *testing.T) {
	items := []models.QuoteItem{
		{Name: "Yam", Quantity: 1, Unit: "basket", UnitCost: 1000},
		{Name: "Catfish", Quantity: 1, Unit: "kg"},
	}

	if err := validateQuotePricing(items, nil, 0); err == nil {
		t.Fatal("expected validation error for unpriced item")
	}
}

func TestValidateQuotePricingRejectsNegativeCosts(t *testing.T) {
	items := []models.QuoteItem{
		{Name: "Yam", Quantity: 1, Unit: "basket", UnitCost: 1000},
	}

	if err := validateQuotePricing(items, map[string]float64{"Cleaning": -10}, 0); err == nil {
		t.Fatal("expected validation error for negative service cost")
	}
	if err := validateQuotePricing(items, nil, -1); err == nil {
		t.Fatal("expected validation error for negative shipping cost")
	}
}

func TestValidateQuotePricingRejectsEmptyItems(t *testing.T) {
	if err := validateQuotePricing(nil, nil, 0); err == nil {
		t.Fatal("expected validation error for empty items")
	}
}

func TestQuoteStatusTransitionsAreForwardOnly(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.QuoteStatusPendingReview, models.QuoteStatusPendingUserAction},
		{models.QuoteStatusPendingReview, models.QuoteStatusQuoteReady},
		{models.QuoteStatusPendingUserAction, models.QuoteStatusQuoteReady},
		{models.QuoteStatusQuoteReady, models.QuoteStatusPaid},
	}
	for _, tc := range allowed {
		if !isForwardQuoteTransition(tc.from, tc.to) {
			t.Fatalf("expected %q -> %q to be allowed", tc.from, tc.to)
		}
	}

	rejected := []struct{ from, to string }{
		{models.QuoteStatusPaid, models.QuoteStatusQuoteReady},
		{models.QuoteStatusQuoteReady, models.QuoteStatusPendingReview},
		{models.QuoteStatusPendingUserAction, models.QuoteStatusPendingUserAction},
		{models.QuoteStatusPendingReview, "Archived"},
		{"Unknown", models.QuoteStatusPaid},
	}
	for _, tc := range rejected {
		if isForwardQuoteTransition(tc.from, tc.to) {
			t.Fatalf("expected %q -> %q to be rejected", tc.from, tc.to)
		}
	}
}
