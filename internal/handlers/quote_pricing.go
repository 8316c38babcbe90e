package handlers

import (
	"fmt"
	"math"

	"foodstore/internal/models"
)

// serviceChargeRate is the fixed markup applied to the items subtotal of every
// priced quote.
const serviceChargeRate = 0.06

type quotePricing struct {
	ItemsTotal    float64
	ServicesTotal float64
	ServiceCharge float64
	GrandTotal    float64
}

func computeQuotePricing(items []models.QuoteItem, pricedServices map[string]float64, shippingCost float64) quotePricing {
	itemsTotal := 0.0
	for _, item := range items {
		itemsTotal += item.UnitCost * item.Quantity
	}

	servicesTotal := 0.0
	for _, cost := range pricedServices {
		servicesTotal += cost
	}

	serviceCharge := math.Round(itemsTotal * serviceChargeRate)

	return quotePricing{
		ItemsTotal:    itemsTotal,
		ServicesTotal: servicesTotal,
		ServiceCharge: serviceCharge,
		GrandTotal:    itemsTotal + servicesTotal + serviceCharge + shippingCost,
	}
}

func validateQuotePricing(items []models.QuoteItem, pricedServices map[string]float64, shippingCost float64) error {
	if len(items) == 0 {
		return fmt.Errorf("quote has no items to price")
	}
	for i, item := range items {
		if item.UnitCost <= 0 {
			return fmt.Errorf("item %d (%s) is missing a unit cost", i, item.Name)
		}
	}
	for name, cost := range pricedServices {
		if cost < 0 {
			return fmt.Errorf("service %s has a negative cost", name)
		}
	}
	if shippingCost < 0 {
		return fmt.Errorf("shippingCost cannot be negative")
	}
	return nil
}

var quoteStatusRank = map[string]int{
	models.QuoteStatusPendingReview:     0,
	models.QuoteStatusPendingUserAction: 1,
	models.QuoteStatusQuoteReady:        2,
	models.QuoteStatusPaid:              3,
}

// isForwardQuoteTransition reports whether from -> to moves the quote strictly
// forward through its lifecycle.
func isForwardQuoteTransition(from, to string) bool {
	fromRank, ok := quoteStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := quoteStatusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
