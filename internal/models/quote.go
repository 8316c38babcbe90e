package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quote statuses move forward only. "Paid" is reachable exclusively through
// payment capture, never through an admin status write.
const (
	QuoteStatusPendingReview     = "Pending Review"
	QuoteStatusPendingUserAction = "Pending User Action"
	QuoteStatusQuoteReady        = "Quote Ready"
	QuoteStatusPaid              = "Paid"
)

// QuoteItem is one customer-requested line. UnitCost stays zero until an admin
// prices the quote.
type QuoteItem struct {
	Name     string  `bson:"name" json:"name"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit" json:"unit"`
	UnitCost float64 `bson:"unitCost,omitempty" json:"unitCost,omitempty"`
}

// Quote is a custom order request. Total fields are derived from items,
// pricedServices and shippingCost when the quote is priced.
type Quote struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	CustomerName    string             `bson:"customerName" json:"customerName"`
	CustomerEmail   string             `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone   string             `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	Items           []QuoteItem        `bson:"items" json:"items"`
	Services        []string           `bson:"services" json:"services"`
	PricedServices  map[string]float64 `bson:"pricedServices,omitempty" json:"pricedServices,omitempty"`
	ShippingAddress string             `bson:"shippingAddress" json:"shippingAddress"`
	ShippingCost    float64            `bson:"shippingCost,omitempty" json:"shippingCost,omitempty"`
	ItemsTotal      float64            `bson:"itemsTotal,omitempty" json:"itemsTotal,omitempty"`
	ServicesTotal   float64            `bson:"servicesTotal,omitempty" json:"servicesTotal,omitempty"`
	ServiceCharge   float64            `bson:"serviceCharge,omitempty" json:"serviceCharge,omitempty"`
	GrandTotal      float64            `bson:"grandTotal,omitempty" json:"grandTotal,omitempty"`
	Status          string             `bson:"status" json:"status"`
	TransactionID   string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
