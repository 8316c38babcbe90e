package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// OrderItem mirrors the priced quote line it was created from.
type OrderItem struct {
	Name     string  `bson:"name" json:"name"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit" json:"unit"`
	UnitCost float64 `bson:"unitCost" json:"unitCost"`
}

// Order is created once per paid quote. QuoteID carries the link back; a
// unique partial index on it keeps duplicate creation out of the store.
type Order struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	QuoteID         *primitive.ObjectID `bson:"quoteId,omitempty" json:"quoteId,omitempty"`
	Items           []OrderItem         `bson:"items" json:"items"`
	TotalCost       float64             `bson:"totalCost" json:"totalCost"`
	ShippingAddress string              `bson:"shippingAddress" json:"shippingAddress"`
	Status          string              `bson:"status" json:"status"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
