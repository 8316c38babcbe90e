package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PurchaseOrderStatusDraft     = "Draft"
	PurchaseOrderStatusIssued    = "Issued"
	PurchaseOrderStatusCompleted = "Completed"
	PurchaseOrderStatusCancelled = "Cancelled"
)

type Supplier struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type PurchaseOrderItem struct {
	Name     string  `bson:"name" json:"name"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit" json:"unit"`
	UnitCost float64 `bson:"unitCost" json:"unitCost"`
}

// PurchaseOrder is an outbound order to a supplier. Subtotal and Total are
// always recomputed server-side from items, tax and shipping.
type PurchaseOrder struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PONumber     string              `bson:"poNumber" json:"poNumber"`
	Supplier     Supplier            `bson:"supplier" json:"supplier"`
	Items        []PurchaseOrderItem `bson:"items" json:"items"`
	Subtotal     float64             `bson:"subtotal" json:"subtotal"`
	Tax          float64             `bson:"tax" json:"tax"`
	Shipping     float64             `bson:"shipping" json:"shipping"`
	Total        float64             `bson:"total" json:"total"`
	Status       string              `bson:"status" json:"status"`
	IssueDate    time.Time           `bson:"issueDate" json:"issueDate"`
	DeliveryDate *time.Time          `bson:"deliveryDate,omitempty" json:"deliveryDate,omitempty"`
	Notes        string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
