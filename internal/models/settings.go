package models

// ShippingZone is one deliverable area with its flat delivery cost.
type ShippingZone struct {
	Name string  `bson:"name" json:"name"`
	Cost float64 `bson:"cost" json:"cost"`
}

// StoreSettings is the "store" singleton settings document.
type StoreSettings struct {
	Currency     string `bson:"currency" json:"currency"`
	ContactEmail string `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ContactPhone string `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
}

// CustomOrderSettings is the "customOrder" singleton: the units, service
// labels, shipping zones and suppliers offered on the quote request form.
type CustomOrderSettings struct {
	Units         []string       `bson:"units" json:"units"`
	Services      []string       `bson:"services" json:"services"`
	ShippingZones []ShippingZone `bson:"shippingZones" json:"shippingZones"`
	Suppliers     []Supplier     `bson:"suppliers" json:"suppliers"`
}

// AccountingSettings is the "accounting" singleton.
type AccountingSettings struct {
	ExpenseCategories []string `bson:"expenseCategories" json:"expenseCategories"`
}
