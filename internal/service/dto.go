package service

// CheckoutRequest represents the checkout submission payload
type CheckoutRequest struct {
	Items           []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	ShippingAddress Address        `json:"shipping_address" binding:"required"`
	BillingAddress  Address        `json:"billing_address" binding:"required"`
	CustomerEmail   *string        `json:"customer_email,omitempty" binding:"omitempty,email"`
}

// CheckoutItem is one untrusted cart line. Price is accepted for wire
// compatibility with older storefront clients but never read; the engine
// prices every line from the repository.
type CheckoutItem struct {
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price,omitempty"`
}

type Address struct {
	Street     string  `json:"street" binding:"required"`
	City       string  `json:"city" binding:"required"`
	State      *string `json:"state,omitempty"`
	PostalCode string  `json:"postal_code" binding:"required"`
	Country    string  `json:"country" binding:"required"`
}
