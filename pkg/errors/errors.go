package errors

import "fmt"

// ErrValidation indicates the request body failed shape validation
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrProductsUnavailable indicates one or more cart lines reference products
// that are inactive, out of stock, or nonexistent. The message is deliberately
// generic so callers cannot probe inventory state product by product.
type ErrProductsUnavailable struct {
	Requested int
	Found     int
}

func (e *ErrProductsUnavailable) Error() string {
	return "some products in your cart are no longer available"
}

// ErrProductNotFound indicates a cart line could not be matched to a fetched
// product record
type ErrProductNotFound struct {
	ProductID string
}

func (e *ErrProductNotFound) Error() string {
	return "some products in your cart are no longer available"
}

// ErrInsufficientStock indicates a cart line requests more units than are in
// stock for that product
type ErrInsufficientStock struct {
	Title     string
	Requested int
	Available int
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock for %q", e.Title)
}

// ErrInvalidPrice indicates the repository returned a record whose price is
// not a finite positive number. This is a data-integrity fault, not user
// error; the handler reports it generically but logs it as an alert.
type ErrInvalidPrice struct {
	ProductID string
	Price     float64
}

func (e *ErrInvalidPrice) Error() string {
	return fmt.Sprintf("product %s has an invalid price", e.ProductID)
}

// ErrPaymentGateway indicates the payment provider rejected or failed the
// session-creation call. Never retried automatically.
type ErrPaymentGateway struct {
	StatusCode int
	Message    string
}

func (e *ErrPaymentGateway) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("payment gateway error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("payment gateway error: %s", e.Message)
}

// ErrNotFound indicates a resource doesn't exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates authentication failure
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrForbidden indicates the authenticated caller lacks the required role
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	return e.Message
}
