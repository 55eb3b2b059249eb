package model

// DefaultPaymentMethod is used when the caller does not pick one.
const DefaultPaymentMethod = "cod"

// OrderRequest is sent to the order service to check out the current cart.
type OrderRequest struct {
	UserID          string `json:"userid"`
	DeliveryAddress string `json:"deliveryaddress"`
	PaymentMethod   string `json:"paymentmethod"`
}

type OrderResult struct {
	OrderID ID `json:"order_id"`
}
