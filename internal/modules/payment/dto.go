package payment

type InitPaymentRequest struct {
	ReservationID int64 `json:"reservation_id" binding:"required"`
}

type InitPaymentResponse struct {
	OrderID     string `json:"order_id"`
	Amount      int    `json:"amount"`
	Currency    string `json:"currency"`
	CheckoutURL string `json:"checkout_url"`
	Signature   string `json:"signature"`
	Status      string `json:"status"`
}

// CallbackRequest is the collaborator's server-to-server result post. The
// signature is an uppercase MD5 hex over the colon-joined fields plus the
// shared secret.
type CallbackRequest struct {
	MerchantID string `json:"merchant_id" form:"merchant_id" binding:"required"`
	OrderID    string `json:"order_id" form:"order_id" binding:"required"`
	Amount     string `json:"amount" form:"amount" binding:"required"`
	Currency   string `json:"currency" form:"currency" binding:"required"`
	Status     string `json:"status" form:"status" binding:"required"`
	Signature  string `json:"signature" form:"signature" binding:"required"`
}
