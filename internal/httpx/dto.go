package httpx

import "github.com/SKTA1805/Smart-trolley/internal/cart"

type tagRequest struct {
	Tag string `json:"tag"`
}

type cartResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Cart    []cart.Line `json:"cart"`
}

type createOrderRequest struct {
	Amount float64 `json:"amount"` // major currency units (rupees)
}

type createOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"` // minor units (paise)
}

type createOrderError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type verifyPaymentResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PaymentID string `json:"paymentId"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
