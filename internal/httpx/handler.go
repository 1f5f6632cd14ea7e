package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/SKTA1805/Smart-trolley/internal/billing"
	"github.com/SKTA1805/Smart-trolley/internal/cart"
	"github.com/SKTA1805/Smart-trolley/internal/notify"
	"github.com/SKTA1805/Smart-trolley/internal/payment"
)

// Handler handles incoming HTTP requests for the checkout lane.
type Handler struct {
	store    *cart.Store
	hub      *notify.Hub
	verifier *payment.Verifier
	orders   payment.OrderCreator
}

// NewHandler initializes the handler with the cart store, the observer
// hub, and the payment collaborators.
func NewHandler(store *cart.Store, hub *notify.Hub, verifier *payment.Verifier, orders payment.OrderCreator) *Handler {
	return &Handler{
		store:    store,
		hub:      hub,
		verifier: verifier,
		orders:   orders,
	}
}

// UpdateCart adds one unit of a scanned tag to the cart.
func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := h.store.AddByTag(req.Tag)
	if err != nil {
		if errors.Is(err, cart.ErrUnknownTag) {
			writeError(w, http.StatusBadRequest, "Invalid RFID Tag")
			return
		}
		writeError(w, http.StatusBadRequest, "could not update cart")
		return
	}

	slog.InfoContext(r.Context(), "item scanned", "tag", req.Tag, "lines", len(snapshot))
	writeJSON(w, http.StatusOK, cartResponse{Success: true, Message: "Cart updated", Cart: snapshot})
}

// RemoveItem removes one unit of a tag from the cart. Removing a tag
// that is not in the cart succeeds without changing anything.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot := h.store.RemoveOneByTag(req.Tag)
	writeJSON(w, http.StatusOK, cartResponse{Success: true, Message: "Item updated", Cart: snapshot})
}

// GetCart returns the current cart lines.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// GenerateBill renders the current cart as a downloadable PDF.
func (h *Handler) GenerateBill(w http.ResponseWriter, r *http.Request) {
	doc, err := billing.Render(h.store.Snapshot())
	if err != nil {
		slog.ErrorContext(r.Context(), "bill rendering failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not generate bill")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="bill.pdf"`)
	_, _ = w.Write(doc)
}

// CreateOrder asks the payment provider to open an order for the given
// amount. The request carries rupees; the provider wants paise.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), int64(math.Round(req.Amount*100)))
	if err != nil {
		slog.ErrorContext(r.Context(), "order creation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, createOrderError{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, createOrderResponse{Success: true, OrderID: order.ID, Amount: order.Amount})
}

// VerifyPayment checks the signature the provider issued for a
// completed payment. The expected signature is never echoed back.
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.verifier.Verify(req.OrderID, req.PaymentID, req.Signature); err != nil {
		slog.WarnContext(r.Context(), "payment verification failed", "order_id", req.OrderID, "payment_id", req.PaymentID)
		writeError(w, http.StatusBadRequest, "Payment Verification Failed")
		return
	}

	slog.InfoContext(r.Context(), "payment verified", "order_id", req.OrderID, "payment_id", req.PaymentID)
	writeJSON(w, http.StatusOK, verifyPaymentResponse{Success: true, Message: "Payment Successful!", PaymentID: req.PaymentID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Message: msg})
}
