package http

import (
	"net/http"

	"kayakbay-backend/internal/payment"
	"kayakbay-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AmountDollars int64  `json:"amount_dollars"`
		Description   string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	intentID, clientSecret, err := h.paymentSvc.CreateIntent(r.Context(),
		UserIDFromContext(r.Context()), req.AmountDollars, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"intent_id":     intentID,
		"client_secret": clientSecret,
	})
}

func (h *PaymentHandler) IntentStatus(w http.ResponseWriter, r *http.Request) {
	intentID := r.URL.Query().Get("intent_id")
	if intentID == "" {
		respondBadRequest(w, "intent_id is required")
		return
	}

	auth, err := h.paymentSvc.IntentStatus(r.Context(), intentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"intent_id":      auth.IntentID,
		"status":         auth.Status,
		"succeeded":      auth.Succeeded,
		"amount_dollars": payment.CentsToDollars(auth.AmountCents),
	})
}

func (h *PaymentHandler) SavePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethodID string `json:"payment_method_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.paymentSvc.SavePaymentMethod(r.Context(), UserIDFromContext(r.Context()), req.PaymentMethodID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}
