package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"kayakbay-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

func (h *RentalHandler) Rent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity        int32  `json:"quantity"`
		DurationSeconds int64  `json:"duration_seconds"`
		PaymentIntentID string `json:"payment_intent_id"`
		PickupPhoto     string `json:"pickup_photo"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.rentalSvc.Rent(r.Context(), service.RentRequest{
		UserID:          UserIDFromContext(r.Context()),
		Quantity:        req.Quantity,
		DurationSeconds: req.DurationSeconds,
		PaymentIntentID: req.PaymentIntentID,
		PickupPhoto:     req.PickupPhoto,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		ReturnPhoto string `json:"return_photo"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	rental, err := h.rentalSvc.Return(r.Context(),
		UserIDFromContext(r.Context()), IsAdminFromContext(r.Context()), rentalID, req.ReturnPhoto)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) UpdatePickupPhoto(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		PickupPhoto string `json:"pickup_photo"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	rental, err := h.rentalSvc.UpdatePickupPhoto(r.Context(), UserIDFromContext(r.Context()), rentalID, req.PickupPhoto)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) History(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalSvc.History(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) AvailableKayaks(w http.ResponseWriter, r *http.Request) {
	kayaks, err := h.rentalSvc.AvailableKayaks(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, kayaks)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		respondBadRequest(w, "invalid "+name)
		return 0, false
	}
	return int32(id), true
}
