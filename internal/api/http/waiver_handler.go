package http

import (
	"net/http"

	"kayakbay-backend/internal/service"
)

type WaiverHandler struct {
	waiverSvc service.WaiverService
}

func NewWaiverHandler(waiverSvc service.WaiverService) *WaiverHandler {
	return &WaiverHandler{waiverSvc: waiverSvc}
}

func (h *WaiverHandler) Sign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Signature string `json:"signature"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	waiver, err := h.waiverSvc.Sign(r.Context(), UserIDFromContext(r.Context()), req.Signature)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, waiver)
}

func (h *WaiverHandler) Status(w http.ResponseWriter, r *http.Request) {
	signed, waiver, err := h.waiverSvc.Status(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"waiver_signed": signed,
		"waiver":        waiver,
	})
}
