package http

import (
	"net/http"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/service"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminSvc.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminSvc.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	var err error
	var rentals []domain.Rental
	if r.URL.Query().Get("active") == "true" {
		rentals, err = h.adminSvc.ListActiveRentals(r.Context())
	} else {
		rentals, err = h.adminSvc.ListRentals(r.Context())
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

func (h *AdminHandler) AddKayak(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		LockID   int64  `json:"lock_id"`
		Location string `json:"location"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	kayak := &domain.Kayak{Name: req.Name, LockID: req.LockID, Location: req.Location}
	if err := h.adminSvc.AddKayak(r.Context(), kayak); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, kayak)
}

func (h *AdminHandler) SetKayakAvailability(w http.ResponseWriter, r *http.Request) {
	kayakID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Available *bool `json:"available"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Available == nil {
		respondBadRequest(w, "available is required")
		return
	}

	if err := h.adminSvc.SetKayakAvailability(r.Context(), kayakID, *req.Available); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"kayak_id": kayakID, "available": *req.Available})
}

func (h *AdminHandler) ChargeDamage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        int32  `json:"user_id"`
		AmountDollars int64  `json:"amount_dollars"`
		Description   string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	intentID, err := h.adminSvc.ChargeDamage(r.Context(), req.UserID, req.AmountDollars, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"intent_id": intentID})
}
