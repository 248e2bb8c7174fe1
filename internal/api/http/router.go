package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"kayakbay-backend/internal/security"
	"kayakbay-backend/internal/service"
	"kayakbay-backend/internal/storage"
)

type RouterConfig struct {
	Tokens     security.TokenManager
	AuthSvc    service.AuthService
	WaiverSvc  service.WaiverService
	RentalSvc  service.RentalService
	PaymentSvc service.PaymentService
	AdminSvc   service.AdminService
	Images     storage.ImageStore
}

// NewRouter wires every endpoint. Public routes: auth and locally stored
// images. Everything else requires a bearer token; /api/admin additionally
// requires the admin claim.
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	mw := NewMiddleware(cfg.Tokens)

	authHandler := NewAuthHandler(cfg.AuthSvc)
	waiverHandler := NewWaiverHandler(cfg.WaiverSvc)
	rentalHandler := NewRentalHandler(cfg.RentalSvc)
	paymentHandler := NewPaymentHandler(cfg.PaymentSvc)
	adminHandler := NewAdminHandler(cfg.AdminSvc)
	uploadsHandler := NewUploadsHandler(cfg.Images)

	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/forgot-password", authHandler.ForgotPassword).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/reset-password", authHandler.ResetPassword).Methods(http.MethodPost)
	r.HandleFunc("/api/uploads/{folder}/{file}", uploadsHandler.Serve).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(mw.Authenticate)

	api.HandleFunc("/waiver", waiverHandler.Sign).Methods(http.MethodPost)
	api.HandleFunc("/waiver", waiverHandler.Status).Methods(http.MethodGet)

	api.HandleFunc("/kayaks/available", rentalHandler.AvailableKayaks).Methods(http.MethodGet)
	api.HandleFunc("/rentals", rentalHandler.Rent).Methods(http.MethodPost)
	api.HandleFunc("/rentals", rentalHandler.History).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}/return", rentalHandler.Return).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/pickup-photo", rentalHandler.UpdatePickupPhoto).Methods(http.MethodPut)

	api.HandleFunc("/payments/intent", paymentHandler.CreateIntent).Methods(http.MethodPost)
	api.HandleFunc("/payments/intent", paymentHandler.IntentStatus).Methods(http.MethodGet)
	api.HandleFunc("/payments/method", paymentHandler.SavePaymentMethod).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(mw.RequireAdmin)
	admin.HandleFunc("/stats", adminHandler.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/rentals", adminHandler.ListRentals).Methods(http.MethodGet)
	admin.HandleFunc("/kayaks", adminHandler.AddKayak).Methods(http.MethodPost)
	admin.HandleFunc("/kayaks/{id}/availability", adminHandler.SetKayakAvailability).Methods(http.MethodPut)
	admin.HandleFunc("/charges/damage", adminHandler.ChargeDamage).Methods(http.MethodPost)

	return r
}
