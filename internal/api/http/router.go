package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/security"
	"equiprent-backend/internal/service"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Clients  *ClientHandler
	Stock    *StockHandler
	Rentals  *RentalHandler
	Returns  *ReturnHandler
	Invoices *InvoiceHandler
	Payments *PaymentHandler
}

// NewRouter mounts the full API under /api/v1. Everything except login,
// token refresh and the health probe requires a valid access token.
func NewRouter(h *Handlers, tokens security.TokenManager) *mux.Router {
	root := mux.NewRouter()

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := root.PathPrefix("/api/v1").Subrouter()

	// Public auth endpoints
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods("POST")

	// Authenticated endpoints
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	// Clients
	authed.HandleFunc("/clients", h.Clients.Create).Methods("POST")
	authed.HandleFunc("/clients", h.Clients.List).Methods("GET")
	authed.HandleFunc("/clients/{id:[0-9]+}", h.Clients.Get).Methods("GET")
	authed.HandleFunc("/clients/{id:[0-9]+}", h.Clients.Update).Methods("PUT")
	authed.HandleFunc("/clients/{id:[0-9]+}/statement", h.Clients.Statement).Methods("GET")

	// Stock catalog and levels
	authed.HandleFunc("/stock/categories", h.Stock.CreateCategory).Methods("POST")
	authed.HandleFunc("/stock/categories", h.Stock.ListCategories).Methods("GET")
	authed.HandleFunc("/stock/categories/{id:[0-9]+}", h.Stock.GetCategory).Methods("GET")
	authed.HandleFunc("/stock/categories/{id:[0-9]+}", h.Stock.UpdateCategory).Methods("PUT")
	authed.HandleFunc("/stock/levels", h.Stock.ListLevels).Methods("GET")

	// Stock intake is admin-only
	admin := authed.NewRoute().Subrouter()
	admin.Use(RequireRole(string(domain.UserRoleAdmin)))
	admin.HandleFunc("/stock/categories/{id:[0-9]+}/add", h.Stock.AddStock).Methods("POST")

	// Rentals
	authed.HandleFunc("/rentals", h.Rentals.Create).Methods("POST")
	authed.HandleFunc("/rentals", h.Rentals.List).Methods("GET")
	authed.HandleFunc("/rentals/{id:[0-9]+}", h.Rentals.Get).Methods("GET")
	authed.HandleFunc("/rentals/{id:[0-9]+}/cancel", h.Rentals.Cancel).Methods("POST")

	// Returns
	authed.HandleFunc("/rentals/{id:[0-9]+}/returns", h.Returns.Process).Methods("POST")
	authed.HandleFunc("/rentals/{id:[0-9]+}/returns", h.Returns.List).Methods("GET")

	// Invoices
	authed.HandleFunc("/rentals/{id:[0-9]+}/invoice", h.Invoices.Generate).Methods("POST")
	authed.HandleFunc("/invoices", h.Invoices.List).Methods("GET")
	authed.HandleFunc("/invoices/{id:[0-9]+}", h.Invoices.Get).Methods("GET")
	authed.HandleFunc("/invoices/{id:[0-9]+}/pay", h.Invoices.MarkPaid).Methods("POST")
	authed.HandleFunc("/invoices/{id:[0-9]+}/cancel", h.Invoices.Cancel).Methods("POST")

	// Payments
	authed.HandleFunc("/payments", h.Payments.Record).Methods("POST")
	authed.HandleFunc("/payments", h.Payments.List).Methods("GET")

	return root
}

// NewHandlers wires handlers from the service layer.
func NewHandlers(
	auth service.AuthService,
	clients service.ClientService,
	ledger service.LedgerService,
	stock service.StockService,
	rentals service.RentalService,
	returns service.ReturnService,
	invoices service.InvoiceService,
	payments service.PaymentService,
	defaultTaxRatePercent float64,
) *Handlers {
	return &Handlers{
		Auth:     NewAuthHandler(auth),
		Clients:  NewClientHandler(clients, ledger),
		Stock:    NewStockHandler(stock),
		Rentals:  NewRentalHandler(rentals),
		Returns:  NewReturnHandler(returns),
		Invoices: NewInvoiceHandler(invoices, defaultTaxRatePercent),
		Payments: NewPaymentHandler(payments),
	}
}
